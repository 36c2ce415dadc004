package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-session-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий студентов
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetByName возвращает студента по имени без учёта регистра
func (r *UserRepo) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("name_key = ?", entity.NormalizeName(name)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, name)
		}
		return nil, err
	}
	return &user, nil
}

// Create создает нового студента. Уникальность имени гарантируется индексом по name_key.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	user.NameKey = entity.NormalizeName(user.Name)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %q already exists", apperrors.ErrConflict, user.Name)
		}
		return fmt.Errorf("create user %q failed: %w", user.Name, err)
	}
	return nil
}

// SetCanRetake обновляет флаг допуска к тесту
func (r *UserRepo) SetCanRetake(ctx context.Context, name string, canRetake bool) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("name_key = ?", entity.NormalizeName(name)).
		UpdateColumn("can_retake", canRetake)
	if result.Error != nil {
		return fmt.Errorf("update can_retake for %q failed: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, name)
	}
	return nil
}

// List возвращает всех студентов в порядке регистрации
func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}
