package jsonfile

import (
	"context"
	"fmt"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-session-api/internal/pkg/errors"
)

// UsersFile — имя файла коллекции студентов
const UsersFile = "users.json"

// UserRepo реализует repository.UserRepository поверх users.json
type UserRepo struct {
	users *collection[entity.User]
}

// NewUserRepo открывает (или создаёт) users.json в каталоге dataDir
func NewUserRepo(dataDir string) (*UserRepo, error) {
	users, err := newCollection[entity.User](dataDir, UsersFile)
	if err != nil {
		return nil, err
	}
	return &UserRepo{users: users}, nil
}

// GetByName возвращает студента по имени без учёта регистра
func (r *UserRepo) GetByName(_ context.Context, name string) (*entity.User, error) {
	for _, u := range r.users.view() {
		if u.Matches(name) {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, name)
}

// Create добавляет нового студента в конец коллекции
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.users.update(func(users []entity.User) ([]entity.User, bool, error) {
		for _, u := range users {
			if u.Matches(user.Name) {
				return nil, false, fmt.Errorf("%w: user %q already exists", apperrors.ErrConflict, user.Name)
			}
		}
		user.NameKey = entity.NormalizeName(user.Name)
		return append(users, *user), true, nil
	})
}

// SetCanRetake обновляет флаг допуска к тесту
func (r *UserRepo) SetCanRetake(_ context.Context, name string, canRetake bool) error {
	return r.users.update(func(users []entity.User) ([]entity.User, bool, error) {
		for i := range users {
			if users[i].Matches(name) {
				users[i].CanRetake = canRetake
				return users, true, nil
			}
		}
		return nil, false, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, name)
	})
}

// List возвращает всех студентов в порядке регистрации
func (r *UserRepo) List(_ context.Context) ([]entity.User, error) {
	return r.users.view(), nil
}
