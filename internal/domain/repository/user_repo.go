package repository

import (
	"context"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
)

// UserRepository определяет методы для работы со студентами.
// Все поиски по имени выполняются без учёта регистра.
type UserRepository interface {
	// GetByName возвращает студента по имени или apperrors.ErrNotFound
	GetByName(ctx context.Context, name string) (*entity.User, error)
	// Create добавляет студента; если имя занято, возвращает apperrors.ErrConflict
	Create(ctx context.Context, user *entity.User) error
	// SetCanRetake меняет флаг допуска к тесту; apperrors.ErrNotFound, если студента нет
	SetCanRetake(ctx context.Context, name string, canRetake bool) error
	List(ctx context.Context) ([]entity.User, error)
}
