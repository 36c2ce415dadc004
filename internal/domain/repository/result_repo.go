package repository

import (
	"context"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
)

// TestResultRepository определяет методы для работы с результатами тестов
type TestResultRepository interface {
	// ListByStudentName возвращает все результаты студента (без учёта регистра имени)
	ListByStudentName(ctx context.Context, name string) ([]entity.TestResult, error)
	// Upsert заменяет результат студента с тем же именем или добавляет новый
	Upsert(ctx context.Context, result *entity.TestResult) error
	// DeleteByStudentName удаляет все результаты студента и возвращает их количество
	DeleteByStudentName(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]entity.TestResult, error)
}
