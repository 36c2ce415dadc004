package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
)

// TestResultRepo реализует repository.TestResultRepository
type TestResultRepo struct {
	db *gorm.DB
}

// NewTestResultRepo создает новый репозиторий результатов
func NewTestResultRepo(db *gorm.DB) *TestResultRepo {
	return &TestResultRepo{db: db}
}

// ListByStudentName возвращает результаты студента без учёта регистра имени
func (r *TestResultRepo) ListByStudentName(ctx context.Context, name string) ([]entity.TestResult, error) {
	results := make([]entity.TestResult, 0, 1)
	err := r.db.WithContext(ctx).
		Where("student_key = ?", entity.NormalizeName(name)).
		Order("id").
		Find(&results).Error
	return results, err
}

// Upsert заменяет результат студента целиком (включая id) или вставляет новый.
// Конфликт разрешается по уникальному индексу student_key.
func (r *TestResultRepo) Upsert(ctx context.Context, result *entity.TestResult) error {
	result.StudentKey = entity.NormalizeName(result.StudentName)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"id", "student_name", "pattern", "score", "total", "answers",
			"pdf_downloaded", "submitted_at", "ip",
		}),
	}).Create(result).Error
	if err != nil {
		return fmt.Errorf("upsert result for %q failed: %w", result.StudentName, err)
	}
	return nil
}

// DeleteByStudentName удаляет все результаты студента
func (r *TestResultRepo) DeleteByStudentName(ctx context.Context, name string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("student_key = ?", entity.NormalizeName(name)).
		Delete(&entity.TestResult{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete results for %q failed: %w", name, result.Error)
	}
	return result.RowsAffected, nil
}

// List возвращает все результаты
func (r *TestResultRepo) List(ctx context.Context) ([]entity.TestResult, error) {
	var results []entity.TestResult
	err := r.db.WithContext(ctx).Order("id").Find(&results).Error
	return results, err
}

