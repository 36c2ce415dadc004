package jsonfile

import (
	"context"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
)

// ResultsFile — имя файла коллекции результатов
const ResultsFile = "testResults.json"

// TestResultRepo реализует repository.TestResultRepository поверх testResults.json
type TestResultRepo struct {
	results *collection[entity.TestResult]
}

// NewTestResultRepo открывает (или создаёт) testResults.json в каталоге dataDir
func NewTestResultRepo(dataDir string) (*TestResultRepo, error) {
	results, err := newCollection[entity.TestResult](dataDir, ResultsFile)
	if err != nil {
		return nil, err
	}
	return &TestResultRepo{results: results}, nil
}

// ListByStudentName возвращает результаты студента без учёта регистра имени
func (r *TestResultRepo) ListByStudentName(_ context.Context, name string) ([]entity.TestResult, error) {
	matched := make([]entity.TestResult, 0, 1)
	for _, res := range r.results.view() {
		if res.Matches(name) {
			matched = append(matched, res)
		}
	}
	return matched, nil
}

// Upsert заменяет первый результат с тем же именем студента, иначе добавляет новый
func (r *TestResultRepo) Upsert(_ context.Context, result *entity.TestResult) error {
	return r.results.update(func(results []entity.TestResult) ([]entity.TestResult, bool, error) {
		result.StudentKey = entity.NormalizeName(result.StudentName)
		for i := range results {
			if results[i].Matches(result.StudentName) {
				results[i] = *result
				return results, true, nil
			}
		}
		return append(results, *result), true, nil
	})
}

// DeleteByStudentName удаляет результаты студента; файл перезаписывается только если что-то удалено
func (r *TestResultRepo) DeleteByStudentName(_ context.Context, name string) (int64, error) {
	var removed int64
	err := r.results.update(func(results []entity.TestResult) ([]entity.TestResult, bool, error) {
		kept := results[:0]
		for _, res := range results {
			if res.Matches(name) {
				removed++
				continue
			}
			kept = append(kept, res)
		}
		return kept, removed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// List возвращает все результаты в порядке добавления
func (r *TestResultRepo) List(_ context.Context) ([]entity.TestResult, error) {
	return r.results.view(), nil
}
