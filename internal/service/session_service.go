package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
	"github.com/yourusername/exam-session-api/internal/domain/repository"
	apperrors "github.com/yourusername/exam-session-api/internal/pkg/errors"
)

// AuthResult — результат входа или регистрации студента
type AuthResult struct {
	User *entity.User
	// Created равен true, если студент был зарегистрирован этим вызовом
	Created bool
}

// Eligibility описывает допуск студента к тесту
type Eligibility struct {
	CanRetake    bool
	HasCompleted bool
}

// SubmitInput содержит данные отправленного теста.
// Pattern, Score, Total и Answers не интерпретируются и сохраняются как есть.
type SubmitInput struct {
	StudentName   string
	Pattern       json.RawMessage
	Score         json.RawMessage
	Total         json.RawMessage
	Answers       json.RawMessage
	PDFDownloaded bool
	ClientIP      string
}

// AdminSnapshot — диагностическая выгрузка всех данных (пароли скрыты)
type AdminSnapshot struct {
	Users      []entity.User
	Results    []entity.TestResult
	TotalUsers int
	TotalTests int
}

// TestSessionService реализует все переходы состояния студента:
// регистрация, допуск, отправка результата, второй шанс и административный сброс.
type TestSessionService struct {
	userRepo             repository.UserRepository
	resultRepo           repository.TestResultRepository
	locker               repository.NameLocker
	secondChancePassword string
	now                  func() time.Time
}

// NewTestSessionService создает новый сервис тестовых сессий
func NewTestSessionService(
	userRepo repository.UserRepository,
	resultRepo repository.TestResultRepository,
	locker repository.NameLocker,
	secondChancePassword string,
) *TestSessionService {
	return &TestSessionService{
		userRepo:             userRepo,
		resultRepo:           resultRepo,
		locker:               locker,
		secondChancePassword: secondChancePassword,
		now:                  time.Now,
	}
}

// Authenticate выполняет вход существующего студента или регистрирует нового
func (s *TestSessionService) Authenticate(ctx context.Context, name, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, fmt.Errorf("%w: name and password required", apperrors.ErrValidation)
	}

	unlock, err := s.lockStudent(ctx, name)
	if err != nil {
		return nil, err
	}
	defer unlock()

	user, err := s.userRepo.GetByName(ctx, name)
	switch {
	case err == nil:
		if user.Password != password {
			return nil, fmt.Errorf("%w: invalid password", apperrors.ErrUnauthorized)
		}
		return &AuthResult{User: user}, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	now := s.now()
	user = &entity.User{
		ID:        entity.NewRecordID(now),
		Name:      name,
		Password:  password,
		CanRetake: true,
		CreatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("[TestSessionService] Зарегистрирован студент %q", user.Name)
	return &AuthResult{User: user, Created: true}, nil
}

// CanTakeTest сообщает, может ли студент проходить тест
func (s *TestSessionService) CanTakeTest(ctx context.Context, name string) (*Eligibility, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	results, err := s.resultRepo.ListByStudentName(ctx, name)
	if err != nil {
		return nil, err
	}

	hasCompleted := hasFinalized(results)
	return &Eligibility{
		CanRetake:    user.CanRetake && !hasCompleted,
		HasCompleted: hasCompleted,
	}, nil
}

// SubmitTest сохраняет результат теста. Результат с уже скачанным PDF
// блокирует дальнейшие отправки до выдачи второго шанса.
func (s *TestSessionService) SubmitTest(ctx context.Context, in SubmitInput) error {
	studentName := strings.TrimSpace(in.StudentName)
	if studentName == "" {
		return fmt.Errorf("%w: student name required", apperrors.ErrValidation)
	}

	unlock, err := s.lockStudent(ctx, studentName)
	if err != nil {
		return err
	}
	defer unlock()

	existing, err := s.resultRepo.ListByStudentName(ctx, studentName)
	if err != nil {
		return err
	}
	if hasFinalized(existing) {
		return fmt.Errorf("%w: test already completed and PDF downloaded", apperrors.ErrConflict)
	}

	now := s.now()
	result := &entity.TestResult{
		ID:            entity.NewRecordID(now),
		StudentName:   studentName,
		Pattern:       datatypes.JSON(in.Pattern),
		Score:         datatypes.JSON(in.Score),
		Total:         datatypes.JSON(in.Total),
		Answers:       datatypes.JSON(in.Answers),
		PDFDownloaded: in.PDFDownloaded,
		SubmittedAt:   now,
		IP:            in.ClientIP,
	}
	if err := s.resultRepo.Upsert(ctx, result); err != nil {
		return err
	}

	if !in.PDFDownloaded {
		return nil
	}

	// Результат без зарегистрированного студента допустим: флаг просто некому выставить
	err = s.userRepo.SetCanRetake(ctx, studentName, false)
	if errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[TestSessionService] Результат %q сохранён, но студент не зарегистрирован", studentName)
		return nil
	}
	return err
}

// GrantSecondChance по общему паролю снова допускает студента к тесту
// и удаляет его прежний результат, даже заблокированный.
func (s *TestSessionService) GrantSecondChance(ctx context.Context, password, studentName string) error {
	if password != s.secondChancePassword {
		return fmt.Errorf("%w: invalid second chance password", apperrors.ErrUnauthorized)
	}
	if strings.TrimSpace(studentName) == "" {
		return fmt.Errorf("%w: student name required", apperrors.ErrValidation)
	}

	unlock, err := s.lockStudent(ctx, studentName)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.resetStudent(ctx, studentName); err != nil {
		return err
	}
	log.Printf("[TestSessionService] Студенту %q выдан второй шанс", studentName)
	return nil
}

// GetResults возвращает результаты студента (пустой срез, если их нет)
func (s *TestSessionService) GetResults(ctx context.Context, name string) ([]entity.TestResult, error) {
	results, err := s.resultRepo.ListByStudentName(ctx, name)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []entity.TestResult{}
	}
	return results, nil
}

// AdminListAll возвращает всех студентов (без паролей) и все результаты
func (s *TestSessionService) AdminListAll(ctx context.Context) (*AdminSnapshot, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.ExportResults(ctx)
	if err != nil {
		return nil, err
	}

	redacted := make([]entity.User, len(users))
	for i, u := range users {
		redacted[i] = u.Redacted()
	}

	return &AdminSnapshot{
		Users:      redacted,
		Results:    results,
		TotalUsers: len(redacted),
		TotalTests: len(results),
	}, nil
}

// AdminResetUser делает то же, что GrantSecondChance, но без проверки пароля
func (s *TestSessionService) AdminResetUser(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name required", apperrors.ErrValidation)
	}

	unlock, err := s.lockStudent(ctx, name)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.resetStudent(ctx, name); err != nil {
		return err
	}
	log.Printf("[TestSessionService] Администратор сбросил студента %q", name)
	return nil
}

// ExportResults возвращает все результаты для выгрузки
func (s *TestSessionService) ExportResults(ctx context.Context) ([]entity.TestResult, error) {
	results, err := s.resultRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []entity.TestResult{}
	}
	return results, nil
}

// resetStudent возвращает допуск и удаляет результаты. Вызывается под блокировкой имени.
func (s *TestSessionService) resetStudent(ctx context.Context, name string) error {
	if _, err := s.userRepo.GetByName(ctx, name); err != nil {
		return err
	}
	if err := s.userRepo.SetCanRetake(ctx, name, true); err != nil {
		return err
	}

	removed, err := s.resultRepo.DeleteByStudentName(ctx, name)
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Printf("[TestSessionService] Удалено результатов студента %q: %d", name, removed)
	}
	return nil
}

func (s *TestSessionService) lockStudent(ctx context.Context, name string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, entity.NormalizeName(name))
	if err != nil {
		return nil, fmt.Errorf("failed to lock student %q: %w", name, err)
	}
	return unlock, nil
}

func hasFinalized(results []entity.TestResult) bool {
	for i := range results {
		if results[i].IsFinalized() {
			return true
		}
	}
	return false
}
