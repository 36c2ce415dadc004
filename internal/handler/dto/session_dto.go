package dto

import (
	"encoding/json"
	"time"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
)

// AuthRequest — тело POST /api/auth
type AuthRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SubmitTestRequest — тело POST /api/submit-test.
// Pattern, Score, Total и Answers принимаются в любом JSON-виде.
type SubmitTestRequest struct {
	StudentName   string          `json:"studentName"`
	Pattern       json.RawMessage `json:"pattern"`
	Score         json.RawMessage `json:"score"`
	Total         json.RawMessage `json:"total"`
	Answers       json.RawMessage `json:"answers"`
	PDFDownloaded Truthy          `json:"pdfDownloaded"`
}

// Truthy — флаг, принимающий любое JSON-значение. Ложью считаются false, 0, "" и null,
// всё остальное (включая "false", массивы и объекты) считается истиной.
type Truthy bool

// UnmarshalJSON разбирает произвольное JSON-значение в Truthy
func (t *Truthy) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = false
	case bool:
		*t = Truthy(x)
	case float64:
		*t = x != 0
	case string:
		*t = x != ""
	default:
		*t = true
	}
	return nil
}

// SecondChanceRequest — тело POST /api/verify-second-chance
type SecondChanceRequest struct {
	Password    string `json:"password"`
	StudentName string `json:"studentName"`
}

// UserSummary — публичные данные студента
type UserSummary struct {
	Name      string `json:"name"`
	CanRetake bool   `json:"canRetake"`
}

// AuthResponse — ответ на вход или регистрацию
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// MessageResponse — общий ответ об успешной операции
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// EligibilityResponse — ответ GET /api/can-take-test/:name
type EligibilityResponse struct {
	CanRetake    bool `json:"canRetake"`
	HasCompleted bool `json:"hasCompleted"`
}

// ResultsResponse — ответ GET /api/test-results/:name
type ResultsResponse struct {
	Results []entity.TestResult `json:"results"`
}

// HealthResponse — ответ GET /api/health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// AdminDataResponse — ответ GET /api/admin/data (пароли скрыты)
type AdminDataResponse struct {
	Users      []entity.User       `json:"users"`
	Results    []entity.TestResult `json:"results"`
	TotalUsers int                 `json:"totalUsers"`
	TotalTests int                 `json:"totalTests"`
}
