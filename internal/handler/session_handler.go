package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/exam-session-api/internal/handler/dto"
	"github.com/yourusername/exam-session-api/internal/service"
)

// studentNameKey — ключ контекста, куда middleware кладёт имя из URL
const studentNameKey = "studentName"

// SessionHandler обрабатывает запросы студентов: вход, допуск, отправка теста, второй шанс
type SessionHandler struct {
	sessionService *service.TestSessionService
}

// NewSessionHandler создает новый обработчик тестовых сессий
func NewSessionHandler(sessionService *service.TestSessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Auth выполняет вход студента или регистрирует нового
// POST /api/auth
func (h *SessionHandler) Auth(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	res, err := h.sessionService.Authenticate(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	message := "Login successful"
	if res.Created {
		message = "Registration successful"
	}
	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: message,
		User: dto.UserSummary{
			Name:      res.User.Name,
			CanRetake: res.User.CanRetake,
		},
	})
}

// CanTakeTest сообщает, может ли студент проходить тест
// GET /api/can-take-test/:name
func (h *SessionHandler) CanTakeTest(c *gin.Context) {
	name := c.GetString(studentNameKey)

	eligibility, err := h.sessionService.CanTakeTest(c.Request.Context(), name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EligibilityResponse{
		CanRetake:    eligibility.CanRetake,
		HasCompleted: eligibility.HasCompleted,
	})
}

// SubmitTest сохраняет результат теста
// POST /api/submit-test
func (h *SessionHandler) SubmitTest(c *gin.Context) {
	var req dto.SubmitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	err := h.sessionService.SubmitTest(c.Request.Context(), service.SubmitInput{
		StudentName:   req.StudentName,
		Pattern:       req.Pattern,
		Score:         req.Score,
		Total:         req.Total,
		Answers:       req.Answers,
		PDFDownloaded: bool(req.PDFDownloaded),
		ClientIP:      c.ClientIP(),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Test result saved"})
}

// VerifySecondChance проверяет пароль второго шанса и снова допускает студента к тесту
// POST /api/verify-second-chance
func (h *SessionHandler) VerifySecondChance(c *gin.Context) {
	var req dto.SecondChanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.sessionService.GrantSecondChance(c.Request.Context(), req.Password, req.StudentName); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Second chance granted, you can retake the test",
	})
}

// GetTestResults возвращает результаты студента
// GET /api/test-results/:name
func (h *SessionHandler) GetTestResults(c *gin.Context) {
	name := c.GetString(studentNameKey)

	results, err := h.sessionService.GetResults(c.Request.Context(), name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResultsResponse{Results: results})
}
