package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/exam-session-api/internal/handler/dto"
)

// APIVersion — версия API, сообщаемая в /api/health
const APIVersion = "2.0"

// Health отвечает на проверку доступности сервиса
// GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   APIVersion,
	})
}
