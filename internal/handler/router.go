package handler

import (
	"fmt"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/exam-session-api/internal/middleware"
)

// RouterOptions содержит настройки HTTP-слоя
type RouterOptions struct {
	AllowOrigins   []string
	TrustedProxies []string
}

// NewRouter собирает gin.Engine со всеми маршрутами API
func NewRouter(opts RouterOptions, sessionHandler *SessionHandler, adminHandler *AdminHandler) (*gin.Engine, error) {
	router := gin.Default()

	// Доверенные прокси нужны для корректного c.ClientIP() за балансировщиком
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	router.Use(middleware.RequestID())
	router.Use(cors.New(corsConfig(opts.AllowOrigins)))

	nameParam := middleware.ExtractNameParam("name", studentNameKey)

	api := router.Group("/api")
	{
		api.GET("/health", Health)

		api.POST("/auth", sessionHandler.Auth)
		api.GET("/can-take-test/:name", nameParam, sessionHandler.CanTakeTest)
		api.POST("/submit-test", sessionHandler.SubmitTest)
		api.POST("/verify-second-chance", sessionHandler.VerifySecondChance)
		api.GET("/test-results/:name", nameParam, sessionHandler.GetTestResults)

		admin := api.Group("/admin")
		{
			admin.GET("/data", adminHandler.GetData)
			admin.POST("/reset-user/:name", nameParam, adminHandler.ResetUser)
			admin.GET("/results/export", adminHandler.ExportResults)
		}
	}

	return router, nil
}

// corsConfig разрешает любые источники, если список пуст или содержит "*"
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
