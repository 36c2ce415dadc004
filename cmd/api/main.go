package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/exam-session-api/internal/app"
	"github.com/yourusername/exam-session-api/internal/config"
	"github.com/yourusername/exam-session-api/internal/handler"
)

func main() {
	app.LoadDotEnv()

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Хранилище, блокировки по имени студента и сервис
	sessionService, cleanup, err := app.NewTestSessionService(cfg)
	if err != nil {
		log.Printf("Failed to initialize test session service: %v", err)
		os.Exit(1)
	}
	defer cleanup()
	if cfg.Redis.Enabled {
		log.Println("Блокировки студентов: Redis")
	}

	sessionHandler := handler.NewSessionHandler(sessionService)
	adminHandler := handler.NewAdminHandler(sessionService)

	router, err := handler.NewRouter(handler.RouterOptions{
		AllowOrigins:   cfg.CORS.AllowOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
	}, sessionHandler, adminHandler)
	if err != nil {
		log.Printf("Failed to build router: %v", err)
		os.Exit(1)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}

	log.Println("Server exited properly")
}
