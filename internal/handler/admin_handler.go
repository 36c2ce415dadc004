package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/exam-session-api/internal/domain/entity"
	"github.com/yourusername/exam-session-api/internal/handler/dto"
	"github.com/yourusername/exam-session-api/internal/handler/helper"
	"github.com/yourusername/exam-session-api/internal/service"
)

// AdminHandler обрабатывает диагностические и административные запросы
type AdminHandler struct {
	sessionService *service.TestSessionService
}

// NewAdminHandler создает новый обработчик административных запросов
func NewAdminHandler(sessionService *service.TestSessionService) *AdminHandler {
	return &AdminHandler{
		sessionService: sessionService,
	}
}

// GetData возвращает всех студентов (без паролей) и все результаты
// GET /api/admin/data
func (h *AdminHandler) GetData(c *gin.Context) {
	snapshot, err := h.sessionService.AdminListAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminDataResponse{
		Users:      snapshot.Users,
		Results:    snapshot.Results,
		TotalUsers: snapshot.TotalUsers,
		TotalTests: snapshot.TotalTests,
	})
}

// ResetUser возвращает студенту допуск и удаляет его результат
// POST /api/admin/reset-user/:name
func (h *AdminHandler) ResetUser(c *gin.Context) {
	name := c.GetString(studentNameKey)

	if err := h.sessionService.AdminResetUser(c.Request.Context(), name); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "User reset successfully"})
}

// ExportResults экспортирует все результаты в CSV или Excel формате
// GET /api/admin/results/export?format=csv|xlsx
func (h *AdminHandler) ExportResults(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format, expected csv or xlsx"})
		return
	}

	results, err := h.sessionService.ExportResults(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("test_results_%s", time.Now().Format("2006-01-02"))

	if format == "xlsx" {
		h.exportXLSX(c, results, filename)
		return
	}
	h.exportCSV(c, results, filename)
}

// exportCSV экспортирует результаты в CSV с правильным экранированием спецсимволов
func (h *AdminHandler) exportCSV(c *gin.Context, results []entity.TestResult, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(helper.ExportHeaders)
	for _, r := range results {
		writer.Write(helper.ResultRow(r))
	}
}

// exportXLSX экспортирует результаты в Excel с использованием StreamWriter
func (h *AdminHandler) exportXLSX(c *gin.Context, results []entity.TestResult, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	if err := sw.SetRow("A1", toRow(helper.ExportHeaders)); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовков: %v", err)
	}
	for i, r := range results {
		rowNum := i + 2 // 1 - заголовки
		if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), toRow(helper.ResultRow(r))); err != nil {
			log.Printf("[AdminHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AdminHandler] Ошибка при Flush: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AdminHandler] Ошибка записи Excel в response: %v", err)
	}
}

func toRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, v := range cells {
		row[i] = v
	}
	return row
}
