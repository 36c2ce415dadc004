package helper

import (
	"encoding/json"
	"strconv"

	"gorm.io/datatypes"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
)

// ExportHeaders — заголовки колонок выгрузки результатов
var ExportHeaders = []string{"ID", "Student", "Pattern", "Score", "Total", "Answers", "PDF Downloaded", "Submitted At", "IP"}

// ResultRow преобразует результат в строку выгрузки (CSV/XLSX)
func ResultRow(r entity.TestResult) []string {
	pdf := "No"
	if r.PDFDownloaded {
		pdf = "Yes"
	}
	return []string{
		strconv.FormatInt(r.ID, 10),
		SanitizeForExcel(r.StudentName),
		SanitizeForExcel(JSONCell(r.Pattern)),
		SanitizeForExcel(JSONCell(r.Score)),
		SanitizeForExcel(JSONCell(r.Total)),
		SanitizeForExcel(JSONCell(r.Answers)),
		pdf,
		r.SubmittedAt.UTC().Format("2006-01-02 15:04:05"),
		r.IP,
	}
}

// JSONCell превращает произвольное JSON-значение в текст ячейки:
// строки без кавычек, null как пустая ячейка, остальное как исходный JSON
func JSONCell(v datatypes.JSON) string {
	if len(v) == 0 || string(v) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// SanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func SanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
