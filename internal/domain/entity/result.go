package entity

import (
	"time"

	"gorm.io/datatypes"
)

// TestResult представляет отправленный студентом результат теста.
// Pattern, Score, Total и Answers хранятся как есть, без интерпретации.
type TestResult struct {
	ID            int64          `gorm:"primaryKey;autoIncrement:false" json:"id"`
	StudentName   string         `gorm:"type:text;not null" json:"studentName"`
	StudentKey    string         `gorm:"type:text;not null;uniqueIndex" json:"-"`
	Pattern       datatypes.JSON `gorm:"type:jsonb" json:"pattern"`
	Score         datatypes.JSON `gorm:"type:jsonb" json:"score"`
	Total         datatypes.JSON `gorm:"type:jsonb" json:"total"`
	Answers       datatypes.JSON `gorm:"type:jsonb" json:"answers"`
	PDFDownloaded bool           `gorm:"column:pdf_downloaded;not null;default:false" json:"pdfDownloaded"`
	SubmittedAt   time.Time      `gorm:"not null" json:"submittedAt"`
	IP            string         `gorm:"type:text;not null;default:''" json:"ip"`
}

// TableName определяет имя таблицы для GORM
func (TestResult) TableName() string {
	return "test_results"
}

// Matches проверяет, принадлежит ли результат студенту с указанным именем (без учёта регистра)
func (r *TestResult) Matches(name string) bool {
	return NormalizeName(r.StudentName) == NormalizeName(name)
}

// IsFinalized возвращает true, если PDF уже скачан и результат заблокирован
func (r *TestResult) IsFinalized() bool {
	return r.PDFDownloaded
}
