package entity

import (
	"strings"
	"time"
)

// RedactedPassword подставляется вместо пароля в административных выгрузках
const RedactedPassword = "***"

// User представляет студента, проходящего тест
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	NameKey   string    `gorm:"type:text;not null;uniqueIndex" json:"-"`
	Password  string    `gorm:"type:text;not null" json:"password"`
	CanRetake bool      `gorm:"not null" json:"canRetake"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// NormalizeName приводит имя к ключу поиска: без пробелов по краям и в нижнем регистре.
// Все поиски студентов и результатов выполняются по этому ключу.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Matches проверяет, совпадает ли имя пользователя с переданным без учёта регистра
func (u *User) Matches(name string) bool {
	return NormalizeName(u.Name) == NormalizeName(name)
}

// Redacted возвращает копию пользователя со скрытым паролем
func (u User) Redacted() User {
	u.Password = RedactedPassword
	return u
}
