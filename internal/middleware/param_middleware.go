package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractNameParam создает middleware для извлечения имени студента из URL.
// paramName - имя параметра в URL (например, "name").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
// Пустое (или состоящее из пробелов) имя отклоняется с 400.
func ExtractNameParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.Param(paramName))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
			c.Abort()
			return
		}
		c.Set(contextKey, name)
		c.Next()
	}
}
