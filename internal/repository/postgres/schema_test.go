package postgres

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
)

// Имена и пароли не ограничены по длине ни в одном из хранилищ
func TestSchema_UnboundedTextColumns(t *testing.T) {
	tests := []struct {
		model  interface{}
		fields []string
	}{
		{&entity.User{}, []string{"Name", "NameKey", "Password"}},
		{&entity.TestResult{}, []string{"StudentName", "StudentKey", "IP"}},
	}
	for _, tt := range tests {
		s, err := schema.Parse(tt.model, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)

		for _, name := range tt.fields {
			field := s.LookUpField(name)
			require.NotNil(t, field, "field %s", name)
			assert.Equal(t, schema.DataType("text"), field.DataType, "%s.%s", s.Table, name)
			assert.Zero(t, field.Size, "%s.%s", s.Table, name)
		}
	}
}
