package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{"  BOB ", "bob"},
		{"", ""},
		{"Ölga", "ölga"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "NormalizeName(%q)", tt.in)
	}
}

func TestUser_Matches_CaseInsensitive(t *testing.T) {
	u := &User{Name: "alice"}

	assert.True(t, u.Matches("Alice"))
	assert.True(t, u.Matches(" ALICE "))
	assert.False(t, u.Matches("alicia"))
}

func TestUser_Redacted_DoesNotTouchOriginal(t *testing.T) {
	u := User{ID: 1, Name: "bob", Password: "pw1", CanRetake: true}

	redacted := u.Redacted()

	assert.Equal(t, RedactedPassword, redacted.Password)
	assert.Equal(t, "pw1", u.Password, "Исходный пароль не должен меняться")
	assert.Equal(t, u.Name, redacted.Name)
	assert.Equal(t, u.CanRetake, redacted.CanRetake)
}

func TestNewRecordID_StrictlyIncreasing(t *testing.T) {
	now := time.Now()

	first := NewRecordID(now)
	second := NewRecordID(now)
	third := NewRecordID(now.Add(-time.Hour))

	assert.GreaterOrEqual(t, first, now.UnixMilli())
	assert.Greater(t, second, first, "ID в одну миллисекунду должны возрастать")
	assert.Greater(t, third, second, "ID не должен уменьшаться при отставании часов")
}

func TestTestResult_JSONFieldNames(t *testing.T) {
	// Формат файла testResults.json должен сохранять camelCase-имена полей
	r := TestResult{
		ID:            42,
		StudentName:   "bob",
		StudentKey:    "bob",
		Pattern:       datatypes.JSON(`"A"`),
		Score:         datatypes.JSON(`7`),
		Total:         datatypes.JSON(`10`),
		Answers:       datatypes.JSON(`[1,2,3]`),
		PDFDownloaded: true,
		SubmittedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		IP:            "10.0.0.1",
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{"id", "studentName", "pattern", "score", "total", "answers", "pdfDownloaded", "submittedAt", "ip"} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "StudentKey", "Служебный ключ не должен попадать в JSON")
	assert.JSONEq(t, `[1,2,3]`, string(fields["answers"]))
	assert.True(t, r.IsFinalized())
}

func TestTestResult_MissingPayloadIsNull(t *testing.T) {
	data, err := json.Marshal(TestResult{StudentName: "bob"})
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "null", string(fields["pattern"]))
}
