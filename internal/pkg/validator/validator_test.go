package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-03-14")
	assert.True(t, ok)

	_, ok = IsValidDate("14-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidMonth(t *testing.T) {
	assert.True(t, IsValidMonth(1))
	assert.True(t, IsValidMonth(12))
	assert.False(t, IsValidMonth(0))
	assert.False(t, IsValidMonth(13))
}

func TestIsValidWeekday(t *testing.T) {
	assert.True(t, IsValidWeekday(0))
	assert.True(t, IsValidWeekday(6))
	assert.False(t, IsValidWeekday(-1))
	assert.False(t, IsValidWeekday(7))
}

func TestIsValidMonthKey(t *testing.T) {
	parsed, ok := IsValidMonthKey("2025-07")
	assert.True(t, ok)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, 7, int(parsed.Month()))
	assert.Equal(t, time.Local, parsed.Location())

	_, ok = IsValidMonthKey("2025-7")
	assert.False(t, ok)

	_, ok = IsValidMonthKey("July 2025")
	assert.False(t, ok)
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "user_id", Message: "user_id is required"},
	}

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "date is required", m["date"])
	assert.Contains(t, errs.Error(), "user_id: user_id is required")
}
