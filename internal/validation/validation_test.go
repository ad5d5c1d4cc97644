package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/plannerhub/internal/models"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail(""), "empty email means trial signup")
	assert.NoError(t, ValidateEmail("u@example.com"))
	assert.NoError(t, ValidateEmail("a@admin.com"))

	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("user@"))
	assert.Error(t, ValidateEmail("plain"))
	assert.Error(t, ValidateEmail("a@b@c"))
}

func TestValidateClockRange(t *testing.T) {
	assert.NoError(t, ValidateClockRange("09:00", "17:00", 60))
	assert.Error(t, ValidateClockRange("17:00", "09:00", 60))
	assert.Error(t, ValidateClockRange("09:00", "17:00", 0))
	assert.Error(t, ValidateClockRange("25:00", "17:00", 60))
	assert.Error(t, ValidateClockRange("nine", "17:00", 60))
}

func TestValidatePrivacy(t *testing.T) {
	status, err := ValidatePrivacy("public")
	require.NoError(t, err)
	assert.Equal(t, models.PrivacyPublic, status)

	status, err = ValidatePrivacy("  Private ")
	require.NoError(t, err)
	assert.Equal(t, models.PrivacyPrivate, status)

	_, err = ValidatePrivacy("friends-only")
	assert.Error(t, err)
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2026-08-29"))
	assert.Error(t, ValidateDate("29/08/2026"))
	assert.Error(t, ValidateDate("someday"))
}
