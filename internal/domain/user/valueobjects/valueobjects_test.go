package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	e, err := NewEmail("  Owner@Club.Example ")
	require.NoError(t, err)
	assert.Equal(t, "owner@club.example", e.String())

	_, err = NewEmail("")
	assert.Error(t, err)
	_, err = NewEmail("owner@")
	assert.Error(t, err)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("a", 73)))
}
