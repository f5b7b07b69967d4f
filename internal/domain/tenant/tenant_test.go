package tenant

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

func TestNewTenant(t *testing.T) {
	tn, err := NewTenant("Clube Azul", "clube-azul", StatusBlocked, now)
	require.NoError(t, err)

	_, err = uuid.Parse(tn.ID())
	assert.NoError(t, err)
	assert.True(t, tn.IsBlocked())

	_, err = NewTenant("", "x", StatusActive, now)
	assert.Error(t, err)
	_, err = NewTenant("x", "", StatusActive, now)
	assert.Error(t, err)
	_, err = NewTenant("x", "x", Status("SUSPENDED"), now)
	assert.Error(t, err)
}

func TestSyncAccess(t *testing.T) {
	tn, err := NewTenant("Clube Azul", "clube-azul", StatusBlocked, now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	assert.True(t, tn.SyncAccess(true, later))
	assert.Equal(t, StatusActive, tn.Status())
	assert.Equal(t, later, tn.UpdatedAt())

	assert.False(t, tn.SyncAccess(true, later.Add(time.Hour)))
	assert.Equal(t, later, tn.UpdatedAt())

	assert.True(t, tn.SyncAccess(false, later))
	assert.Equal(t, StatusBlocked, tn.Status())
}
