package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/user"
	uservo "github.com/clubsaas/clubsaas/internal/domain/user/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t), logger.NewNop())

	email, err := uservo.NewEmail("ops@platform.example")
	require.NoError(t, err)
	u, err := user.NewUser(email, "Ops", "$2a$hash", authorization.RoleSuperAdmin, nil, repoNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID())

	got, err := repo.GetByEmail(ctx, "ops@platform.example")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, authorization.RoleSuperAdmin, got.Role())
	assert.Equal(t, "", got.TenantID())

	dup, _ := user.NewUser(email, "Ops 2", "$2a$hash", authorization.RoleSuperAdmin, nil, repoNow)
	assert.True(t, errors.Is(repo.Create(ctx, dup), user.ErrEmailTaken))

	count, err := repo.CountByRole(ctx, authorization.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	missing, err := repo.GetByEmail(ctx, "nobody@platform.example")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlanRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(setupTestDB(t), logger.NewNop())

	pro, err := subscription.NewPlan("Pro", vo.IntervalMonthly, 9990, repoNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, pro))

	got, err := repo.GetByID(ctx, pro.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Pro", got.Name())
	assert.Equal(t, int64(9990), got.PriceCents())

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	missing, err := repo.GetByID(ctx, 404)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
