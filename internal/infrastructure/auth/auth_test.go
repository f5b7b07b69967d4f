package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubsaas/clubsaas/internal/shared/authorization"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", 30)

	token, expiresIn, err := svc.Generate(7, authorization.RoleClubAdmin, "T1")
	require.NoError(t, err)
	assert.Equal(t, int64(1800), expiresIn)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, authorization.RoleClubAdmin, claims.Role)
	assert.Equal(t, "T1", claims.TenantID)
}

func TestJWTRejectsWrongSecretAndExpired(t *testing.T) {
	svc := NewJWTService("secret", 30)
	token, _, err := svc.Generate(1, authorization.RoleSuperAdmin, "")
	require.NoError(t, err)

	_, err = NewJWTService("other", 30).Verify(token)
	assert.Error(t, err)

	later := NewJWTService("secret", 30)
	later.now = biztime.FixedClock(time.Now().Add(time.Hour))
	_, err = later.Verify(token)
	assert.Error(t, err)
}

func TestJWTRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{UserID: 1, Role: authorization.RoleSuperAdmin}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("secret", 30).Verify(token)
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NoError(t, h.Verify("s3cret!", hash))
	assert.Error(t, h.Verify("wrong", hash))
	assert.Error(t, h.Verify("s3cret!", "not-a-hash"))

	_, err = h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Error(t, h.Verify(strings.Repeat("a", 73), hash))
}

func TestBcryptPasswordHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptPasswordHasher(bcrypt.MinCost).cost)
}
