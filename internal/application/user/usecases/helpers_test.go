package usecases

import (
	"errors"
	"strings"

	"github.com/clubsaas/clubsaas/internal/shared/authorization"
)

// plainHasher prefixes passwords so tests can assert on stored hashes.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if strings.TrimPrefix(hash, "hashed:") != password {
		return errors.New("mismatch")
	}
	return nil
}

type issuedToken struct {
	userID   uint
	role     authorization.UserRole
	tenantID string
}

type fakeIssuer struct {
	issued []issuedToken
	err    error
}

func (f *fakeIssuer) Generate(userID uint, role authorization.UserRole, tenantID string) (string, int64, error) {
	if f.err != nil {
		return "", 0, f.err
	}
	f.issued = append(f.issued, issuedToken{userID: userID, role: role, tenantID: tenantID})
	return "token", 3600, nil
}
