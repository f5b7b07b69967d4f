package user

import (
	"context"

	"github.com/clubsaas/clubsaas/internal/shared/authorization"
)

// Repository defines the interface for user data operations. Getters return
// (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	CountByRole(ctx context.Context, role authorization.UserRole) (int64, error)
}
