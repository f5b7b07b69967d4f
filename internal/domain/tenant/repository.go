package tenant

import "context"

// Repository persists tenants. Getters return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	List(ctx context.Context) ([]*Tenant, error)
	// UpdateStatus writes only the status column.
	UpdateStatus(ctx context.Context, t *Tenant) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
