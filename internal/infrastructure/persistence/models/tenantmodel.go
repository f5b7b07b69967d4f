package models

import (
	"time"

	"github.com/clubsaas/clubsaas/internal/shared/constants"
)

// TenantModel represents the database persistence model for tenants (clubs)
type TenantModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"not null;size:200"`
	Slug      string `gorm:"uniqueIndex;not null;size:100"`
	Status    string `gorm:"not null;size:20;index:idx_tenant_status"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TenantModel) TableName() string {
	return constants.TableTenants
}
