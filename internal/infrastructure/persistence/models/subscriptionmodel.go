package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/clubsaas/clubsaas/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions.
// tenant_id is unique: one subscription per tenant.
type SubscriptionModel struct {
	ID               uint      `gorm:"primarykey"`
	TenantID         string    `gorm:"uniqueIndex;not null;size:36"`
	PlanID           uint      `gorm:"not null;index:idx_plan_subscription"`
	Status           string    `gorm:"not null;size:20;index:idx_subscription_reconcile,priority:2"`
	CurrentPeriodEnd time.Time `gorm:"not null"`
	ExternalID       *string   `gorm:"uniqueIndex;size:100"`
	PaymentProvider  string    `gorm:"not null;size:20;index:idx_subscription_reconcile,priority:1"`
	Version          int       `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
