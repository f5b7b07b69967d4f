package models

import (
	"time"

	"github.com/clubsaas/clubsaas/internal/shared/constants"
)

type PlanModel struct {
	ID         uint   `gorm:"primarykey"`
	Name       string `gorm:"not null;size:100"`
	Interval   string `gorm:"column:billing_interval;not null;size:20"`
	PriceCents int64  `gorm:"not null"`
	Active     bool   `gorm:"not null;default:true;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}
