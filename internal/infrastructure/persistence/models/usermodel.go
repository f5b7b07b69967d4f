package models

import (
	"time"

	"github.com/clubsaas/clubsaas/internal/shared/constants"
)

type UserModel struct {
	ID           uint    `gorm:"primarykey"`
	Email        string  `gorm:"uniqueIndex;not null;size:255"`
	Name         string  `gorm:"not null;size:200"`
	PasswordHash string  `gorm:"not null;size:100"`
	Role         string  `gorm:"not null;size:20;index"`
	TenantID     *string `gorm:"size:36;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
