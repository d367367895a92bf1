package models

import (
	"time"
)

const (
	DefaultDepositSLAHours = 24
	DefaultUpdateSLADays   = 7
)

// Bank is the tenant. Every domain row carries a BankID and all SLA
// thresholds are configured per bank.
type Bank struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Slug            string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"slug" validate:"required,min=2,max=80"`
	OpsEmail        string    `gorm:"type:varchar(200)" json:"ops_email" validate:"omitempty,email"`
	DepositSLAHours int       `gorm:"default:24" json:"deposit_sla_hours" validate:"min=0,max=720"`
	UpdateSLADays   int       `gorm:"default:7" json:"update_sla_days" validate:"min=0,max=365"`
	IsActive        bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// DepositSLA returns the configured deposit turnaround as a duration.
func (b *Bank) DepositSLA() time.Duration {
	hours := b.DepositSLAHours
	if hours <= 0 {
		hours = DefaultDepositSLAHours
	}
	return time.Duration(hours) * time.Hour
}

// UpdateSLA returns the configured account-contact threshold as a duration.
func (b *Bank) UpdateSLA() time.Duration {
	days := b.UpdateSLADays
	if days <= 0 {
		days = DefaultUpdateSLADays
	}
	return time.Duration(days) * 24 * time.Hour
}
