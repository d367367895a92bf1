package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrPTPDetailsRequired is returned when a promise-to-pay activity is logged
// without the promised amount or date.
var ErrPTPDetailsRequired = errors.New("ptp activities require ptp_amount and ptp_date")

const (
	ACTIVITY_VISIT = "visit"
	ACTIVITY_CALL  = "call"
	ACTIVITY_SMS   = "sms"
	ACTIVITY_PTP   = "ptp"
)

// ContactActivity records an agent touch on a loan account. The SLA sweep
// treats the newest activity per account as the "last update".
type ContactActivity struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	BankID    uint             `gorm:"index;not null" json:"bank_id" validate:"required"`
	AccountID uint             `gorm:"index;not null" json:"account_id" validate:"required"`
	Account   LoanAccount      `gorm:"foreignKey:AccountID" json:"-"`
	AgentID   uint             `gorm:"index;not null" json:"agent_id" validate:"required"`
	Agent     User             `gorm:"foreignKey:AgentID" json:"-"`
	Type      string           `gorm:"type:varchar(20);not null" json:"type" validate:"oneof=visit call sms ptp"`
	Notes     string           `gorm:"type:text" json:"notes" validate:"max=2000"`
	PTPAmount *decimal.Decimal `gorm:"type:decimal(14,2);default:null" json:"ptp_amount,omitempty"`
	PTPDate   *time.Time       `gorm:"type:date;default:null" json:"ptp_date,omitempty"`
	OccurredAt time.Time       `gorm:"not null;index" json:"occurred_at" validate:"required"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (ca *ContactActivity) Validate() error {
	v := validator.New()

	if err := v.Struct(ca); err != nil {
		return err
	}
	if ca.Type == ACTIVITY_PTP && (ca.PTPAmount == nil || ca.PTPDate == nil) {
		return ErrPTPDetailsRequired
	}
	return nil
}
