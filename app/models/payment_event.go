package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNonPositiveAmount guards money columns across the domain models.
var ErrNonPositiveAmount = errors.New("amount must be greater than zero")

const (
	EVENT_OUTCOME_SUCCESS = "success"
	EVENT_OUTCOME_OTHER   = "other"
)

// PaymentEvent is the canonical, provider-agnostic form of an inbound payment
// notification. Created exactly once per accepted delivery and never mutated;
// the raw payload is retained for audit only.
type PaymentEvent struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Provider       string          `gorm:"type:varchar(20);not null;index" json:"provider"`
	ExternalTxnID  string          `gorm:"type:varchar(100);not null;index" json:"external_txn_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency       string          `gorm:"type:varchar(3);not null" json:"currency"`
	ProviderStatus string          `gorm:"type:varchar(50);not null" json:"provider_status"`
	Outcome        string          `gorm:"type:varchar(20);not null;index" json:"outcome"`
	EventAt        time.Time       `gorm:"not null" json:"event_at"`
	ReceivedAt     time.Time       `gorm:"not null" json:"received_at"`
	RawPayload     string          `gorm:"type:longtext;not null" json:"-"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// IsSuccess reports whether the provider confirmed the payment.
func (e *PaymentEvent) IsSuccess() bool {
	return e.Outcome == EVENT_OUTCOME_SUCCESS
}
