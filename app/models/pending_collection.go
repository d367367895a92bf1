package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Collection payment types. Mobile wallet types can be confirmed by a
// provider webhook; deposit types are confirmed manually and are subject to
// the deposit SLA sweep.
const (
	COLLECTION_TYPE_CASH         = "cash"
	COLLECTION_TYPE_BANK_DEPOSIT = "bank_deposit"
	COLLECTION_TYPE_BKASH        = "bkash"
	COLLECTION_TYPE_NAGAD        = "nagad"
)

const (
	COLLECTION_PENDING  = "pending"
	COLLECTION_APPROVED = "approved"
	COLLECTION_REJECTED = "rejected"
)

const (
	MATCH_SOURCE_WEBHOOK = "webhook"
	MATCH_SOURCE_MANUAL  = "manual"
)

// PendingCollection is a payment an agent claims to have received from a
// borrower, awaiting confirmation. PENDING is the only non-terminal status;
// the matched flag is set at most once, by the webhook matcher's conditional
// claim or by a manual decision.
type PendingCollection struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UUID          string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	BankID        uint            `gorm:"index;not null" json:"bank_id" validate:"required"`
	Bank          Bank            `gorm:"foreignKey:BankID" json:"-"`
	AccountID     uint            `gorm:"index;not null" json:"account_id" validate:"required"`
	Account       LoanAccount     `gorm:"foreignKey:AccountID" json:"-"`
	AgentID       uint            `gorm:"index;not null" json:"agent_id" validate:"required"`
	Agent         User            `gorm:"foreignKey:AgentID" json:"-"`
	Type          string          `gorm:"type:varchar(20);not null;index" json:"type" validate:"oneof=cash bank_deposit bkash nagad"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(3);default:'BDT'" json:"currency" validate:"omitempty,len=3"`
	CollectedAt   time.Time       `gorm:"not null;index" json:"collected_at" validate:"required"`
	ExternalTxnID string          `gorm:"type:varchar(100);default:'';index" json:"external_txn_id" validate:"max=100"`
	Status        string          `gorm:"type:varchar(20);default:'pending';index" json:"status" validate:"oneof=pending approved rejected"`
	Matched       bool            `gorm:"default:false;index" json:"matched"`
	MatchedAt     *time.Time      `gorm:"type:timestamp;default:null" json:"matched_at,omitempty"`
	MatchSource   string          `gorm:"type:varchar(20);default:''" json:"match_source"`
	Notes         string          `gorm:"type:text" json:"notes" validate:"max=2000"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (pc *PendingCollection) Validate() error {
	v := validator.New()

	if err := v.Struct(pc); err != nil {
		return err
	}
	if !pc.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return nil
}

// BeforeCreate assigns a public identifier when none was provided.
func (pc *PendingCollection) BeforeCreate(tx *gorm.DB) error {
	if pc.UUID == "" {
		pc.UUID = uuid.New().String()
	}
	return nil
}

// IsPending reports whether the collection can still be matched or decided.
func (pc *PendingCollection) IsPending() bool {
	return pc.Status == COLLECTION_PENDING
}

// IsDepositType reports whether the collection is subject to the deposit SLA
// (cash in hand or a bank deposit slip, both needing manual verification).
func (pc *PendingCollection) IsDepositType() bool {
	return pc.Type == COLLECTION_TYPE_CASH || pc.Type == COLLECTION_TYPE_BANK_DEPOSIT
}
