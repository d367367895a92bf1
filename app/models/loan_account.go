package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ACCOUNT_STATUS_ACTIVE    = "active"
	ACCOUNT_STATUS_SETTLED   = "settled"
	ACCOUNT_STATUS_WRITEOFF  = "written_off"
	ACCOUNT_STATUS_LEGAL     = "legal"
	ACCOUNT_STATUS_SUSPENDED = "suspended"
)

// LoanAccount is a delinquent loan handed over for field recovery.
type LoanAccount struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UUID            string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	BankID          uint            `gorm:"index:idx_loan_accounts_bank_number,priority:1;not null" json:"bank_id" validate:"required"`
	Bank            Bank            `gorm:"foreignKey:BankID" json:"-"`
	AccountNumber   string          `gorm:"type:varchar(64);not null;index:idx_loan_accounts_bank_number,unique,priority:2" json:"account_number" validate:"required,max=64"`
	BorrowerName    string          `gorm:"type:varchar(150);not null" json:"borrower_name" validate:"required,max=150"`
	BorrowerMobile  string          `gorm:"type:varchar(20)" json:"borrower_mobile" validate:"omitempty,min=7,max=20"`
	BorrowerAddress string          `gorm:"type:text" json:"borrower_address" validate:"max=1000"`
	Outstanding     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"outstanding"`
	AssignedAgentID *uint           `gorm:"index" json:"assigned_agent_id"`
	AssignedAgent   *User           `gorm:"foreignKey:AssignedAgentID" json:"-"`
	Status          string          `gorm:"type:varchar(30);default:'active';index" json:"status" validate:"oneof=active settled written_off legal suspended"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (a *LoanAccount) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// BeforeCreate assigns a public identifier when none was provided.
func (a *LoanAccount) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	return nil
}

// IsWorkable reports whether the account can still receive collections.
func (a *LoanAccount) IsWorkable() bool {
	return a.Status == ACCOUNT_STATUS_ACTIVE || a.Status == ACCOUNT_STATUS_LEGAL
}
