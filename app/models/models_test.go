package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankSLADefaults(t *testing.T) {
	b := Bank{}
	assert.Equal(t, 24*time.Hour, b.DepositSLA())
	assert.Equal(t, 7*24*time.Hour, b.UpdateSLA())

	b = Bank{DepositSLAHours: 48, UpdateSLADays: 3}
	assert.Equal(t, 48*time.Hour, b.DepositSLA())
	assert.Equal(t, 3*24*time.Hour, b.UpdateSLA())
}

func TestAlertDateFor(t *testing.T) {
	// The day bucket is computed in UTC regardless of the input zone.
	dhaka := time.FixedZone("BST", 6*3600)
	late := time.Date(2026, 3, 12, 2, 30, 0, 0, dhaka)
	assert.Equal(t, "2026-03-11", AlertDateFor(late))
	assert.Equal(t, "2026-03-12", AlertDateFor(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)))
}

func TestUserAPIKeyRoundTrip(t *testing.T) {
	u := &User{}
	raw, err := u.GenerateAPIKey()
	require.NoError(t, err)

	assert.True(t, len(raw) > 16)
	assert.Equal(t, raw[:4], "clt_")
	assert.Equal(t, HashAPIKey(raw), u.APIKeyHash)
	assert.Equal(t, raw[:16], u.APIKeyPrefix)
	assert.Nil(t, u.APIKeyLastUsedAt)

	// Hashing is stable and whitespace-tolerant.
	assert.Equal(t, HashAPIKey(raw), HashAPIKey("  "+raw+"\n"))
}

func TestUserPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestPendingCollectionValidate(t *testing.T) {
	valid := PendingCollection{
		BankID:      1,
		AccountID:   2,
		AgentID:     3,
		Type:        COLLECTION_TYPE_BKASH,
		Amount:      decimal.RequireFromString("100.00"),
		Currency:    "BDT",
		CollectedAt: time.Now(),
		Status:      COLLECTION_PENDING,
	}
	assert.NoError(t, valid.Validate())

	badType := valid
	badType.Type = "cheque"
	assert.Error(t, badType.Validate())

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.ErrorIs(t, zeroAmount.Validate(), ErrNonPositiveAmount)

	negative := valid
	negative.Amount = decimal.RequireFromString("-5.00")
	assert.ErrorIs(t, negative.Validate(), ErrNonPositiveAmount)
}

func TestPendingCollectionTypeHelpers(t *testing.T) {
	assert.True(t, (&PendingCollection{Type: COLLECTION_TYPE_CASH}).IsDepositType())
	assert.True(t, (&PendingCollection{Type: COLLECTION_TYPE_BANK_DEPOSIT}).IsDepositType())
	assert.False(t, (&PendingCollection{Type: COLLECTION_TYPE_BKASH}).IsDepositType())
	assert.True(t, (&PendingCollection{Status: COLLECTION_PENDING}).IsPending())
	assert.False(t, (&PendingCollection{Status: COLLECTION_APPROVED}).IsPending())
}

func TestContactActivityPTPValidation(t *testing.T) {
	base := ContactActivity{
		BankID:     1,
		AccountID:  2,
		AgentID:    3,
		Type:       ACTIVITY_PTP,
		OccurredAt: time.Now(),
	}
	assert.ErrorIs(t, base.Validate(), ErrPTPDetailsRequired)

	amount := decimal.RequireFromString("500.00")
	date := time.Now().AddDate(0, 0, 7)
	base.PTPAmount = &amount
	base.PTPDate = &date
	assert.NoError(t, base.Validate())

	visit := base
	visit.Type = ACTIVITY_VISIT
	visit.PTPAmount = nil
	visit.PTPDate = nil
	assert.NoError(t, visit.Validate())
}

func TestLoanAccountIsWorkable(t *testing.T) {
	assert.True(t, (&LoanAccount{Status: ACCOUNT_STATUS_ACTIVE}).IsWorkable())
	assert.True(t, (&LoanAccount{Status: ACCOUNT_STATUS_LEGAL}).IsWorkable())
	assert.False(t, (&LoanAccount{Status: ACCOUNT_STATUS_SETTLED}).IsWorkable())
	assert.False(t, (&LoanAccount{Status: ACCOUNT_STATUS_WRITEOFF}).IsWorkable())
}

func TestReconciliationIsMatched(t *testing.T) {
	assert.True(t, (&Reconciliation{Outcome: RECON_MATCHED}).IsMatched())
	assert.True(t, (&Reconciliation{Outcome: RECON_MANUAL}).IsMatched())
	assert.False(t, (&Reconciliation{Outcome: RECON_UNMATCHED}).IsMatched())
}
