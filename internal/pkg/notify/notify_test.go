package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CollectraHQ/Collectra/app/models"
)

type captureRepo struct {
	rows []models.Notification
	err  error
}

func (c *captureRepo) Create(n *models.Notification) error {
	if c.err != nil {
		return c.err
	}
	c.rows = append(c.rows, *n)
	return nil
}

func (c *captureRepo) List(bankID uint, offset, limit int) ([]models.Notification, error) {
	return c.rows, nil
}

func event() *models.PaymentEvent {
	return &models.PaymentEvent{
		Provider:      "bkash",
		ExternalTxnID: "TX-1",
		Amount:        decimal.RequireFromString("100.00"),
		Currency:      "BDT",
	}
}

func TestReconciliationDecidedMatched(t *testing.T) {
	repo := &captureRepo{}
	svc := NewService(repo, func(to, subject, body string) error { return nil })

	rec := &models.Reconciliation{ID: 4, Outcome: models.RECON_MATCHED, MatchType: models.MATCH_TYPE_EXACT}
	col := &models.PendingCollection{ID: 11, UUID: "col-uuid", BankID: 3}
	require.NoError(t, svc.ReconciliationDecided(context.Background(), rec, event(), col))

	require.Len(t, repo.rows, 1)
	assert.Equal(t, models.NOTIFICATION_MATCHED, repo.rows[0].Type)
	assert.Equal(t, uint(3), repo.rows[0].BankID)
	assert.Equal(t, uint(4), repo.rows[0].ReferenceID)
	assert.Contains(t, repo.rows[0].Content, "col-uuid")
	assert.Contains(t, repo.rows[0].Content, "TX-1")
}

func TestReconciliationDecidedUnmatched(t *testing.T) {
	repo := &captureRepo{}
	svc := NewService(repo, func(to, subject, body string) error { return nil })

	rec := &models.Reconciliation{ID: 5, Outcome: models.RECON_UNMATCHED}
	require.NoError(t, svc.ReconciliationDecided(context.Background(), rec, event(), nil))

	require.Len(t, repo.rows, 1)
	assert.Equal(t, models.NOTIFICATION_UNMATCHED, repo.rows[0].Type)
	assert.Zero(t, repo.rows[0].BankID)
	assert.Contains(t, repo.rows[0].Content, "could not be matched")
}

func TestReconciliationDecidedPropagatesStoreError(t *testing.T) {
	repo := &captureRepo{err: errors.New("insert failed")}
	svc := NewService(repo, func(to, subject, body string) error { return nil })

	rec := &models.Reconciliation{ID: 6, Outcome: models.RECON_UNMATCHED}
	assert.Error(t, svc.ReconciliationDecided(context.Background(), rec, event(), nil))
}

func TestReconciliationDecidedMailFailureIsSwallowed(t *testing.T) {
	t.Setenv("NOTIFY_EMAIL", "ops@example.test")

	repo := &captureRepo{}
	svc := NewService(repo, func(to, subject, body string) error { return errors.New("smtp down") })

	rec := &models.Reconciliation{ID: 7, Outcome: models.RECON_MATCHED}
	col := &models.PendingCollection{ID: 12, UUID: "col-uuid", BankID: 2}
	assert.NoError(t, svc.ReconciliationDecided(context.Background(), rec, event(), col))
	assert.Len(t, repo.rows, 1)
}
