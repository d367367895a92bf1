package recon

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CollectraHQ/Collectra/app/models"
)

// CollectionStore is the persistence surface the matcher needs. The
// conditional claim is the only mutation: a single-row UPDATE guarded on
// status and matched, serializing concurrent claims without external locks.
type CollectionStore interface {
	// FindPendingByProviderTxn returns the pending collection carrying the
	// event's external transaction id, or nil when none exists.
	FindPendingByProviderTxn(ctx context.Context, provider, externalTxnID string) (*models.PendingCollection, error)

	// FindFuzzyCandidates returns pending, unmatched collections of the
	// provider's type with exactly the given amount and a claimed collection
	// timestamp inside [from, to] (both inclusive), oldest created first.
	FindFuzzyCandidates(ctx context.Context, provider string, amount decimal.Decimal, from, to time.Time) ([]models.PendingCollection, error)

	// ClaimForWebhook transitions the collection PENDING->APPROVED with
	// matched=true, matched_at=now, match_source=webhook, backfilling the
	// external txn id when previously empty. Returns false when the row was
	// no longer pending/unmatched (a concurrent event won the race).
	ClaimForWebhook(ctx context.Context, collectionID uint, externalTxnID string, now time.Time) (bool, error)

	CollectionByID(ctx context.Context, id uint) (*models.PendingCollection, error)
}

// Store is the ledger's persistence surface. WithinTransaction brackets the
// delivery insert, the matcher run and the reconciliation write so no
// partial state is ever visible.
type Store interface {
	CollectionStore

	WithinTransaction(ctx context.Context, fn func(Store) error) error

	// CreateDeliveryIfNotExists inserts the delivery keyed by
	// (provider, external_txn_id) and reports whether a new row was created;
	// on conflict the previously stored row is returned unchanged.
	CreateDeliveryIfNotExists(ctx context.Context, d *models.WebhookDelivery) (bool, *models.WebhookDelivery, error)
	UpdateDelivery(ctx context.Context, d *models.WebhookDelivery) error

	CreatePaymentEvent(ctx context.Context, ev *models.PaymentEvent) error
	CreateReconciliation(ctx context.Context, rec *models.Reconciliation) error
	ReconciliationByID(ctx context.Context, id uint) (*models.Reconciliation, error)
}

// AlertSink receives alert candidates (VARIANCE from the ledger,
// DEPOSIT_DELAY / NO_UPDATE from the SLA sweep). Implementations dedup on
// (type, account, day) and report whether a new alert was stored.
type AlertSink interface {
	Emit(ctx context.Context, alert *models.Alert) (bool, error)
}

// Notifier is informed of decided reconciliations for downstream email and
// audit. collection is the claimed row on MATCHED outcomes, nil otherwise.
// Failures are logged, never propagated into the webhook response.
type Notifier interface {
	ReconciliationDecided(ctx context.Context, rec *models.Reconciliation, ev *models.PaymentEvent, collection *models.PendingCollection) error
}
