package recon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/CollectraHQ/Collectra/app/models"
)

// Ledger owns the transactional boundary of webhook processing: delivery
// insert, matcher run and reconciliation write commit or roll back together.
// Redelivery of an already-seen (provider, external id) short-circuits to
// the stored reconciliation without invoking the matcher again.
type Ledger struct {
	store   Store
	matcher *Matcher
	alerts  AlertSink
	notify  Notifier
	now     func() time.Time
}

// Result is what one accepted delivery attempt produced. Collection is the
// claimed row on MATCHED outcomes, nil otherwise.
type Result struct {
	Delivery       *models.WebhookDelivery
	Reconciliation *models.Reconciliation
	Collection     *models.PendingCollection
	Duplicate      bool
	Matched        bool
	CollectionUUID string
}

// NewLedger wires the ledger. alerts and notify may be nil (no-ops); a nil
// clock falls back to time.Now.
func NewLedger(store Store, matcher *Matcher, alerts AlertSink, notify Notifier, now func() time.Time) *Ledger {
	if matcher == nil {
		matcher = NewMatcher(0, now)
	}
	if now == nil {
		now = time.Now
	}
	return &Ledger{store: store, matcher: matcher, alerts: alerts, notify: notify, now: now}
}

// Record idempotently records the event and decides its reconciliation.
func (l *Ledger) Record(ctx context.Context, ev *models.PaymentEvent) (*Result, error) {
	var res Result

	err := l.store.WithinTransaction(ctx, func(tx Store) error {
		delivery := &models.WebhookDelivery{
			Provider:      ev.Provider,
			ExternalTxnID: ev.ExternalTxnID,
			Outcome:       models.DELIVERY_ACCEPTED_NEW,
			ReceivedAt:    ev.ReceivedAt,
		}
		created, stored, err := tx.CreateDeliveryIfNotExists(ctx, delivery)
		if err != nil {
			return err
		}

		if !created {
			return l.replay(ctx, tx, stored, &res)
		}

		if err := tx.CreatePaymentEvent(ctx, ev); err != nil {
			return err
		}

		outcome, err := l.matcher.Match(ctx, tx, ev)
		if err != nil {
			return err
		}

		rec := &models.Reconciliation{
			DeliveryID: &stored.ID,
			Outcome:    outcome.Outcome,
			MatchType:  outcome.MatchType,
			DecidedAt:  l.now(),
		}
		if outcome.Collection != nil {
			rec.CollectionID = &outcome.Collection.ID
		}
		if err := tx.CreateReconciliation(ctx, rec); err != nil {
			return err
		}

		stored.PaymentEventID = &ev.ID
		stored.ReconciliationID = &rec.ID
		if err := tx.UpdateDelivery(ctx, stored); err != nil {
			return err
		}

		res.Delivery = stored
		res.Reconciliation = rec
		res.Matched = outcome.Outcome == models.RECON_MATCHED
		if outcome.Collection != nil {
			res.Collection = outcome.Collection
			res.CollectionUUID = outcome.Collection.UUID
		}
		return nil
	})
	if err != nil {
		return nil, wrapPersistence(err)
	}

	l.afterCommit(ctx, ev, &res)
	return &res, nil
}

// replay serves a redelivery from the stored rows. A stored schema
// rejection keeps rejecting; everything else replays the original outcome.
func (l *Ledger) replay(ctx context.Context, tx Store, stored *models.WebhookDelivery, res *Result) error {
	if stored.Outcome == models.DELIVERY_REJECTED_SCHEMA {
		return ErrSchema
	}

	res.Duplicate = true
	res.Delivery = stored
	if stored.ReconciliationID == nil {
		return nil
	}

	rec, err := tx.ReconciliationByID(ctx, *stored.ReconciliationID)
	if err != nil {
		return err
	}
	res.Reconciliation = rec
	if rec.Outcome == models.RECON_MATCHED && rec.CollectionID != nil {
		c, err := tx.CollectionByID(ctx, *rec.CollectionID)
		if err != nil {
			return err
		}
		res.Matched = true
		res.Collection = c
		res.CollectionUUID = c.UUID
	}
	return nil
}

// RecordSchemaRejection persists an audit delivery row for a payload that
// failed schema validation but still exposed a trustworthy external id.
func (l *Ledger) RecordSchemaRejection(ctx context.Context, provider, externalTxnID string) error {
	err := l.store.WithinTransaction(ctx, func(tx Store) error {
		_, _, err := tx.CreateDeliveryIfNotExists(ctx, &models.WebhookDelivery{
			Provider:      provider,
			ExternalTxnID: externalTxnID,
			Outcome:       models.DELIVERY_REJECTED_SCHEMA,
			ReceivedAt:    l.now(),
		})
		return err
	})
	return wrapPersistence(err)
}

// afterCommit runs side effects outside the transaction: a VARIANCE alert
// candidate for unmatched successful payments, and outcome notification.
func (l *Ledger) afterCommit(ctx context.Context, ev *models.PaymentEvent, res *Result) {
	if res.Duplicate || res.Reconciliation == nil {
		return
	}

	if l.alerts != nil && ev.IsSuccess() && res.Reconciliation.Outcome == models.RECON_UNMATCHED {
		// The transaction reference keeps distinct unmatched payments on the
		// same day from collapsing into one alert.
		alert := &models.Alert{
			Type:      models.ALERT_VARIANCE,
			AlertDate: models.AlertDateFor(ev.ReceivedAt),
			Reference: fmt.Sprintf("%s/%s", ev.Provider, ev.ExternalTxnID),
			Severity:  models.SEVERITY_WARNING,
			Description: fmt.Sprintf("unmatched %s payment %s of %s %s",
				ev.Provider, ev.ExternalTxnID, ev.Amount.StringFixed(2), ev.Currency),
		}
		if _, err := l.alerts.Emit(ctx, alert); err != nil {
			log.Errorf("[Ledger] variance alert for %s/%s failed: %v", ev.Provider, ev.ExternalTxnID, err)
		}
	}

	if l.notify != nil {
		if err := l.notify.ReconciliationDecided(ctx, res.Reconciliation, ev, res.Collection); err != nil {
			log.Errorf("[Ledger] outcome notification for %s/%s failed: %v", ev.Provider, ev.ExternalTxnID, err)
		}
	}
}

func wrapPersistence(err error) error {
	if err == nil {
		return nil
	}
	// Business rejections pass through untouched.
	for _, sentinel := range []error{ErrSchema, ErrUnknownProvider, ErrInvalidSignature, ErrMissingSignature, ErrReplay, ErrNoSecret, ErrPersistence} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
