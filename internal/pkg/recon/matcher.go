package recon

import (
	"context"
	"fmt"
	"time"

	"github.com/CollectraHQ/Collectra/app/models"
)

// DefaultFuzzyWindow is the symmetric window around the event timestamp for
// fuzzy candidates. Intentionally independent from the per-bank deposit SLA.
const DefaultFuzzyWindow = 24 * time.Hour

// Matcher links a successful payment event to exactly one pending
// collection: exact external-id match first, then fuzzy amount/window with
// an oldest-first tie-break. The claim is a conditional update; losing the
// race yields Unmatched for this event, never a retry.
type Matcher struct {
	window time.Duration
	now    func() time.Time
}

// MatchOutcome is the matcher's decision for one event.
type MatchOutcome struct {
	Outcome    string // models.RECON_MATCHED or models.RECON_UNMATCHED
	MatchType  string // models.MATCH_TYPE_EXACT or models.MATCH_TYPE_FUZZY when matched
	Collection *models.PendingCollection
}

// NewMatcher builds a matcher. Zero window and nil clock fall back to
// DefaultFuzzyWindow and time.Now.
func NewMatcher(window time.Duration, now func() time.Time) *Matcher {
	if window <= 0 {
		window = DefaultFuzzyWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Matcher{window: window, now: now}
}

// Match runs the exact-then-fuzzy search against the store, which must be
// the transaction-bound store of the surrounding ledger record call.
func (m *Matcher) Match(ctx context.Context, store CollectionStore, ev *models.PaymentEvent) (MatchOutcome, error) {
	unmatched := MatchOutcome{Outcome: models.RECON_UNMATCHED}

	if !ev.IsSuccess() {
		return unmatched, nil
	}

	exact, err := store.FindPendingByProviderTxn(ctx, ev.Provider, ev.ExternalTxnID)
	if err != nil {
		return unmatched, fmt.Errorf("%w: exact lookup: %v", ErrPersistence, err)
	}
	if exact != nil {
		claimed, err := store.ClaimForWebhook(ctx, exact.ID, ev.ExternalTxnID, m.now())
		if err != nil {
			return unmatched, fmt.Errorf("%w: exact claim: %v", ErrPersistence, err)
		}
		if !claimed {
			// Lost the race; some other event already satisfied this row.
			return unmatched, nil
		}
		return m.claimed(ctx, store, exact.ID, models.MATCH_TYPE_EXACT)
	}

	from := ev.EventAt.Add(-m.window)
	to := ev.EventAt.Add(m.window)
	candidates, err := store.FindFuzzyCandidates(ctx, ev.Provider, ev.Amount, from, to)
	if err != nil {
		return unmatched, fmt.Errorf("%w: fuzzy lookup: %v", ErrPersistence, err)
	}
	if len(candidates) == 0 {
		return unmatched, nil
	}

	// Oldest-first tie-break: the payment most likely corresponds to the
	// longest-outstanding claim. Candidates arrive ordered by created_at.
	oldest := candidates[0]
	claimed, err := store.ClaimForWebhook(ctx, oldest.ID, ev.ExternalTxnID, m.now())
	if err != nil {
		return unmatched, fmt.Errorf("%w: fuzzy claim: %v", ErrPersistence, err)
	}
	if !claimed {
		return unmatched, nil
	}
	return m.claimed(ctx, store, oldest.ID, models.MATCH_TYPE_FUZZY)
}

func (m *Matcher) claimed(ctx context.Context, store CollectionStore, id uint, matchType string) (MatchOutcome, error) {
	// Re-read so callers see the post-claim state (status, txn id backfill).
	updated, err := store.CollectionByID(ctx, id)
	if err != nil {
		return MatchOutcome{Outcome: models.RECON_UNMATCHED}, fmt.Errorf("%w: reload claimed row: %v", ErrPersistence, err)
	}
	return MatchOutcome{
		Outcome:    models.RECON_MATCHED,
		MatchType:  matchType,
		Collection: updated,
	}, nil
}
