package recon

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CollectraHQ/Collectra/app/models"
)

// fakeStore is an in-memory Store for matcher/ledger/gateway tests. The
// mutex keeps it safe for the concurrent claim tests.
type fakeStore struct {
	mu          sync.Mutex
	collections map[uint]*models.PendingCollection
	deliveries  map[string]*models.WebhookDelivery
	events      []*models.PaymentEvent
	recs        map[uint]*models.Reconciliation
	nextID      uint

	denyClaim bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		collections: make(map[uint]*models.PendingCollection),
		deliveries:  make(map[string]*models.WebhookDelivery),
		recs:        make(map[uint]*models.Reconciliation),
	}
}

func (s *fakeStore) addCollection(pc models.PendingCollection) *models.PendingCollection {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	pc.ID = s.nextID
	if pc.UUID == "" {
		pc.UUID = fmt.Sprintf("uuid-%d", pc.ID)
	}
	if pc.Status == "" {
		pc.Status = models.COLLECTION_PENDING
	}
	cp := pc
	s.collections[pc.ID] = &cp
	return &cp
}

func (s *fakeStore) FindPendingByProviderTxn(ctx context.Context, provider, externalTxnID string) (*models.PendingCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if externalTxnID == "" {
		return nil, nil
	}
	for _, pc := range s.collections {
		if pc.Type == provider && pc.ExternalTxnID == externalTxnID && pc.Status == models.COLLECTION_PENDING && !pc.Matched {
			cp := *pc
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FindFuzzyCandidates(ctx context.Context, provider string, amount decimal.Decimal, from, to time.Time) ([]models.PendingCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.PendingCollection
	for _, pc := range s.collections {
		if pc.Type != provider || pc.Status != models.COLLECTION_PENDING || pc.Matched {
			continue
		}
		if !pc.Amount.Equal(amount) {
			continue
		}
		if pc.CollectedAt.Before(from) || pc.CollectedAt.After(to) {
			continue
		}
		out = append(out, *pc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) ClaimForWebhook(ctx context.Context, collectionID uint, externalTxnID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.denyClaim {
		return false, nil
	}
	pc, ok := s.collections[collectionID]
	if !ok || pc.Status != models.COLLECTION_PENDING || pc.Matched {
		return false, nil
	}
	pc.Status = models.COLLECTION_APPROVED
	pc.Matched = true
	pc.MatchedAt = &now
	pc.MatchSource = models.MATCH_SOURCE_WEBHOOK
	if pc.ExternalTxnID == "" {
		pc.ExternalTxnID = externalTxnID
	}
	return true, nil
}

func (s *fakeStore) CollectionByID(ctx context.Context, id uint) (*models.PendingCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pc, ok := s.collections[id]
	if !ok {
		return nil, fmt.Errorf("collection %d not found", id)
	}
	cp := *pc
	return &cp, nil
}

func (s *fakeStore) WithinTransaction(ctx context.Context, fn func(Store) error) error {
	return fn(s)
}

func (s *fakeStore) CreateDeliveryIfNotExists(ctx context.Context, d *models.WebhookDelivery) (bool, *models.WebhookDelivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := d.Provider + "|" + d.ExternalTxnID
	if stored, ok := s.deliveries[key]; ok {
		cp := *stored
		return false, &cp, nil
	}
	s.nextID++
	d.ID = s.nextID
	cp := *d
	s.deliveries[key] = &cp
	out := cp
	return true, &out, nil
}

func (s *fakeStore) UpdateDelivery(ctx context.Context, d *models.WebhookDelivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := d.Provider + "|" + d.ExternalTxnID
	cp := *d
	s.deliveries[key] = &cp
	return nil
}

func (s *fakeStore) CreatePaymentEvent(ctx context.Context, ev *models.PaymentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	ev.ID = s.nextID
	cp := *ev
	s.events = append(s.events, &cp)
	return nil
}

func (s *fakeStore) CreateReconciliation(ctx context.Context, rec *models.Reconciliation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec.ID = s.nextID
	cp := *rec
	s.recs[rec.ID] = &cp
	return nil
}

func (s *fakeStore) ReconciliationByID(ctx context.Context, id uint) (*models.Reconciliation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recs[id]
	if !ok {
		return nil, fmt.Errorf("reconciliation %d not found", id)
	}
	cp := *rec
	return &cp, nil
}

func (s *fakeStore) deliveryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deliveries)
}

func (s *fakeStore) reconciliationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

func (s *fakeStore) eventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// fakeAlertSink records emitted alerts.
type fakeAlertSink struct {
	mu     sync.Mutex
	alerts []models.Alert
}

func (f *fakeAlertSink) Emit(ctx context.Context, alert *models.Alert) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, *alert)
	return true, nil
}

// fakeNotifier records decided reconciliations.
type fakeNotifier struct {
	mu      sync.Mutex
	calls   []string
	bankIDs []uint
}

func (f *fakeNotifier) ReconciliationDecided(ctx context.Context, rec *models.Reconciliation, ev *models.PaymentEvent, collection *models.PendingCollection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rec.Outcome)
	if collection != nil {
		f.bankIDs = append(f.bankIDs, collection.BankID)
	}
	return nil
}
