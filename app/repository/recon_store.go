package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CollectraHQ/Collectra/app/models"
	"github.com/CollectraHQ/Collectra/internal/pkg/recon"
)

type reconStore struct {
	db *gorm.DB
}

// NewReconStore creates the recon.Store implementation backed by GORM. The
// database's transaction and isolation guarantees are the sole source of
// mutual exclusion for concurrent webhook deliveries.
func NewReconStore(db *gorm.DB) recon.Store {
	return &reconStore{db: db}
}

func (s *reconStore) WithinTransaction(ctx context.Context, fn func(recon.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&reconStore{db: tx})
	})
}

func (s *reconStore) CreateDeliveryIfNotExists(ctx context.Context, d *models.WebhookDelivery) (bool, *models.WebhookDelivery, error) {
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "external_txn_id"},
		},
		DoNothing: true,
	}).Create(d)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookDelivery
	if err := s.db.WithContext(ctx).
		Where("provider = ? AND external_txn_id = ?", d.Provider, d.ExternalTxnID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (s *reconStore) UpdateDelivery(ctx context.Context, d *models.WebhookDelivery) error {
	return s.db.WithContext(ctx).Save(d).Error
}

func (s *reconStore) CreatePaymentEvent(ctx context.Context, ev *models.PaymentEvent) error {
	return s.db.WithContext(ctx).Create(ev).Error
}

func (s *reconStore) CreateReconciliation(ctx context.Context, rec *models.Reconciliation) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *reconStore) ReconciliationByID(ctx context.Context, id uint) (*models.Reconciliation, error) {
	var rec models.Reconciliation
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *reconStore) CollectionByID(ctx context.Context, id uint) (*models.PendingCollection, error) {
	var pc models.PendingCollection
	if err := s.db.WithContext(ctx).First(&pc, id).Error; err != nil {
		return nil, err
	}
	return &pc, nil
}

func (s *reconStore) FindPendingByProviderTxn(ctx context.Context, provider, externalTxnID string) (*models.PendingCollection, error) {
	if externalTxnID == "" {
		return nil, nil
	}
	var pc models.PendingCollection
	err := s.db.WithContext(ctx).
		Where("type = ? AND status = ? AND matched = ? AND external_txn_id = ?",
			provider, models.COLLECTION_PENDING, false, externalTxnID).
		Order("created_at asc").
		First(&pc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

func (s *reconStore) FindFuzzyCandidates(ctx context.Context, provider string, amount decimal.Decimal, from, to time.Time) ([]models.PendingCollection, error) {
	var candidates []models.PendingCollection
	err := s.db.WithContext(ctx).
		Where("type = ? AND status = ? AND matched = ? AND amount = ? AND collected_at >= ? AND collected_at <= ?",
			provider, models.COLLECTION_PENDING, false, amount, from, to).
		Order("created_at asc").
		Find(&candidates).Error
	return candidates, err
}

// ClaimForWebhook is the atomic claim: a single conditional UPDATE that only
// succeeds while the row is still pending and unmatched. A loser of a
// concurrent race sees zero rows affected.
func (s *reconStore) ClaimForWebhook(ctx context.Context, collectionID uint, externalTxnID string, now time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.PendingCollection{}).
		Where("id = ? AND status = ? AND matched = ?", collectionID, models.COLLECTION_PENDING, false).
		Updates(map[string]interface{}{
			"status":          models.COLLECTION_APPROVED,
			"matched":         true,
			"matched_at":      now,
			"match_source":    models.MATCH_SOURCE_WEBHOOK,
			"external_txn_id": gorm.Expr("IF(external_txn_id = '', ?, external_txn_id)", externalTxnID),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
