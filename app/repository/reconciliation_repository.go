package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/CollectraHQ/Collectra/app/models"
)

type reconciliationRepository struct {
	db *gorm.DB
}

// NewReconciliationRepository creates a reconciliation repository backed by GORM.
func NewReconciliationRepository(db *gorm.DB) ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

func (r *reconciliationRepository) GetByID(id uint) (*models.Reconciliation, error) {
	var rec models.Reconciliation
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns reconciliations visible to the bank: rows decided against
// one of its collections, plus unattributed rows (no collection claimed).
func (r *reconciliationRepository) List(bankID uint, offset, limit int) ([]models.Reconciliation, error) {
	var recs []models.Reconciliation
	err := r.db.
		Joins("LEFT JOIN pending_collections ON pending_collections.id = reconciliations.collection_id").
		Where("pending_collections.bank_id = ? OR reconciliations.collection_id IS NULL", bankID).
		Order("reconciliations.decided_at desc").
		Offset(offset).Limit(limit).
		Find(&recs).Error
	return recs, err
}

// DecideManually approves or rejects a pending collection under the same
// conditional guard the webhook matcher uses, so a racing webhook and a
// manual decision can never both win.
func (r *reconciliationRepository) DecideManually(collectionID uint, approve bool, externalTxnID string, now time.Time) (*models.Reconciliation, bool, error) {
	var rec *models.Reconciliation
	claimed := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		status := models.COLLECTION_REJECTED
		updates := map[string]interface{}{
			"status":       status,
			"match_source": models.MATCH_SOURCE_MANUAL,
		}
		if approve {
			status = models.COLLECTION_APPROVED
			updates["status"] = status
			updates["matched"] = true
			updates["matched_at"] = now
			if externalTxnID != "" {
				updates["external_txn_id"] = gorm.Expr("IF(external_txn_id = '', ?, external_txn_id)", externalTxnID)
			}
		}

		res := tx.Model(&models.PendingCollection{}).
			Where("id = ? AND status = ? AND matched = ?", collectionID, models.COLLECTION_PENDING, false).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already decided, by a webhook or another operator.
			return nil
		}
		claimed = true

		if approve {
			cid := collectionID
			rec = &models.Reconciliation{
				CollectionID: &cid,
				Outcome:      models.RECON_MANUAL,
				DecidedAt:    now,
			}
			return tx.Create(rec).Error
		}
		return nil
	})

	return rec, claimed, err
}
