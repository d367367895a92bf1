package repository

import (
	"time"

	"github.com/CollectraHQ/Collectra/app/models"
	"gorm.io/gorm"
)

type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a pending collection repository backed by GORM.
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(pc *models.PendingCollection) error {
	return r.db.Create(pc).Error
}

func (r *collectionRepository) GetByID(id uint) (*models.PendingCollection, error) {
	var pc models.PendingCollection
	if err := r.db.First(&pc, id).Error; err != nil {
		return nil, err
	}
	return &pc, nil
}

func (r *collectionRepository) GetByUUID(uuid string) (*models.PendingCollection, error) {
	var pc models.PendingCollection
	if err := r.db.Where("uuid = ?", uuid).First(&pc).Error; err != nil {
		return nil, err
	}
	return &pc, nil
}

func (r *collectionRepository) List(bankID uint, status string, offset, limit int) ([]models.PendingCollection, error) {
	var collections []models.PendingCollection
	q := r.db.Where("bank_id = ?", bankID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&collections).Error
	return collections, err
}

func (r *collectionRepository) ListOverdueDeposits(bankID uint, cutoff time.Time) ([]models.PendingCollection, error) {
	var collections []models.PendingCollection
	err := r.db.Where("bank_id = ? AND status = ? AND type IN ? AND created_at < ?",
		bankID,
		models.COLLECTION_PENDING,
		[]string{models.COLLECTION_TYPE_CASH, models.COLLECTION_TYPE_BANK_DEPOSIT},
		cutoff,
	).Order("created_at asc").Find(&collections).Error
	return collections, err
}
