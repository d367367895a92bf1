package repository

import (
	"github.com/CollectraHQ/Collectra/app/models"
	"gorm.io/gorm"
)

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a contact activity repository backed by GORM.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *models.ContactActivity) error {
	return r.db.Create(activity).Error
}

func (r *activityRepository) ListByAccount(accountID uint, offset, limit int) ([]models.ContactActivity, error) {
	var activities []models.ContactActivity
	err := r.db.Where("account_id = ?", accountID).
		Order("occurred_at desc").
		Offset(offset).Limit(limit).
		Find(&activities).Error
	return activities, err
}
