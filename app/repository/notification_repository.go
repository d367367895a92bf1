package repository

import (
	"gorm.io/gorm"

	"github.com/CollectraHQ/Collectra/app/models"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository backed by GORM.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) List(bankID uint, offset, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("bank_id = ?", bankID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	return notifications, err
}
