package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CollectraHQ/Collectra/app/models"
)

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates an alert repository backed by GORM.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

// CreateIfNotExists inserts the alert; the unique (type, account_id,
// alert_date, reference) index absorbs repeated sweep runs without
// duplicates while keeping distinct variance references apart.
func (r *alertRepository) CreateIfNotExists(alert *models.Alert) (bool, *models.Alert, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "type"},
			{Name: "account_id"},
			{Name: "alert_date"},
			{Name: "reference"},
		},
		DoNothing: true,
	}).Create(alert)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.Alert
	if err := r.db.
		Where("type = ? AND account_id = ? AND alert_date = ? AND reference = ?",
			alert.Type, alert.AccountID, alert.AlertDate, alert.Reference).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *alertRepository) GetByID(id uint) (*models.Alert, error) {
	var alert models.Alert
	if err := r.db.First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// List returns the bank's own alerts plus system alerts (bank_id 0, the
// variance candidates no tenant row could be derived for).
func (r *alertRepository) List(bankID uint, status string, offset, limit int) ([]models.Alert, error) {
	var alerts []models.Alert
	q := r.db.Where("bank_id = ? OR bank_id = 0", bankID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) Acknowledge(id uint) error {
	return r.db.Model(&models.Alert{}).
		Where("id = ?", id).
		Update("status", models.ALERT_ACKNOWLEDGED).Error
}
