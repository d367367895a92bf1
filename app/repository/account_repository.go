package repository

import (
	"time"

	"github.com/CollectraHQ/Collectra/app/models"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a loan account repository backed by GORM.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *models.LoanAccount) error {
	return r.db.Create(account).Error
}

func (r *accountRepository) GetByID(id uint) (*models.LoanAccount, error) {
	var account models.LoanAccount
	if err := r.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByUUID(uuid string) (*models.LoanAccount, error) {
	var account models.LoanAccount
	if err := r.db.Where("uuid = ?", uuid).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) List(bankID uint, offset, limit int) ([]models.LoanAccount, error) {
	var accounts []models.LoanAccount
	err := r.db.Where("bank_id = ?", bankID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&accounts).Error
	return accounts, err
}

func (r *accountRepository) Count(bankID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.LoanAccount{}).Where("bank_id = ?", bankID).Count(&count).Error
	return count, err
}

func (r *accountRepository) Update(account *models.LoanAccount) error {
	return r.db.Save(account).Error
}

func (r *accountRepository) ListStale(bankID uint, cutoff time.Time) ([]models.LoanAccount, error) {
	var accounts []models.LoanAccount
	recent := r.db.Model(&models.ContactActivity{}).
		Select("account_id").
		Where("bank_id = ? AND occurred_at >= ?", bankID, cutoff)
	err := r.db.Where("bank_id = ? AND status IN ?", bankID,
		[]string{models.ACCOUNT_STATUS_ACTIVE, models.ACCOUNT_STATUS_LEGAL}).
		Where("id NOT IN (?)", recent).
		Order("id asc").
		Find(&accounts).Error
	return accounts, err
}
