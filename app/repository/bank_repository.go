package repository

import (
	"github.com/CollectraHQ/Collectra/app/models"
	"gorm.io/gorm"
)

type bankRepository struct {
	db *gorm.DB
}

// NewBankRepository creates a bank repository backed by GORM.
func NewBankRepository(db *gorm.DB) BankRepository {
	return &bankRepository{db: db}
}

func (r *bankRepository) Create(bank *models.Bank) error {
	return r.db.Create(bank).Error
}

func (r *bankRepository) GetByID(id uint) (*models.Bank, error) {
	var bank models.Bank
	if err := r.db.First(&bank, id).Error; err != nil {
		return nil, err
	}
	return &bank, nil
}

func (r *bankRepository) GetBySlug(slug string) (*models.Bank, error) {
	var bank models.Bank
	if err := r.db.Where("slug = ?", slug).First(&bank).Error; err != nil {
		return nil, err
	}
	return &bank, nil
}

func (r *bankRepository) ListActive() ([]models.Bank, error) {
	var banks []models.Bank
	err := r.db.Where("is_active = ?", true).Order("id asc").Find(&banks).Error
	return banks, err
}

func (r *bankRepository) Update(bank *models.Bank) error {
	return r.db.Save(bank).Error
}
