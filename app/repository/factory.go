package repository

import (
	"sync"

	"gorm.io/gorm"

	"github.com/CollectraHQ/Collectra/internal/pkg/recon"
)

// Repositories bundles all repository instances.
type Repositories struct {
	Bank           BankRepository
	User           UserRepository
	Account        AccountRepository
	Activity       ActivityRepository
	Collection     CollectionRepository
	Alert          AlertRepository
	Reconciliation ReconciliationRepository
	Notification   NotificationRepository
	ReconStore     recon.Store
}

// NewRepositories creates all repositories sharing one DB handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Bank:           NewBankRepository(db),
		User:           NewUserRepository(db),
		Account:        NewAccountRepository(db),
		Activity:       NewActivityRepository(db),
		Collection:     NewCollectionRepository(db),
		Alert:          NewAlertRepository(db),
		Reconciliation: NewReconciliationRepository(db),
		Notification:   NewNotificationRepository(db),
		ReconStore:     NewReconStore(db),
	}
}

// Factory manages repository instances and ensures they are singletons.
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory.
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

// GetRepositories returns a singleton instance of all repositories.
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetBankRepository returns the bank repository.
func (f *Factory) GetBankRepository() BankRepository {
	return f.GetRepositories().Bank
}

// GetUserRepository returns the user repository.
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetAccountRepository returns the loan account repository.
func (f *Factory) GetAccountRepository() AccountRepository {
	return f.GetRepositories().Account
}

// GetActivityRepository returns the contact activity repository.
func (f *Factory) GetActivityRepository() ActivityRepository {
	return f.GetRepositories().Activity
}

// GetCollectionRepository returns the pending collection repository.
func (f *Factory) GetCollectionRepository() CollectionRepository {
	return f.GetRepositories().Collection
}

// GetAlertRepository returns the alert repository.
func (f *Factory) GetAlertRepository() AlertRepository {
	return f.GetRepositories().Alert
}

// GetReconciliationRepository returns the reconciliation repository.
func (f *Factory) GetReconciliationRepository() ReconciliationRepository {
	return f.GetRepositories().Reconciliation
}

// GetNotificationRepository returns the notification repository.
func (f *Factory) GetNotificationRepository() NotificationRepository {
	return f.GetRepositories().Notification
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory.
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance.
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance.
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
