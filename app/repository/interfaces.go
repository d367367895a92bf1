package repository

import (
	"time"

	"github.com/CollectraHQ/Collectra/app/models"
)

// BankRepository defines tenant configuration lookups.
type BankRepository interface {
	Create(bank *models.Bank) error
	GetByID(id uint) (*models.Bank, error)
	GetBySlug(slug string) (*models.Bank, error)
	ListActive() ([]models.Bank, error)
	Update(bank *models.Bank) error
}

// UserRepository defines user/agent database operations.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, error)
	Update(user *models.User) error
}

// AccountRepository defines loan account operations.
type AccountRepository interface {
	Create(account *models.LoanAccount) error
	GetByID(id uint) (*models.LoanAccount, error)
	GetByUUID(uuid string) (*models.LoanAccount, error)
	List(bankID uint, offset, limit int) ([]models.LoanAccount, error)
	Count(bankID uint) (int64, error)
	Update(account *models.LoanAccount) error
	// ListStale returns workable accounts with no contact activity at or
	// after the cutoff; feeds the NO_UPDATE sweep.
	ListStale(bankID uint, cutoff time.Time) ([]models.LoanAccount, error)
}

// ActivityRepository defines contact activity operations.
type ActivityRepository interface {
	Create(activity *models.ContactActivity) error
	ListByAccount(accountID uint, offset, limit int) ([]models.ContactActivity, error)
}

// CollectionRepository defines pending collection operations used by the
// API surface and the SLA sweep. Webhook matching goes through the recon
// store instead, which owns the transactional claim.
type CollectionRepository interface {
	Create(pc *models.PendingCollection) error
	GetByID(id uint) (*models.PendingCollection, error)
	GetByUUID(uuid string) (*models.PendingCollection, error)
	List(bankID uint, status string, offset, limit int) ([]models.PendingCollection, error)
	// ListOverdueDeposits returns pending cash/bank-deposit collections
	// created before the cutoff; feeds the DEPOSIT_DELAY sweep.
	ListOverdueDeposits(bankID uint, cutoff time.Time) ([]models.PendingCollection, error)
}

// AlertRepository defines alert persistence with idempotent creation.
type AlertRepository interface {
	// CreateIfNotExists inserts the alert unless the (type, account, day,
	// reference) key already exists and reports whether a new row was created.
	CreateIfNotExists(alert *models.Alert) (bool, *models.Alert, error)
	GetByID(id uint) (*models.Alert, error)
	List(bankID uint, status string, offset, limit int) ([]models.Alert, error)
	Acknowledge(id uint) error
}

// ReconciliationRepository defines reconciliation reads and the manual
// decision path.
type ReconciliationRepository interface {
	GetByID(id uint) (*models.Reconciliation, error)
	// List returns the bank's reconciliations, scoped through the matched
	// collection's bank.
	List(bankID uint, offset, limit int) ([]models.Reconciliation, error)
	// DecideManually approves or rejects a pending collection under the same
	// conditional-claim guard the webhook matcher uses. Returns the created
	// reconciliation (approve only) and whether the claim succeeded.
	DecideManually(collectionID uint, approve bool, externalTxnID string, now time.Time) (*models.Reconciliation, bool, error)
}

// NotificationRepository defines outbound notification persistence.
type NotificationRepository interface {
	Create(n *models.Notification) error
	List(bankID uint, offset, limit int) ([]models.Notification, error)
}
