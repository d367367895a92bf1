package slasweep

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/CollectraHQ/Collectra/app/models"
)

// BankSource lists the tenants to sweep.
type BankSource interface {
	ListActive() ([]models.Bank, error)
}

// CollectionSource provides the deposit-delay scan.
type CollectionSource interface {
	ListOverdueDeposits(bankID uint, cutoff time.Time) ([]models.PendingCollection, error)
}

// AccountSource provides the stale-account scan.
type AccountSource interface {
	ListStale(bankID uint, cutoff time.Time) ([]models.LoanAccount, error)
}

// AlertSink receives the sweep's alert candidates. Implementations dedup on
// (type, account, day) so repeated runs never flood duplicates.
type AlertSink interface {
	Emit(ctx context.Context, alert *models.Alert) (bool, error)
}

// Sweeper scans pending deposit collections and quiet accounts against each
// bank's SLA configuration. All dependencies are injected; there is no
// ambient global state.
type Sweeper struct {
	banks       BankSource
	collections CollectionSource
	accounts    AccountSource
	alerts      AlertSink
	now         func() time.Time
}

// NewSweeper builds a sweeper. A nil clock falls back to time.Now.
func NewSweeper(banks BankSource, collections CollectionSource, accounts AccountSource, alerts AlertSink, now func() time.Time) *Sweeper {
	if now == nil {
		now = time.Now
	}
	return &Sweeper{banks: banks, collections: collections, accounts: accounts, alerts: alerts, now: now}
}

// RunOnce executes one full sweep across all active banks. Per-record
// failures are logged and skipped so one bad row cannot stall the batch.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	banks, err := s.banks.ListActive()
	if err != nil {
		return fmt.Errorf("list banks: %w", err)
	}

	for _, bank := range banks {
		s.sweepDeposits(ctx, &bank)
		s.sweepStaleAccounts(ctx, &bank)
	}
	return nil
}

func (s *Sweeper) sweepDeposits(ctx context.Context, bank *models.Bank) {
	now := s.now()
	cutoff := now.Add(-bank.DepositSLA())

	overdue, err := s.collections.ListOverdueDeposits(bank.ID, cutoff)
	if err != nil {
		log.Errorf("[SLA Sweep] bank %d deposit scan failed: %v", bank.ID, err)
		return
	}

	for _, pc := range overdue {
		elapsed := now.Sub(pc.CreatedAt)
		severity := SeverityFor(elapsed, bank.DepositSLA())
		if severity == "" {
			continue
		}

		collectionID := pc.ID
		alert := &models.Alert{
			BankID:       bank.ID,
			Type:         models.ALERT_DEPOSIT_DELAY,
			AccountID:    pc.AccountID,
			AlertDate:    models.AlertDateFor(now),
			Severity:     severity,
			CollectionID: &collectionID,
			Description: fmt.Sprintf("%s collection of %s pending for %dh (SLA %dh)",
				pc.Type, pc.Amount.StringFixed(2), int(elapsed.Hours()), int(bank.DepositSLA().Hours())),
		}
		if _, err := s.alerts.Emit(ctx, alert); err != nil {
			log.Errorf("[SLA Sweep] deposit alert for collection %d failed: %v", pc.ID, err)
		}
	}
}

func (s *Sweeper) sweepStaleAccounts(ctx context.Context, bank *models.Bank) {
	now := s.now()
	cutoff := now.Add(-bank.UpdateSLA())

	stale, err := s.accounts.ListStale(bank.ID, cutoff)
	if err != nil {
		log.Errorf("[SLA Sweep] bank %d stale-account scan failed: %v", bank.ID, err)
		return
	}

	for _, account := range stale {
		alert := &models.Alert{
			BankID:    bank.ID,
			Type:      models.ALERT_NO_UPDATE,
			AccountID: account.ID,
			AlertDate: models.AlertDateFor(now),
			Severity:  models.SEVERITY_WARNING,
			Description: fmt.Sprintf("account %s has no contact activity in the last %d days",
				account.AccountNumber, bank.UpdateSLADays),
		}
		if _, err := s.alerts.Emit(ctx, alert); err != nil {
			log.Errorf("[SLA Sweep] no-update alert for account %d failed: %v", account.ID, err)
		}
	}
}

// SeverityFor grades a deposit delay against the bank SLA: within SLA no
// alert, then WARNING, ERROR from 1.5x, CRITICAL beyond 2x.
func SeverityFor(elapsed, sla time.Duration) string {
	if sla <= 0 || elapsed <= sla {
		return ""
	}
	switch {
	case elapsed <= sla+sla/2:
		return models.SEVERITY_WARNING
	case elapsed <= 2*sla:
		return models.SEVERITY_ERROR
	default:
		return models.SEVERITY_CRITICAL
	}
}
