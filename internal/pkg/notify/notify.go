package notify

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/CollectraHQ/Collectra/app/models"
	"github.com/CollectraHQ/Collectra/app/repository"
	"github.com/CollectraHQ/Collectra/internal/pkg/env"
	"github.com/CollectraHQ/Collectra/internal/pkg/mail"
)

// MailFunc sends an email. Swappable in tests.
type MailFunc func(to, subject, body string) error

// Service records reconciliation outcomes as notification rows and mirrors
// them to the ops mailbox when one is configured. It implements
// recon.Notifier.
type Service struct {
	repo     repository.NotificationRepository
	sendMail MailFunc
}

// NewService creates a notify service. sendMail defaults to the SMTP mailer.
func NewService(repo repository.NotificationRepository, sendMail MailFunc) *Service {
	if sendMail == nil {
		sendMail = mail.SendMail
	}
	return &Service{repo: repo, sendMail: sendMail}
}

// ReconciliationDecided stores the outcome and optionally mails it.
// collection is the claimed row on MATCHED outcomes and routes the
// notification to the collection's bank; nil leaves it unrouted.
func (s *Service) ReconciliationDecided(ctx context.Context, rec *models.Reconciliation, ev *models.PaymentEvent, collection *models.PendingCollection) error {
	_ = ctx

	notificationType := models.NOTIFICATION_UNMATCHED
	content := fmt.Sprintf("Payment %s/%s (%s %s) could not be matched to any pending collection",
		ev.Provider, ev.ExternalTxnID, ev.Amount.StringFixed(2), ev.Currency)
	var bankID uint
	if rec.Outcome == models.RECON_MATCHED && collection != nil {
		notificationType = models.NOTIFICATION_MATCHED
		bankID = collection.BankID
		content = fmt.Sprintf("Payment %s/%s (%s %s) matched collection %s (%s)",
			ev.Provider, ev.ExternalTxnID, ev.Amount.StringFixed(2), ev.Currency, collection.UUID, rec.MatchType)
	}

	if err := s.repo.Create(&models.Notification{
		BankID:      bankID,
		Type:        notificationType,
		Content:     content,
		ReferenceID: rec.ID,
	}); err != nil {
		return err
	}

	if to := env.GetEnv("NOTIFY_EMAIL", ""); to != "" {
		subject := fmt.Sprintf("[Collectra] reconciliation %s", rec.Outcome)
		if err := s.sendMail(to, subject, content); err != nil {
			// Mail is best-effort; the DB row is the durable record.
			log.Warnf("[Notify] mail for reconciliation %d failed: %v", rec.ID, err)
		}
	}
	return nil
}
