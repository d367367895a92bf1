package alerting

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/CollectraHQ/Collectra/app/models"
	"github.com/CollectraHQ/Collectra/app/repository"
)

// dedupTTL keeps the cache fast-path alive past the day bucket it guards.
const dedupTTL = 48 * time.Hour

// Cache is the subset of the redis cache the service uses. Nil disables the
// fast path; the DB unique index stays the dedup authority either way.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
}

// Service is the alert intake: it persists alert candidates idempotently
// per (type, account, day) and is safe to call from repeated sweep runs.
type Service struct {
	repo  repository.AlertRepository
	cache Cache
}

// NewService creates an alert intake service. cache may be nil.
func NewService(repo repository.AlertRepository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Emit stores the alert candidate unless the same (type, account, day) was
// already alerted. Reports whether a new alert was created.
func (s *Service) Emit(ctx context.Context, alert *models.Alert) (bool, error) {
	_ = ctx
	if alert.AlertDate == "" {
		alert.AlertDate = models.AlertDateFor(time.Now())
	}
	if alert.Status == "" {
		alert.Status = models.ALERT_OPEN
	}

	key := dedupKey(alert)
	if s.cache != nil {
		if _, err := s.cache.Get(key); err == nil {
			return false, nil
		}
	}

	created, stored, err := s.repo.CreateIfNotExists(alert)
	if err != nil {
		return false, err
	}
	alert.ID = stored.ID

	if s.cache != nil {
		if err := s.cache.Set(key, "1", dedupTTL); err != nil {
			log.Debugf("[Alerting] dedup cache write for %s failed: %v", key, err)
		}
	}
	return created, nil
}

func dedupKey(alert *models.Alert) string {
	return fmt.Sprintf("alerts:dedup:%s:%d:%s:%s", alert.Type, alert.AccountID, alert.AlertDate, alert.Reference)
}
