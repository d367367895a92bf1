package alerting

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CollectraHQ/Collectra/app/models"
)

type fakeAlertRepo struct {
	created map[string]*models.Alert
	calls   int
	nextID  uint
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{created: make(map[string]*models.Alert)}
}

func (f *fakeAlertRepo) CreateIfNotExists(alert *models.Alert) (bool, *models.Alert, error) {
	f.calls++
	key := fmt.Sprintf("%s|%d|%s|%s", alert.Type, alert.AccountID, alert.AlertDate, alert.Reference)
	if stored, ok := f.created[key]; ok {
		return false, stored, nil
	}
	f.nextID++
	alert.ID = f.nextID
	cp := *alert
	f.created[key] = &cp
	return true, &cp, nil
}

func (f *fakeAlertRepo) GetByID(id uint) (*models.Alert, error) {
	for _, stored := range f.created {
		if stored.ID == id {
			cp := *stored
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeAlertRepo) List(bankID uint, status string, offset, limit int) ([]models.Alert, error) {
	return nil, nil
}

func (f *fakeAlertRepo) Acknowledge(id uint) error { return nil }

type mapCache struct {
	data map[string]string
}

func (m *mapCache) Get(key string) (string, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", errors.New("cache miss")
}

func (m *mapCache) Set(key string, value interface{}, expiration time.Duration) error {
	m.data[key] = "1"
	return nil
}

func TestEmitCreatesAndDedups(t *testing.T) {
	repo := newFakeAlertRepo()
	cache := &mapCache{data: make(map[string]string)}
	svc := NewService(repo, cache)

	alert := &models.Alert{
		Type:      models.ALERT_DEPOSIT_DELAY,
		AccountID: 5,
		AlertDate: "2026-03-12",
		Severity:  models.SEVERITY_WARNING,
	}

	created, err := svc.Emit(context.Background(), alert)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, alert.ID)
	assert.Equal(t, models.ALERT_OPEN, alert.Status)

	// Second emission of the same (type, account, day) hits the cache and
	// never reaches the repository.
	dup := &models.Alert{
		Type:      models.ALERT_DEPOSIT_DELAY,
		AccountID: 5,
		AlertDate: "2026-03-12",
		Severity:  models.SEVERITY_ERROR,
	}
	created, err = svc.Emit(context.Background(), dup)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, repo.calls)
}

func TestEmitWithoutCacheFallsBackToDB(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewService(repo, nil)

	alert := &models.Alert{
		Type:      models.ALERT_NO_UPDATE,
		AccountID: 9,
		AlertDate: "2026-03-12",
		Severity:  models.SEVERITY_WARNING,
	}

	created, err := svc.Emit(context.Background(), alert)
	require.NoError(t, err)
	assert.True(t, created)

	// Same key again: the unique index (simulated by the fake) holds the line.
	created, err = svc.Emit(context.Background(), &models.Alert{
		Type:      models.ALERT_NO_UPDATE,
		AccountID: 9,
		AlertDate: "2026-03-12",
		Severity:  models.SEVERITY_WARNING,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 2, repo.calls)
}

func TestEmitDistinctReferencesSameDay(t *testing.T) {
	repo := newFakeAlertRepo()
	cache := &mapCache{data: make(map[string]string)}
	svc := NewService(repo, cache)

	// Two unmatched payments on the same day carry different references and
	// must both be stored; only an exact re-emission dedups.
	for _, ref := range []string{"bkash/TX-100", "bkash/TX-200"} {
		created, err := svc.Emit(context.Background(), &models.Alert{
			Type:      models.ALERT_VARIANCE,
			AlertDate: "2026-03-12",
			Reference: ref,
			Severity:  models.SEVERITY_WARNING,
		})
		require.NoError(t, err)
		assert.True(t, created, ref)
	}
	assert.Len(t, repo.created, 2)

	created, err := svc.Emit(context.Background(), &models.Alert{
		Type:      models.ALERT_VARIANCE,
		AlertDate: "2026-03-12",
		Reference: "bkash/TX-100",
		Severity:  models.SEVERITY_WARNING,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.created, 2)
}

func TestEmitFillsDefaults(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewService(repo, nil)

	alert := &models.Alert{Type: models.ALERT_VARIANCE, Severity: models.SEVERITY_WARNING}
	created, err := svc.Emit(context.Background(), alert)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, alert.AlertDate)
	assert.Equal(t, models.ALERT_OPEN, alert.Status)
}

func TestEmitPropagatesRepoError(t *testing.T) {
	svc := NewService(failingAlertRepo{}, nil)

	_, err := svc.Emit(context.Background(), &models.Alert{
		Type:      models.ALERT_VARIANCE,
		AlertDate: "2026-03-12",
	})
	assert.Error(t, err)
}

type failingAlertRepo struct{}

func (failingAlertRepo) CreateIfNotExists(alert *models.Alert) (bool, *models.Alert, error) {
	return false, nil, errors.New("insert failed")
}

func (failingAlertRepo) GetByID(id uint) (*models.Alert, error) {
	return nil, errors.New("not found")
}

func (failingAlertRepo) List(bankID uint, status string, offset, limit int) ([]models.Alert, error) {
	return nil, nil
}

func (failingAlertRepo) Acknowledge(id uint) error { return nil }
