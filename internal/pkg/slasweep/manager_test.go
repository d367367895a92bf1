package slasweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CollectraHQ/Collectra/app/models"
)

func newIdleManager(interval time.Duration) *Manager {
	s := NewSweeper(
		&fakeBanks{},
		&fakeCollections{byBank: map[uint][]models.PendingCollection{}},
		&fakeAccounts{byBank: map[uint][]models.LoanAccount{}},
		&captureSink{},
		nil,
	)
	return NewManager(s, interval)
}

func TestManagerStartStop(t *testing.T) {
	m := newIdleManager(time.Hour)

	assert.False(t, m.IsRunning())

	m.Start()
	assert.True(t, m.IsRunning())

	// Stop returns only after the worker has exited, so repeated calls and
	// a process shutdown path can rely on it.
	m.Stop()
	assert.False(t, m.IsRunning())
	m.Stop()
	assert.False(t, m.IsRunning())
}

func TestManagerRestart(t *testing.T) {
	m := newIdleManager(time.Hour)

	m.Start()
	m.Start() // second start is a no-op
	m.Stop()

	m.Start()
	assert.True(t, m.IsRunning())
	m.Stop()
}

func TestManagerRunOnce(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
	bank := models.Bank{ID: 1, DepositSLAHours: 24, UpdateSLADays: 7, IsActive: true}
	overdue := models.PendingCollection{
		ID:        1,
		BankID:    1,
		AccountID: 2,
		Type:      models.COLLECTION_TYPE_CASH,
		Status:    models.COLLECTION_PENDING,
		CreatedAt: now.Add(-30 * time.Hour),
	}

	sink := &captureSink{}
	s := NewSweeper(
		&fakeBanks{banks: []models.Bank{bank}},
		&fakeCollections{byBank: map[uint][]models.PendingCollection{1: {overdue}}},
		&fakeAccounts{byBank: map[uint][]models.LoanAccount{}},
		sink,
		func() time.Time { return now },
	)
	m := NewManager(s, 0)
	assert.Equal(t, DefaultInterval, m.interval)

	require.NoError(t, m.RunOnce(context.Background()))
	assert.Len(t, sink.alerts, 1)
}
