package slasweep

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// DefaultInterval between sweep runs. Deployments running multiple service
// instances must ensure only one manager is active per schedule (single
// scheduler or leader election); the alert dedup keeps accidental overlap
// harmless.
const DefaultInterval = 15 * time.Minute

// Manager drives the sweeper on a fixed schedule.
type Manager struct {
	sweeper  *Sweeper
	interval time.Duration
	ticker   *time.Ticker
	stopCh   chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewManager creates a sweep manager. Zero interval falls back to
// DefaultInterval.
func NewManager(sweeper *Sweeper, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Manager{sweeper: sweeper, interval: interval}
}

// Start launches the background sweep worker.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so the manager can be
	// restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	m.ticker = time.NewTicker(m.interval)

	m.wg.Add(1)
	go m.worker()

	log.Infof("[SLA Sweep] Started (interval: %s)", m.interval)
}

// Stop halts the worker and waits for an in-flight sweep to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.ticker.Stop()
	close(m.stopCh)
	m.running = false
	m.wg.Wait()

	log.Info("[SLA Sweep] Stopped")
}

// IsRunning returns whether the manager is currently running.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// RunOnce triggers a single sweep immediately (admin use).
func (m *Manager) RunOnce(ctx context.Context) error {
	return m.sweeper.RunOnce(ctx)
}

func (m *Manager) worker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[SLA Sweep] Worker stopping")
			return
		case <-m.ticker.C:
			if err := m.sweeper.RunOnce(context.Background()); err != nil {
				log.Errorf("[SLA Sweep] Run failed: %v", err)
			}
		}
	}
}
