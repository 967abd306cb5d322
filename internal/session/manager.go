package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2beens/healthdash/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// Manager owns the current snapshot. Readers take the pointer once per request and work
// on that value; a reload swaps in a complete new snapshot. Concurrent reloads load
// independently, the last one to finish wins and carries the highest generation.
type Manager struct {
	loader         *Loader
	current        atomic.Pointer[Snapshot]
	metricsManager *metrics.Manager

	storeMu    sync.Mutex
	generation uint64
}

func NewManager(loader *Loader, metricsManager *metrics.Manager) *Manager {
	m := &Manager{
		loader:         loader,
		metricsManager: metricsManager,
	}
	m.current.Store(Empty(loader.Location()))
	return m
}

// Current never returns nil.
func (m *Manager) Current() *Snapshot {
	return m.current.Load()
}

func (m *Manager) Reload(ctx context.Context) *Snapshot {
	start := time.Now()
	snapshot := m.loader.Load(ctx)

	generation := m.store(snapshot)

	if m.metricsManager != nil {
		m.metricsManager.CounterReloads.Inc()
		m.metricsManager.HistReloadDuration.Observe(time.Since(start).Seconds())
	}

	log.Debugf(
		"session: snapshot %d loaded in %s: %d weights, %d steps, %d sleep, %d ratings",
		generation, time.Since(start), len(snapshot.Weights), len(snapshot.Steps), len(snapshot.Sleep), len(snapshot.Ratings),
	)

	return snapshot
}

// store numbers the snapshot at swap time, so current and the generation gauge never go back.
func (m *Manager) store(snapshot *Snapshot) uint64 {
	m.storeMu.Lock()
	defer m.storeMu.Unlock()

	m.generation++
	snapshot.Generation = m.generation
	m.current.Store(snapshot)

	if m.metricsManager != nil {
		m.metricsManager.GaugeSnapshotGeneration.Set(float64(m.generation))
	}
	return m.generation
}
