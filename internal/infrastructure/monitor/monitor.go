package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/repository"
)

// Monitor periodically pings storage and the optional cache.
type Monitor struct {
	storage repository.Pinger
	driver  string
	cache   repository.Pinger

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

// New builds a monitor. cache may be nil when caching is disabled.
func New(storage repository.Pinger, driver string, cache repository.Pinger, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval < time.Second {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Monitor{
		storage:  storage,
		driver:   driver,
		cache:    cache,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = m.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		m.Refresh(ctx)
	})
	return m
}

// Start performs an initial check and launches the scheduler.
func (m *Monitor) Start() {
	ctx, cancel := context.WithTimeout(context.Background(), m.interval)
	m.Refresh(ctx)
	cancel()
	m.cron.Start()
	m.logger.Info("health monitor started", zap.Duration("interval", m.interval))
}

// Stop waits for a running check to finish or ctx to expire.
func (m *Monitor) Stop(ctx context.Context) {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	m.logger.Info("health monitor stopped")
}

// IsOnline reports whether storage answered the last check. The cache is optional.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Storage
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh pings every dependency and records the result.
func (m *Monitor) Refresh(ctx context.Context) Status {
	status := Status{
		Storage:       m.check(ctx, "storage", m.storage, 3*time.Second),
		StorageDriver: m.driver,
		CacheEnabled:  m.cache != nil,
		LastCheck:     time.Now(),
	}
	if m.cache != nil {
		status.Cache = m.check(ctx, "cache", m.cache, 2*time.Second)
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	if !previous.LastCheck.IsZero() && previous.Storage != status.Storage {
		m.logger.Warn("storage availability changed", zap.Bool("online", status.Storage))
	}
	return status
}

func (m *Monitor) check(ctx context.Context, name string, p repository.Pinger, timeout time.Duration) bool {
	if p == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		m.logger.Debug("health check failed", zap.String("dependency", name), zap.Error(err))
		return false
	}
	return true
}
