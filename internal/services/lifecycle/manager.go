// Package lifecycle runs named shutdown hooks when a process is asked to stop.
package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Hook is a named close step, e.g. the HTTP server or a storage driver.
type Hook struct {
	Name  string
	Close func(ctx context.Context) error
}

// Manager collects hooks and runs them newest first.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	hooks []Hook
	done  bool
}

// New creates a manager whose Shutdown is bounded by timeout.
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register appends hooks. Hooks without a Close func are ignored.
func (m *Manager) Register(hooks ...Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range hooks {
		if h.Close != nil {
			m.hooks = append(m.hooks, h)
		}
	}
}

// Shutdown runs every hook in reverse registration order, even when some fail,
// and joins their errors. Only the first call does any work.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done {
		return nil
	}
	m.done = true

	var result error
	for i := len(m.hooks) - 1; i >= 0; i-- {
		h := m.hooks[i]
		started := time.Now()
		if err := h.Close(ctx); err != nil {
			m.logger.Error("shutdown hook failed", zap.String("component", h.Name), zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		m.logger.Info("component stopped",
			zap.String("component", h.Name),
			zap.Duration("took", time.Since(started)),
		)
	}
	return result
}

// Listen returns a context that is cancelled on SIGINT or SIGTERM, or when stop is called.
func (m *Manager) Listen(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
