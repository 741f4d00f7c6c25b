package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	healthy   = pingerFunc(func(context.Context) error { return nil })
	unhealthy = pingerFunc(func(context.Context) error { return errors.New("down") })
)

func TestRefreshRecordsStatus(t *testing.T) {
	m := New(healthy, "bolt", unhealthy, time.Second, zaptest.NewLogger(t))

	status := m.Refresh(context.Background())
	if !status.Storage || status.Cache || !status.CacheEnabled || status.StorageDriver != "bolt" {
		t.Fatalf("unexpected status %+v", status)
	}
	if !m.IsOnline() {
		t.Fatalf("cache failures must not take the service offline")
	}
	if m.GetStatus().LastCheck.IsZero() {
		t.Fatalf("expected last check timestamp")
	}
}

func TestStorageFailureIsOffline(t *testing.T) {
	m := New(unhealthy, "sqlite", nil, time.Second, nil)
	m.Refresh(context.Background())

	if m.IsOnline() {
		t.Fatalf("expected offline when storage ping fails")
	}
	if m.GetStatus().CacheEnabled {
		t.Fatalf("cache should be reported as disabled")
	}
}

func TestStartAndStop(t *testing.T) {
	m := New(healthy, "sqlite", nil, time.Second, zaptest.NewLogger(t))
	m.Start()
	if !m.IsOnline() {
		t.Fatalf("start must perform an initial check")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.Stop(ctx)
}
