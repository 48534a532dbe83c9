package goAccounts

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricLoginFailure)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricLoginFailure); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		5 * time.Millisecond,
		10 * time.Millisecond,
		25 * time.Millisecond,
		50 * time.Millisecond,
		100 * time.Millisecond,
		250 * time.Millisecond,
		500 * time.Millisecond,
		700 * time.Millisecond,
	}

	for _, d := range observations {
		m.Observe(MetricAuthenticateLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricAuthenticateLatency]
	if len(buckets) != histBucketCount {
		t.Fatalf("expected %d buckets, got %d", histBucketCount, len(buckets))
	}
	for i, count := range buckets {
		if count != 1 {
			t.Fatalf("bucket %d = %d, want exactly 1", i, count)
		}
	}
}

func TestMetricsObserveIgnoredWithoutLatency(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Observe(MetricAuthenticateLatency, 10*time.Millisecond)

	snap := m.Snapshot()
	if len(snap.Histograms) != 0 {
		t.Fatalf("expected no histograms, got %d", len(snap.Histograms))
	}
}

func TestMetricsEngineFlowCounters(t *testing.T) {
	ctx := context.Background()
	store := newMockAccountStore()
	clock := newTestClock()
	engine := newTestEngine(t, store, clock)
	engine.metrics = NewMetrics(MetricsConfig{Enabled: true})

	seedAccount(t, engine, store, "alice", "alice@example.com", "Pass123$", true)

	if _, err := engine.Authenticate(ctx, "alice", "Pass123$"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	_, _ = engine.Authenticate(ctx, "alice", "Wrong123$")

	if got := engine.metrics.Value(MetricLoginSuccess); got != 1 {
		t.Fatalf("login success = %d, want 1", got)
	}
	if got := engine.metrics.Value(MetricLoginFailure); got != 1 {
		t.Fatalf("login failure = %d, want 1", got)
	}
}

func TestMetricsLockoutCounter(t *testing.T) {
	ctx := context.Background()
	store := newMockAccountStore()
	clock := newTestClock()
	engine := newTestEngine(t, store, clock)
	engine.metrics = NewMetrics(MetricsConfig{Enabled: true})

	seedAccount(t, engine, store, "alice", "alice@example.com", "Pass123$", true)

	for i := 0; i < MaxLoginAttempts; i++ {
		_, _ = engine.Authenticate(ctx, "alice", "Wrong123$")
	}

	if got := engine.metrics.Value(MetricAccountLocked); got != 1 {
		t.Fatalf("account locked = %d, want 1", got)
	}
}
