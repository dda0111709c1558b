package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hostforge/hostforge/internal/infra/stream"
	"github.com/hostforge/hostforge/internal/modules/model"
)

func newTestMonitor(t *testing.T) *monitorService {
	t.Helper()
	svc := NewMonitorService(stream.NewHub(), zap.NewNop(), MonitorOptions{
		WindowLen:    20,
		TickInterval: 2 * time.Second,
		ScoreEvery:   3 * time.Second,
		Seed:         42,
	})
	m, ok := svc.(*monitorService)
	require.True(t, ok)
	return m
}

func TestMonitor_WindowLengthInvariantAcrossTicks(t *testing.T) {
	m := newTestMonitor(t)

	for _, n := range []int{0, 1, 7, 50} {
		for i := 0; i < n; i++ {
			m.tick()
		}
		snap := m.Snapshot(context.Background())
		for _, res := range model.Resources() {
			assert.Len(t, snap.Series[res], 20, "resource %s after %d ticks", res, n)
		}
	}
}

func TestMonitor_SeriesStayInsideBounds(t *testing.T) {
	m := newTestMonitor(t)

	for i := 0; i < 200; i++ {
		m.tick()
	}
	snap := m.Snapshot(context.Background())

	for _, p := range snap.Series[model.ResourceCPU] {
		assert.GreaterOrEqual(t, p.Value, 10.0)
		assert.LessOrEqual(t, p.Value, 95.0)
	}
	for _, p := range snap.Series[model.ResourceMemory] {
		assert.GreaterOrEqual(t, p.Value, 20.0)
		assert.LessOrEqual(t, p.Value, 90.0)
	}
	// network: base band plus optional +50 burst
	for _, p := range snap.Series[model.ResourceNetwork] {
		assert.GreaterOrEqual(t, p.Value, 10.0)
		assert.LessOrEqual(t, p.Value, 70.0)
	}
	for _, p := range snap.Series[model.ResourceStorage] {
		assert.GreaterOrEqual(t, p.Value, 40.0)
		assert.LessOrEqual(t, p.Value, 85.0)
	}
}

func TestMonitor_TickAppendsAndDropsOldest(t *testing.T) {
	m := newTestMonitor(t)

	before := m.Snapshot(context.Background()).Series[model.ResourceCPU]
	m.tick()
	after := m.Snapshot(context.Background()).Series[model.ResourceCPU]

	require.Len(t, after, len(before))
	// everything shifted left by one; the old head is gone
	assert.Equal(t, before[1:], after[:len(after)-1])
}

func TestMonitor_HealthScoreStaysInBand(t *testing.T) {
	m := newTestMonitor(t)

	for i := 0; i < 500; i++ {
		m.nudgeScore()
		snap := m.Snapshot(context.Background())
		assert.GreaterOrEqual(t, snap.HealthScore, 75)
		assert.LessOrEqual(t, snap.HealthScore, 100)
	}
}

func TestMonitor_AlertPinsAndRestoresScore(t *testing.T) {
	ctx := context.Background()
	m := newTestMonitor(t)

	m.FireAlert(ctx)
	assert.True(t, m.Alerted(ctx))
	assert.Equal(t, 85, m.Snapshot(ctx).HealthScore)

	// drift is paused while alerted
	for i := 0; i < 50; i++ {
		m.nudgeScore()
	}
	assert.Equal(t, 85, m.Snapshot(ctx).HealthScore)

	m.ResolveAlert(ctx)
	assert.False(t, m.Alerted(ctx))
	assert.Equal(t, 98, m.Snapshot(ctx).HealthScore)

	// resolving twice is a no-op
	m.ResolveAlert(ctx)
	assert.Equal(t, 98, m.Snapshot(ctx).HealthScore)
}

type recordingSubscriber struct {
	payloads [][]byte
}

func (r *recordingSubscriber) Send(p []byte) error {
	r.payloads = append(r.payloads, p)
	return nil
}
func (r *recordingSubscriber) Close() {}

func TestMonitor_BroadcastReachesSubscribers(t *testing.T) {
	hub := stream.NewHub()
	svc := NewMonitorService(hub, zap.NewNop(), MonitorOptions{Seed: 7})
	m := svc.(*monitorService)

	sub := &recordingSubscriber{}
	hub.Register(StreamTopic, sub)

	m.tick()
	m.broadcast()

	require.Len(t, sub.payloads, 1)
	assert.Contains(t, string(sub.payloads[0]), `"health_score"`)
}

func TestMonitor_RunStopsOnContextCancel(t *testing.T) {
	svc := NewMonitorService(stream.NewHub(), zap.NewNop(), MonitorOptions{
		TickInterval: time.Millisecond,
		ScoreEvery:   time.Millisecond,
		Seed:         1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
