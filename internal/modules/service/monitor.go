package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hostforge/hostforge/internal/infra/stream"
	"github.com/hostforge/hostforge/internal/modules/model"
)

// StreamTopic is the hub topic monitoring snapshots are broadcast on.
const StreamTopic = "dashboard"

const (
	defaultWindowLen    = 20
	defaultTickInterval = 2 * time.Second
	defaultScoreEvery   = 3 * time.Second
	defaultAlertAfter   = 45 * time.Second

	healthFloor      = 75
	healthCeil       = 100
	healthAlerted    = 85
	healthBaseline   = 98
	networkBurstProb = 0.1
	scoreDropProb    = 0.2
)

// MonitorService maintains the simulated resource series and the health-score
// process. One fixed-length sliding window per resource; each tick appends a
// fresh point and drops the oldest, so the window length never changes.
type MonitorService interface {
	Snapshot(ctx context.Context) model.MetricSnapshot
	FireAlert(ctx context.Context)
	ResolveAlert(ctx context.Context)
	Alerted(ctx context.Context) bool
	Run(ctx context.Context)
}

type monitorService struct {
	mu     sync.Mutex
	series map[model.Resource][]model.MetricPoint

	healthScore int
	alerted     bool

	hub          *stream.Hub
	log          *zap.Logger
	tickInterval time.Duration
	scoreEvery   time.Duration
	alertAfter   time.Duration
	windowLen    int
	rng          *rand.Rand
	now          func() time.Time
}

// MonitorOptions tunes the simulation; zero values fall back to defaults.
// AlertAfter < 0 disables the scripted predictive alert.
type MonitorOptions struct {
	WindowLen    int
	TickInterval time.Duration
	ScoreEvery   time.Duration
	AlertAfter   time.Duration
	Seed         int64
}

func NewMonitorService(hub *stream.Hub, log *zap.Logger, opts MonitorOptions) MonitorService {
	if opts.WindowLen <= 0 {
		opts.WindowLen = defaultWindowLen
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.ScoreEvery <= 0 {
		opts.ScoreEvery = defaultScoreEvery
	}
	if opts.AlertAfter == 0 {
		opts.AlertAfter = defaultAlertAfter
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if hub == nil {
		hub = stream.NewHub()
	}
	if log != nil {
		log = log.With(zap.String("component", "monitor"))
	}
	s := &monitorService{
		series:       make(map[model.Resource][]model.MetricPoint, 4),
		healthScore:  healthBaseline,
		hub:          hub,
		log:          log,
		tickInterval: opts.TickInterval,
		scoreEvery:   opts.ScoreEvery,
		alertAfter:   opts.AlertAfter,
		windowLen:    opts.WindowLen,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		now:          time.Now,
	}
	s.prime()
	return s
}

// prime backfills every window so the first render already shows a full
// history instead of a growing line.
func (s *monitorService) prime() {
	start := map[model.Resource]float64{
		model.ResourceCPU:     45,
		model.ResourceMemory:  60,
		model.ResourceNetwork: 15,
		model.ResourceStorage: 55,
	}
	base := s.now().Add(-time.Duration(s.windowLen) * s.tickInterval)
	for _, res := range model.Resources() {
		window := make([]model.MetricPoint, 0, s.windowLen)
		prev := start[res]
		for i := 0; i < s.windowLen; i++ {
			prev = s.nextValue(res, prev)
			window = append(window, model.MetricPoint{
				Time:  base.Add(time.Duration(i+1) * s.tickInterval).Format("15:04:05"),
				Value: prev,
			})
		}
		s.series[res] = window
	}
}

// nextValue advances one series by a single tick.
func (s *monitorService) nextValue(res model.Resource, prev float64) float64 {
	switch res {
	case model.ResourceCPU:
		// spiky bounded random walk
		return clampFloat(prev+s.uniform(-10, 10), 10, 95)
	case model.ResourceMemory:
		// slow upward-biased creep
		return clampFloat(prev+s.uniform(-0.8, 1.2), 20, 90)
	case model.ResourceNetwork:
		// bursty and memoryless: the previous value is irrelevant
		v := s.uniform(10, 20)
		if s.rng.Float64() < networkBurstProb {
			v += 50
		}
		return v
	case model.ResourceStorage:
		// near-static slow growth
		return clampFloat(prev+s.uniform(0, 0.05), 40, 85)
	}
	return prev
}

func (s *monitorService) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// tick appends one point per resource and drops the oldest, keeping the
// window length invariant.
func (s *monitorService) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	label := s.now().Format("15:04:05")
	for _, res := range model.Resources() {
		window := s.series[res]
		prev := 0.0
		if len(window) > 0 {
			prev = window[len(window)-1].Value
		}
		next := make([]model.MetricPoint, 0, s.windowLen)
		if len(window) > 0 {
			next = append(next, window[1:]...)
		}
		next = append(next, model.MetricPoint{Time: label, Value: s.nextValue(res, prev)})
		s.series[res] = next
	}
}

// nudgeScore applies the periodic health drift. Paused while an alert is
// active; the alert pin is the whole signal in that state.
func (s *monitorService) nudgeScore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.alerted {
		return
	}
	if s.rng.Float64() < scoreDropProb {
		s.healthScore -= 2
	} else {
		s.healthScore++
	}
	if s.healthScore < healthFloor {
		s.healthScore = healthFloor
	}
	if s.healthScore > healthCeil {
		s.healthScore = healthCeil
	}
}

func (s *monitorService) Snapshot(ctx context.Context) model.MetricSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *monitorService) snapshotLocked() model.MetricSnapshot {
	series := make(map[model.Resource][]model.MetricPoint, len(s.series))
	for res, window := range s.series {
		series[res] = append([]model.MetricPoint(nil), window...)
	}
	return model.MetricSnapshot{
		Series:      series,
		HealthScore: s.healthScore,
		Alerted:     s.alerted,
	}
}

func (s *monitorService) FireAlert(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.alerted {
		return
	}
	s.alerted = true
	s.healthScore = healthAlerted
	if s.log != nil {
		s.log.Warn("predictive alert fired", zap.Int("health_score", s.healthScore))
	}
}

func (s *monitorService) ResolveAlert(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alerted {
		return
	}
	s.alerted = false
	s.healthScore = healthBaseline
	if s.log != nil {
		s.log.Info("predictive alert resolved", zap.Int("health_score", s.healthScore))
	}
}

func (s *monitorService) Alerted(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alerted
}

// Run drives the simulation until the context is cancelled. Cancellation
// stops both tickers on every exit path; there is no other way to stop the
// loop, so an owner that drops the context cannot leak timer callbacks.
func (s *monitorService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	scoreTicker := time.NewTicker(s.scoreEvery)
	defer scoreTicker.Stop()

	var alertFire <-chan time.Time
	if s.alertAfter > 0 {
		alertTimer := time.NewTimer(s.alertAfter)
		defer alertTimer.Stop()
		alertFire = alertTimer.C
	}

	if s.log != nil {
		s.log.Info("monitor simulation started",
			zap.Duration("tick_interval", s.tickInterval),
			zap.Int("window_len", s.windowLen))
	}
	for {
		select {
		case <-ctx.Done():
			if s.log != nil {
				s.log.Info("monitor simulation stopped")
			}
			return
		case <-ticker.C:
			s.tick()
			s.broadcast()
		case <-scoreTicker.C:
			s.nudgeScore()
		case <-alertFire:
			s.FireAlert(ctx)
			s.broadcast()
		}
	}
}

func (s *monitorService) broadcast() {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	payload, err := json.Marshal(snapshot)
	if err != nil {
		if s.log != nil {
			s.log.Warn("failed to marshal metric snapshot", zap.Error(err))
		}
		return
	}
	s.hub.Broadcast(StreamTopic, payload)
}
