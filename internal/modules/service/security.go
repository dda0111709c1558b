package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ThreatEvent is one synthetic entry in the security feed.
type ThreatEvent struct {
	ID        string    `json:"id"`
	Severity  string    `json:"severity"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// SecurityOverview is the mocked security/compliance panel payload.
type SecurityOverview struct {
	ComplianceScore int           `json:"compliance_score"`
	ComplianceTier  Tier          `json:"compliance_tier"`
	GaugeSweep      float64       `json:"gauge_sweep"`
	BlockedToday    int           `json:"blocked_today"`
	Threats         []ThreatEvent `json:"threats"`
}

// SecurityService serves simulated security/compliance data. Like the metric
// simulator, every number here is client-facing fiction regenerated per
// refresh interval; nothing is persisted.
type SecurityService interface {
	Overview(ctx context.Context) SecurityOverview
	Run(ctx context.Context)
}

type securityService struct {
	mu       sync.Mutex
	overview SecurityOverview

	log     *zap.Logger
	refresh time.Duration
	rng     *rand.Rand
	now     func() time.Time
}

const defaultSecurityRefresh = 30 * time.Second

var threatCatalog = []struct {
	severity string
	title    string
	source   string
}{
	{"high", "SQL injection attempt blocked", "WAF"},
	{"medium", "Repeated failed SSH logins", "auth"},
	{"medium", "Outdated TLS cipher offered by client", "edge"},
	{"low", "Port scan detected", "firewall"},
	{"low", "Bot traffic rate-limited", "edge"},
	{"high", "Credential stuffing burst", "WAF"},
}

func NewSecurityService(log *zap.Logger, refresh time.Duration, seed int64) SecurityService {
	if refresh <= 0 {
		refresh = defaultSecurityRefresh
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if log != nil {
		log = log.With(zap.String("component", "security"))
	}
	s := &securityService{
		log:     log,
		refresh: refresh,
		rng:     rand.New(rand.NewSource(seed)),
		now:     time.Now,
	}
	s.regenerate()
	return s
}

func (s *securityService) Overview(ctx context.Context) SecurityOverview {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.overview
	out.Threats = append([]ThreatEvent(nil), s.overview.Threats...)
	return out
}

// regenerate rebuilds the whole snapshot; the panel is mocked, so there is no
// history to maintain between refreshes.
func (s *securityService) regenerate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	score := 82 + s.rng.Intn(17) // 82..98
	count := 3 + s.rng.Intn(3)
	threats := make([]ThreatEvent, 0, count)
	for i := 0; i < count; i++ {
		entry := threatCatalog[s.rng.Intn(len(threatCatalog))]
		threats = append(threats, ThreatEvent{
			ID:        uuid.NewString(),
			Severity:  entry.severity,
			Title:     entry.title,
			Source:    entry.source,
			Timestamp: s.now().UTC().Add(-time.Duration(s.rng.Intn(3600)) * time.Second),
		})
	}
	s.overview = SecurityOverview{
		ComplianceScore: score,
		ComplianceTier:  TierFor(score),
		GaugeSweep:      GaugeSweep(score),
		BlockedToday:    120 + s.rng.Intn(500),
		Threats:         threats,
	}
}

// Run refreshes the feed until the context is cancelled.
func (s *securityService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()
	if s.log != nil {
		s.log.Info("security feed started", zap.Duration("refresh", s.refresh))
	}
	for {
		select {
		case <-ctx.Done():
			if s.log != nil {
				s.log.Info("security feed stopped")
			}
			return
		case <-ticker.C:
			s.regenerate()
		}
	}
}
