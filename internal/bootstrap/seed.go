package bootstrap

import (
	"math/rand"
	"time"

	"github.com/hostforge/hostforge/internal/modules/model"
)

// SeedCapsules returns the initial capsule fleet, newest first. The dashboard
// starts useful out of the box; there is no persistence to restore from.
func SeedCapsules() []model.Capsule {
	rng := rand.New(rand.NewSource(7))
	now := time.Now().UTC()

	return []model.Capsule{
		{
			ID:          "cap-7f3a9b21",
			Name:        "Aurora Storefront",
			Domain:      "aurora-storefront.hostforge.app",
			Blueprint:   model.BlueprintWordPress,
			Status:      model.StatusRunning,
			Region:      "eu-central",
			IP:          "192.168.1.101",
			CreatedAt:   now.Add(-36 * 24 * time.Hour),
			Metrics:     seedMetrics(rng, now),
			HealthScore: 96,
		},
		{
			ID:          "cap-2c84e0d5",
			Name:        "Orbit API",
			Domain:      "api.orbit.dev",
			Blueprint:   model.BlueprintNodeJS,
			Status:      model.StatusRunning,
			Region:      "us-east",
			IP:          "192.168.1.102",
			CreatedAt:   now.Add(-120 * 24 * time.Hour),
			Metrics:     seedMetrics(rng, now),
			HealthScore: 91,
		},
		{
			ID:          "cap-ba11086c",
			Name:        "Ledger Portal",
			Domain:      "portal.ledger.example.com",
			Blueprint:   model.BlueprintLaravel,
			Status:      model.StatusBuilding,
			Region:      "eu-west",
			IP:          "192.168.1.103",
			CreatedAt:   now.Add(-9 * 24 * time.Hour),
			Metrics:     seedMetrics(rng, now),
			HealthScore: 88,
		},
		{
			ID:          "cap-55d2f7ae",
			Name:        "Docs Site",
			Domain:      "docs.hostforge.app",
			Blueprint:   model.BlueprintStatic,
			Status:      model.StatusStopped,
			Region:      "us-west",
			IP:          "192.168.1.104",
			CreatedAt:   now.Add(-201 * 24 * time.Hour),
			Metrics:     seedMetrics(rng, now),
			HealthScore: 100,
		},
		{
			ID:          "cap-90ce13f4",
			Name:        "Batch Workers",
			Domain:      "workers.internal.hostforge.app",
			Blueprint:   model.BlueprintDocker,
			Status:      model.StatusError,
			Region:      "eu-central",
			IP:          "192.168.1.105",
			CreatedAt:   now.Add(-58 * 24 * time.Hour),
			Metrics:     seedMetrics(rng, now),
			HealthScore: 64,
		},
	}
}

func seedMetrics(rng *rand.Rand, now time.Time) model.CapsuleMetrics {
	return model.CapsuleMetrics{
		CPU:     seedSeries(rng, now, 20, 80),
		Memory:  seedSeries(rng, now, 30, 75),
		Network: seedSeries(rng, now, 5, 40),
	}
}

func seedSeries(rng *rand.Rand, now time.Time, lo, hi float64) []model.MetricPoint {
	const n = 12
	points := make([]model.MetricPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, model.MetricPoint{
			Time:  now.Add(time.Duration(i-n) * time.Minute).Format("15:04:05"),
			Value: lo + rng.Float64()*(hi-lo),
		})
	}
	return points
}
