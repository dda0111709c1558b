package model

// Resource identifies one monitored resource series.
type Resource string

const (
	ResourceCPU     Resource = "cpu"
	ResourceMemory  Resource = "memory"
	ResourceNetwork Resource = "network"
	ResourceStorage Resource = "storage"
)

// Resources lists every monitored resource in display order.
func Resources() []Resource {
	return []Resource{ResourceCPU, ResourceMemory, ResourceNetwork, ResourceStorage}
}

// MetricPoint is one sample in a display window. Time is the pre-formatted
// clock label the dashboard renders; windows are ordered oldest first.
type MetricPoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// MetricSnapshot is the full monitoring state pushed to clients on each tick.
type MetricSnapshot struct {
	Series      map[Resource][]MetricPoint `json:"series"`
	HealthScore int                        `json:"health_score"`
	Alerted     bool                       `json:"alerted"`
}
