package model

import "time"

// ---------------------------------------------------------------------------
// Blueprint (capsule template category)
// ---------------------------------------------------------------------------

// Blueprint identifies the template a capsule was provisioned from. It is a
// closed enumeration; wire values outside the constants below are rejected at
// the binding layer.
type Blueprint string

const (
	BlueprintWordPress Blueprint = "wordpress"
	BlueprintNodeJS    Blueprint = "nodejs"
	BlueprintLaravel   Blueprint = "laravel"
	BlueprintStatic    Blueprint = "static"
	BlueprintDocker    Blueprint = "docker"
)

// ParseBlueprint maps a wire value to a Blueprint.
func ParseBlueprint(s string) (Blueprint, bool) {
	switch Blueprint(s) {
	case BlueprintWordPress, BlueprintNodeJS, BlueprintLaravel, BlueprintStatic, BlueprintDocker:
		return Blueprint(s), true
	}
	return "", false
}

// Valid reports whether b is one of the enumerated blueprints.
func (b Blueprint) Valid() bool {
	_, ok := ParseBlueprint(string(b))
	return ok
}

// ---------------------------------------------------------------------------
// Status (capsule lifecycle state)
// ---------------------------------------------------------------------------

// Status is the capsule lifecycle state. Closed enumeration; the "all" filter
// sentinel is deliberately NOT a Status, see StatusFilter.
type Status string

const (
	StatusRunning      Status = "running"
	StatusStopped      Status = "stopped"
	StatusBuilding     Status = "building"
	StatusError        Status = "error"
	StatusProvisioning Status = "provisioning"
)

// ParseStatus maps a wire value to a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusRunning, StatusStopped, StatusBuilding, StatusError, StatusProvisioning:
		return Status(s), true
	}
	return "", false
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// ---------------------------------------------------------------------------
// StatusFilter ("all" | one specific status)
// ---------------------------------------------------------------------------

// StatusFilter selects capsules by status for list views. The zero value
// matches everything; FilterStatus narrows to one status. Keeping this as a
// wrapper type keeps the "all" pseudo-value out of the Status enum.
type StatusFilter struct {
	status Status
	some   bool
}

// FilterAll matches every status.
func FilterAll() StatusFilter { return StatusFilter{} }

// FilterStatus matches exactly one status.
func FilterStatus(s Status) StatusFilter { return StatusFilter{status: s, some: true} }

// ParseStatusFilter accepts "", "all", or any Status wire value.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	if s == "" || s == "all" {
		return FilterAll(), true
	}
	status, ok := ParseStatus(s)
	if !ok {
		return StatusFilter{}, false
	}
	return FilterStatus(status), true
}

// Matches reports whether a capsule with the given status passes the filter.
func (f StatusFilter) Matches(s Status) bool {
	return !f.some || f.status == s
}

// ---------------------------------------------------------------------------
// Capsule
// ---------------------------------------------------------------------------

// DraftCapsuleID marks an in-progress "new capsule" draft row. Draft rows
// live in the store alongside real capsules but never appear in list results.
const DraftCapsuleID = "__draft__"

// HealthScoreMax bounds Capsule.HealthScore.
const HealthScoreMax = 100

// Capsule is one managed hosting unit tracked by the dashboard.
type Capsule struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Domain      string         `json:"domain"`
	Blueprint   Blueprint      `json:"blueprint"`
	Status      Status         `json:"status"`
	Region      string         `json:"region"`
	IP          string         `json:"ip"`
	CreatedAt   time.Time      `json:"created_at"`
	Metrics     CapsuleMetrics `json:"metrics"`
	HealthScore int            `json:"health_score"`
}

// CapsuleMetrics carries the per-capsule display series.
type CapsuleMetrics struct {
	CPU     []MetricPoint `json:"cpu"`
	Memory  []MetricPoint `json:"memory"`
	Network []MetricPoint `json:"network"`
}

// ClampHealthScore keeps a score inside [0, HealthScoreMax].
func ClampHealthScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > HealthScoreMax {
		return HealthScoreMax
	}
	return score
}

// CapsulePatch is a partial update. Nil fields are left untouched; the merge
// is shallow and produces a new record, never an in-place write.
type CapsulePatch struct {
	Name        *string
	Domain      *string
	Blueprint   *Blueprint
	Status      *Status
	Region      *string
	IP          *string
	HealthScore *int
	Metrics     *CapsuleMetrics
}

// Apply returns a copy of c with the set patch fields merged over it.
func (p CapsulePatch) Apply(c Capsule) Capsule {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Domain != nil {
		c.Domain = *p.Domain
	}
	if p.Blueprint != nil {
		c.Blueprint = *p.Blueprint
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Region != nil {
		c.Region = *p.Region
	}
	if p.IP != nil {
		c.IP = *p.IP
	}
	if p.HealthScore != nil {
		c.HealthScore = ClampHealthScore(*p.HealthScore)
	}
	if p.Metrics != nil {
		c.Metrics = *p.Metrics
	}
	return c
}
