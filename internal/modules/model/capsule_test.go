package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBlueprint(t *testing.T) {
	for _, s := range []string{"wordpress", "nodejs", "laravel", "static", "docker"} {
		b, ok := ParseBlueprint(s)
		assert.True(t, ok, s)
		assert.Equal(t, Blueprint(s), b)
		assert.True(t, b.Valid())
	}
	for _, s := range []string{"", "rails", "WordPress", "all"} {
		_, ok := ParseBlueprint(s)
		assert.False(t, ok, s)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"running", "stopped", "building", "error", "provisioning"} {
		st, ok := ParseStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, Status(s), st)
		assert.True(t, st.Valid())
	}
	// "all" is a filter sentinel, not a status
	_, ok := ParseStatus("all")
	assert.False(t, ok)
}

func TestStatusFilter(t *testing.T) {
	all := FilterAll()
	for _, s := range []Status{StatusRunning, StatusStopped, StatusBuilding, StatusError, StatusProvisioning} {
		assert.True(t, all.Matches(s))
	}

	running := FilterStatus(StatusRunning)
	assert.True(t, running.Matches(StatusRunning))
	assert.False(t, running.Matches(StatusStopped))

	// zero value behaves like FilterAll
	var zero StatusFilter
	assert.True(t, zero.Matches(StatusError))
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		in   string
		want StatusFilter
		ok   bool
	}{
		{"", FilterAll(), true},
		{"all", FilterAll(), true},
		{"running", FilterStatus(StatusRunning), true},
		{"error", FilterStatus(StatusError), true},
		{"hibernating", StatusFilter{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseStatusFilter(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestCapsulePatch_Apply(t *testing.T) {
	base := Capsule{
		ID:          "c-1",
		Name:        "original",
		Domain:      "original.example.com",
		Blueprint:   BlueprintNodeJS,
		Status:      StatusRunning,
		Region:      "eu-central",
		IP:          "192.168.1.101",
		HealthScore: 90,
	}

	t.Run("empty patch is identity", func(t *testing.T) {
		assert.Equal(t, base, CapsulePatch{}.Apply(base))
	})

	t.Run("set fields are merged, others kept", func(t *testing.T) {
		name := "renamed"
		status := StatusStopped
		got := CapsulePatch{Name: &name, Status: &status}.Apply(base)
		assert.Equal(t, "renamed", got.Name)
		assert.Equal(t, StatusStopped, got.Status)
		assert.Equal(t, base.Domain, got.Domain)
		assert.Equal(t, base.Blueprint, got.Blueprint)
		assert.Equal(t, base.HealthScore, got.HealthScore)
	})

	t.Run("health score is clamped", func(t *testing.T) {
		high := 150
		low := -3
		assert.Equal(t, HealthScoreMax, CapsulePatch{HealthScore: &high}.Apply(base).HealthScore)
		assert.Equal(t, 0, CapsulePatch{HealthScore: &low}.Apply(base).HealthScore)
	})

	t.Run("apply does not mutate the input", func(t *testing.T) {
		name := "renamed"
		_ = CapsulePatch{Name: &name}.Apply(base)
		assert.Equal(t, "original", base.Name)
	})
}

func TestClampHealthScore(t *testing.T) {
	assert.Equal(t, 0, ClampHealthScore(-1))
	assert.Equal(t, 0, ClampHealthScore(0))
	assert.Equal(t, 55, ClampHealthScore(55))
	assert.Equal(t, HealthScoreMax, ClampHealthScore(HealthScoreMax))
	assert.Equal(t, HealthScoreMax, ClampHealthScore(HealthScoreMax+1))
}
