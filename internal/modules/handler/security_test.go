package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hostforge/hostforge/internal/modules/serializer"
	"github.com/hostforge/hostforge/internal/modules/service"
)

type MockSecurityService struct {
	mock.Mock
}

func (m *MockSecurityService) Overview(ctx context.Context) service.SecurityOverview {
	args := m.Called(ctx)
	return args.Get(0).(service.SecurityOverview)
}

func (m *MockSecurityService) Run(ctx context.Context) {
	m.Called(ctx)
}

func TestSecurityHandler_GetOverview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	svc := &MockSecurityService{}
	svc.On("Overview", mock.Anything).Return(service.SecurityOverview{
		ComplianceScore: 94,
		ComplianceTier:  service.TierFor(94),
		GaugeSweep:      0.94,
		BlockedToday:    321,
		Threats: []service.ThreatEvent{
			{ID: "t-1", Severity: "high", Title: "SQL injection attempt blocked", Source: "WAF"},
		},
	})

	handler := NewSecurityHandler(svc)

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.GET("/security/overview", handler.GetOverview)

	req := httptest.NewRequest(http.MethodGet, "/security/overview", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp serializer.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, float64(94), data["compliance_score"])
	assert.Equal(t, float64(321), data["blocked_today"])
	threats, ok := data["threats"].([]interface{})
	require.True(t, ok)
	assert.Len(t, threats, 1)

	svc.AssertExpectations(t)
}
