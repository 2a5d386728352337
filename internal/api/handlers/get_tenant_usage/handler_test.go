package get_tenant_usage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/quota"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type MockQuotaService struct {
	mock.Mock
}

func (m *MockQuotaService) GetUsage(ctx context.Context, tenantID int64) (*quota.Status, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quota.Status), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(tenantID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/internal/tenants/"+tenantID+"/usage", nil)
	return mux.SetURLVars(r, map[string]string{"tenantId": tenantID})
}

func TestHandle_ReturnsUsage(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := new(MockQuotaService)
	svc.On("GetUsage", mock.Anything, int64(42)).Return(&quota.Status{
		TenantID:     42,
		Plan:         domain.Plan{ID: "basic", Limit: ptr.Ptr(10)},
		CurrentUsage: 4,
		CycleStart:   start,
		CycleEnd:     start.Add(domain.UsageCycleLength),
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest("42"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body UsageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "basic", body.PlanID)
	assert.Equal(t, 4, body.CurrentUsage)
	assert.Equal(t, 6, *body.Remaining)
	assert.True(t, body.Allowed)
	assert.Equal(t, "2026-03-31T00:00:00Z", body.CycleEnd)
}

func TestHandle_UnboundedPlanHasNullLimit(t *testing.T) {
	svc := new(MockQuotaService)
	svc.On("GetUsage", mock.Anything, int64(42)).Return(&quota.Status{
		TenantID:     42,
		Plan:         domain.Plan{ID: "enterprise"},
		CurrentUsage: 5000,
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest("42"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"limit":null`)
	assert.Contains(t, rec.Body.String(), `"remaining":null`)
}

func TestHandle_Errors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(new(MockQuotaService), nopLogger{}).Handle(rec, newRequest("abc"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc := new(MockQuotaService)
	svc.On("GetUsage", mock.Anything, int64(42)).Return(nil, errors.Join(quota.ErrInternal, errors.New("db down")))

	rec = httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest("42"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
