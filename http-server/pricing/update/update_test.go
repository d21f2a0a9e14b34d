package update

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"steel-estimator/internal/service/pricing"
	"steel-estimator/internal/storage"
)

type MockPricingAdmin struct {
	mock.Mock
}

func (m *MockPricingAdmin) UpsertBeam(ctx context.Context, row *storage.PricingRow) (int64, error) {
	args := m.Called(ctx, row)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPricingAdmin) SetLaborRate(ctx context.Context, rate float64) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func newRouter(admin PricingAdmin) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	r.Put("/beams/{size}", UpdateBeam(log, admin))
	r.Put("/labor-rate", UpdateLaborRate(log, admin))
	return r
}

func TestUpdateBeam(t *testing.T) {
	// 1. Size comes from the URL, not the body
	admin := new(MockPricingAdmin)
	admin.On("UpsertBeam", mock.Anything, mock.MatchedBy(func(row *storage.PricingRow) bool {
		return row.Size == "W12X26" && row.CutStraight != nil && *row.CutStraight == 22.5
	})).Return(int64(41), nil)

	body := `{"size":"ignored","cut_straight":22.5,"standard_conn_hours":2}`
	rr := httptest.NewRecorder()
	newRouter(admin).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/beams/W12X26", strings.NewReader(body)))

	// 2. Saved id echoed back
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":41,"size":"W12X26"}`, rr.Body.String())
	admin.AssertExpectations(t)
}

func TestUpdateBeam_Errors(t *testing.T) {
	t.Run("bad json", func(t *testing.T) {
		admin := new(MockPricingAdmin)

		rr := httptest.NewRecorder()
		newRouter(admin).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/beams/W12X26", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		admin.AssertNotCalled(t, "UpsertBeam", mock.Anything, mock.Anything)
	})

	t.Run("unknown category", func(t *testing.T) {
		admin := new(MockPricingAdmin)
		admin.On("UpsertBeam", mock.Anything, mock.Anything).
			Return(int64(0), fmt.Errorf("pricing.Admin.UpsertBeam: %w", storage.ErrNotFound))

		rr := httptest.NewRecorder()
		newRouter(admin).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/beams/W12X26", strings.NewReader(`{"category_id":99}`)))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"not found"}`, rr.Body.String())
	})
}

func TestUpdateLaborRate(t *testing.T) {
	admin := new(MockPricingAdmin)
	admin.On("SetLaborRate", mock.Anything, 72.5).Return(nil)
	admin.On("SetLaborRate", mock.Anything, 0.0).
		Return(fmt.Errorf("pricing.Admin.SetLaborRate: rate must be positive: %w", pricing.ErrInvalidPricing))

	rr := httptest.NewRecorder()
	newRouter(admin).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/labor-rate", strings.NewReader(`{"rate":72.5}`)))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	newRouter(admin).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/labor-rate", strings.NewReader(`{"rate":0}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid pricing"}`, rr.Body.String())

	admin.AssertExpectations(t)
}

func TestUpdateBeam_EscapedSlash(t *testing.T) {
	admin := new(MockPricingAdmin)
	admin.On("UpsertBeam", mock.Anything, mock.MatchedBy(func(row *storage.PricingRow) bool {
		return row.Size == "HSS4X4X1/4"
	})).Return(int64(7), nil)

	rr := httptest.NewRecorder()
	newRouter(admin).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/beams/HSS4X4X1%2F4", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	admin.AssertExpectations(t)
}
