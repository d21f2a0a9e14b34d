package save

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"steel-estimator/http-server/takeoff/upload"
	"steel-estimator/internal/service/importer"
	"steel-estimator/internal/service/takeoff"
	"steel-estimator/internal/storage"
)

type MockTakeoffImporter struct {
	mock.Mock
}

func (m *MockTakeoffImporter) Import(ctx context.Context, projectID int64, format string, data []byte) (*takeoff.Result, error) {
	args := m.Called(ctx, projectID, format, data)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*takeoff.Result), args.Error(1)
}

func newRouter(svc TakeoffImporter) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/projects/{projectID}/takeoff", ImportTakeoff(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, 1<<20))
	return r
}

const body = "Item #,Size,Qty,Length\n100,W12X26,2,20\n"

func TestImportTakeoff_Created(t *testing.T) {
	svc := new(MockTakeoffImporter)
	svc.On("Import", mock.Anything, int64(12), importer.FormatCSV, []byte(body)).
		Return(&takeoff.Result{ImportID: "abc", Items: []*takeoff.Item{{ItemNumber: "100"}}}, nil)

	rr := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/projects/12/takeoff", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp upload.Resp
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Nil(t, resp.Error)
	assert.Equal(t, "abc", resp.ImportID)
	svc.AssertExpectations(t)
}

func TestImportTakeoff_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
		msg  string
	}{
		{"project missing", storage.ErrNotFound, http.StatusNotFound, "not found"},
		{"empty", takeoff.ErrEmptyData, http.StatusUnprocessableEntity, "no usable data rows"},
		{"database", errors.New("connection reset"), http.StatusInternalServerError, "internal error"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := new(MockTakeoffImporter)
			svc.On("Import", mock.Anything, int64(12), mock.Anything, mock.Anything).Return(nil, c.err)

			rr := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/projects/12/takeoff", strings.NewReader(body)))

			assert.Equal(t, c.want, rr.Code)

			var resp upload.Resp
			require.NoError(t, render.DecodeJSON(rr.Body, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, c.msg, *resp.Error)
		})
	}
}

func TestImportTakeoff_BadProjectID(t *testing.T) {
	svc := new(MockTakeoffImporter)

	rr := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/projects/abc/takeoff", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
