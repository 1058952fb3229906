package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/cellcount-go/internal/session"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exampleBody = `{
	"square_count": 4,
	"counts": [{"live": 50, "dead": 0}, {"live": 50, "dead": 0}, {"live": 50, "dead": 0}, {"live": 50, "dead": 0}],
	"dilution_factor": 2.0,
	"stock_volume_ml": 5.0,
	"target_cells_per_dish": 500000,
	"dispense_volume_ml": 2.0
}`

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	cache, err := session.NewCache(8)
	require.NoError(t, err)

	s := New(zap.NewNop(), cache, nil)
	s.now = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }
	return s, s.Router()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health", "").Code)
}

func TestCreateCalculation(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(h, http.MethodPost, "/api/v1/calculations", exampleBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var reply struct {
		models.ExportRecord
		Cached bool `json:"cached"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.NotEmpty(t, reply.ID)
	assert.False(t, reply.Cached)
	assert.Equal(t, 1e6, reply.Result.CellsPerMl)
	assert.Equal(t, 15.0, reply.Result.MediaToAddMl)
	assert.Equal(t, 10, reply.Result.FinalDishCount)

	rec = do(h, http.MethodPost, "/api/v1/calculations", exampleBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.True(t, reply.Cached)
}

func TestCreateCalculationFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"malformed", `{"square_count":`, http.StatusBadRequest, "bad_request"},
		{"wrong type", strings.Replace(exampleBody, `"square_count": 4`, `"square_count": "four"`, 1), http.StatusBadRequest, "bad_request"},
		{"count length mismatch", strings.Replace(exampleBody, `"square_count": 4`, `"square_count": 3`, 1), http.StatusUnprocessableEntity, "invalid_input"},
		{"zero squares", strings.Replace(exampleBody, `"square_count": 4`, `"square_count": 0`, 1), http.StatusUnprocessableEntity, "invalid_input"},
		{"zero dispense", strings.Replace(exampleBody, `"dispense_volume_ml": 2.0`, `"dispense_volume_ml": 0`, 1), http.StatusUnprocessableEntity, "invalid_input"},
		{"negative live", strings.Replace(exampleBody, `"live": 50`, `"live": -1`, 1), http.StatusUnprocessableEntity, "invalid_input"},
		{"tiny target", strings.Replace(exampleBody, `500000`, `1e-300`, 1), http.StatusUnprocessableEntity, "invalid_input"},
		{"huge dilution", strings.Replace(exampleBody, `"dilution_factor": 2.0`, `"dilution_factor": 1e306`, 1), http.StatusUnprocessableEntity, "invalid_input"},
		{"zero concentration", strings.ReplaceAll(exampleBody, `"live": 50`, `"live": 0`), http.StatusUnprocessableEntity, "zero_concentration"},
		{"zero target", strings.Replace(exampleBody, `500000`, `0`, 1), http.StatusUnprocessableEntity, "invalid_input"},
		{"infeasible", strings.Replace(exampleBody, `"dilution_factor": 2.0`, `"dilution_factor": 0.01`, 1), http.StatusUnprocessableEntity, "infeasible"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestServer(t)

			rec := do(h, http.MethodPost, "/api/v1/calculations", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			var reply FailureReply
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
			assert.Equal(t, tt.kind, reply.Kind)
			assert.NotEmpty(t, reply.Message)
			if tt.kind == "infeasible" {
				require.NotNil(t, reply.StockConcentration)
				assert.Equal(t, 5000.0, *reply.StockConcentration)
				assert.Equal(t, 250000.0, *reply.WorkingConcentration)
			}

			// Failures never become the last result.
			assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/v1/calculations/last", "").Code)
		})
	}
}

func TestLastAndExport(t *testing.T) {
	_, h := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/v1/calculations/last/export", "").Code)

	require.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/api/v1/calculations", exampleBody).Code)

	last := do(h, http.MethodGet, "/api/v1/calculations/last", "")
	require.Equal(t, http.StatusOK, last.Code)
	assert.Contains(t, last.Body.String(), `"final_dish_count":10`)

	csvRec := do(h, http.MethodGet, "/api/v1/calculations/last/export", "")
	require.Equal(t, http.StatusOK, csvRec.Code)
	assert.Equal(t, `attachment; filename="cell_calculation_20250314_0926.csv"`, csvRec.Header().Get("Content-Disposition"))
	assert.Contains(t, csvRec.Body.String(), "Working Concentration (cells/mL)")

	xlsxRec := do(h, http.MethodGet, "/api/v1/calculations/last/export?format=xlsx", "")
	require.Equal(t, http.StatusOK, xlsxRec.Code)
	f, err := excelize.OpenReader(bytes.NewReader(xlsxRec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Calculation", "B2")
	require.NoError(t, err)
	assert.Equal(t, "4", v)

	jsonRec := do(h, http.MethodGet, "/api/v1/calculations/last/export?format=json", "")
	require.Equal(t, http.StatusOK, jsonRec.Code)
	assert.Equal(t, "application/json", jsonRec.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/v1/calculations/last/export?format=text", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/v1/calculations/last/export?format=pdf", "").Code)
}

func TestPurgeCache(t *testing.T) {
	s, h := newTestServer(t)

	require.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/api/v1/calculations", exampleBody).Code)
	assert.Equal(t, 1, s.cache.Len())

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/api/v1/calculations/cache", "").Code)
	assert.Equal(t, 0, s.cache.Len())
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/v1/calculations/last", "").Code)
}

func TestRun(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cache, err := session.NewCache(8)
	require.NoError(t, err)
	s := New(zap.NewNop(), cache, listener)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
