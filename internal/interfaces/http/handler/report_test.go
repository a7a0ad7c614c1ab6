package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reportapp "github.com/pantry/backend/internal/application/report"
	"github.com/pantry/backend/internal/domain/catalog"
	"github.com/pantry/backend/internal/domain/fiscal"
	"github.com/pantry/backend/internal/domain/ledger"
	"github.com/pantry/backend/internal/infrastructure/cache"
	"github.com/pantry/backend/internal/interfaces/http/dto"
)

// stubReader serves a fixed catalog, optionally failing every read
type stubReader struct {
	products []catalog.Product
	err      error
}

func (s *stubReader) ListEntries(_ context.Context, _ ledger.EntryFilter) ([]ledger.Entry, error) {
	return nil, s.err
}

func (s *stubReader) ListCatalog(_ context.Context) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func setupReportRouter(t *testing.T, reader *stubReader) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cal := fiscal.MustNewCalendar(26, time.UTC)
	svc := reportapp.NewReportService(reader, cal, cache.NewReportCache(), 50, nil)
	h := NewReportHandler(svc)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func stubCatalog(t *testing.T, names ...string) []catalog.Product {
	t.Helper()
	products := make([]catalog.Product, 0, len(names))
	for _, name := range names {
		p, err := catalog.NewProduct(name, "kg", decimal.NewFromInt(5))
		require.NoError(t, err)
		products = append(products, *p)
	}
	return products
}

func TestReportHandler_Get(t *testing.T) {
	t.Run("returns the period report", func(t *testing.T) {
		router := setupReportRouter(t, &stubReader{products: stubCatalog(t, "rice", "salt")})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/reports/reconciliation?month=2024-02", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"2024-02"`)
		assert.Contains(t, w.Body.String(), "rice")
	})

	t.Run("invalid month is 400", func(t *testing.T) {
		router := setupReportRouter(t, &stubReader{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/reports/reconciliation?month=Feb-2024", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidPeriod)
	})

	t.Run("invalid pagination is 400", func(t *testing.T) {
		router := setupReportRouter(t, &stubReader{})

		for _, query := range []string{"page=0", "page=x", "page_size=0", "page_size=9999"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/reports/reconciliation?"+query, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code, query)
		}
	})

	t.Run("upstream failure is 502", func(t *testing.T) {
		router := setupReportRouter(t, &stubReader{err: errors.New("connection refused")})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/reports/reconciliation?month=2024-02", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeUpstreamFailure)
	})
}

func TestReportHandler_Overview(t *testing.T) {
	t.Run("returns the period ranking", func(t *testing.T) {
		router := setupReportRouter(t, &stubReader{products: stubCatalog(t, "rice")})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/reports/overview?month=2024-02", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"2024-02"`)
		assert.Contains(t, w.Body.String(), `"quantities"`)
	})

	t.Run("invalid month is 400", func(t *testing.T) {
		router := setupReportRouter(t, &stubReader{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/reports/overview?month=Feb-2024", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidPeriod)
	})
}

func TestReportHandler_Export(t *testing.T) {
	router := setupReportRouter(t, &stubReader{products: stubCatalog(t, "rice")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/reports/reconciliation/export?month=2024-02", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "reconciliation-2024-02.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}
