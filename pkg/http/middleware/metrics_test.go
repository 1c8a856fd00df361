package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordsRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Metrics(nil, 0))
	e.GET("/api/zones/:pair", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/api/zones/:pair", http.MethodGet, "200"))

	req := httptest.NewRequest(http.MethodGet, "/api/zones/BTCUSDT", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/api/zones/:pair", http.MethodGet, "200"))
	if after != before+1 {
		t.Fatalf("requests total: got %v, want %v", after, before+1)
	}
	// the raw path must never become a label
	if raw := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/api/zones/BTCUSDT", http.MethodGet, "200")); raw != 0 {
		t.Fatalf("raw path leaked into route label: %v", raw)
	}
}

func TestMetricsCountsHandlerErrors(t *testing.T) {
	e := echo.New()
	e.Use(Metrics(nil, 0))
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/boom", http.MethodGet, "500"))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/boom", http.MethodGet, "500"))
	if after != before+1 {
		t.Fatalf("error requests total: got %v, want %v", after, before+1)
	}
}
