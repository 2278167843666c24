package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/leads/{id}", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/api/leads/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}

func TestLeadCounters(t *testing.T) {
	captured := leadsCaptured.WithLabelValues("instagram")
	before := testutil.ToFloat64(captured)
	RecordLeadCaptured("instagram")
	assert.Equal(t, before+1, testutil.ToFloat64(captured))

	dupBefore := testutil.ToFloat64(leadDuplicates)
	RecordLeadDuplicate()
	assert.Equal(t, dupBefore+1, testutil.ToFloat64(leadDuplicates))

	flag := leadStatusUpdates.WithLabelValues("ebook_sent")
	flagBefore := testutil.ToFloat64(flag)
	RecordLeadStatusUpdate("ebook_sent")
	assert.Equal(t, flagBefore+1, testutil.ToFloat64(flag))

	delBefore := testutil.ToFloat64(leadsDeleted)
	RecordLeadDeleted()
	assert.Equal(t, delBefore+1, testutil.ToFloat64(leadsDeleted))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := chi.NewRouter()
	r.Use(RequestLogger(zap.New(core)))
	r.Post("/api/leads", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/leads", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "/api/leads", fields["route"])
	assert.Equal(t, int64(http.StatusBadRequest), fields["status"])
}

func TestRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := Recoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"INTERNAL_ERROR","detail":"Erro interno do servidor"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
