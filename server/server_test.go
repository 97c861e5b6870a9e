package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/recommend"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCatalog answers from the fixture bundle unless err is set.
type stubCatalog struct {
	r     *recommend.Recommender
	ready bool
	err   error
	limit int
}

func newStubCatalog(t *testing.T, monitor recommend.Monitor) *stubCatalog {
	t.Helper()
	opts := []recommend.Option{}
	if monitor != nil {
		opts = append(opts, recommend.WithMonitor(monitor))
	}
	r, err := recommend.New(artifact.FixtureBundle(), opts...)
	require.NoError(t, err)
	return &stubCatalog{r: r, ready: true}
}

func (c *stubCatalog) Recommend(_ context.Context, query string, limit int) (recommend.Result, error) {
	c.limit = limit
	if c.err != nil {
		return recommend.Result{}, c.err
	}
	return c.r.Recommend(query, limit)
}

func (c *stubCatalog) Ready() bool {
	return c.ready
}

type envelope struct {
	Status string             `json:"status"`
	Data   RecommendationData `json:"data"`
	Error  errorBody          `json:"error"`
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestNew(t *testing.T) {
	t.Run("nil catalog", func(t *testing.T) {
		_, err := New(nil)
		assert.Equal(t, ErrCatalogRequired, err)
	})

	t.Run("nil metrics", func(t *testing.T) {
		_, err := New(newStubCatalog(t, nil), WithMetrics(nil, nil))
		assert.ErrorIs(t, err, ErrRegistryRequired)
	})

	t.Run("defaults", func(t *testing.T) {
		s, err := New(newStubCatalog(t, nil), WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, s.Handler())
		assert.Equal(t, recommend.DefaultLimit, s.defaultLimit)
		assert.NotNil(t, s.metrics)
	})
}

func TestRecommendations(t *testing.T) {
	s, err := New(newStubCatalog(t, nil))
	require.NoError(t, err)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantKind   string
		wantTitles []string
		wantMsg    string
		wantCode   string
	}{
		{
			name:       "containment",
			target:     "/api/v1/recommendations?q=python",
			wantStatus: http.StatusOK,
			wantKind:   "containment",
			wantTitles: []string{
				"Learn Python Programming from Scratch",
				"Python for Data Science",
				"Advanced Python Automation",
			},
		},
		{
			name:       "similar with limit",
			target:     "/api/v1/recommendations?q=Machine+Learning+A-Z&limit=2",
			wantStatus: http.StatusOK,
			wantKind:   "similar",
			wantTitles: []string{"Deep Learning with TensorFlow", "Python for Data Science"},
		},
		{
			name:       "not found",
			target:     "/api/v1/recommendations?q=xyzzy-nonexistent-course",
			wantStatus: http.StatusOK,
			wantKind:   "not_found",
			wantTitles: []string{},
			wantMsg:    recommend.NotFoundMessage,
		},
		{
			name:       "zero limit",
			target:     "/api/v1/recommendations?q=python&limit=0",
			wantStatus: http.StatusOK,
			wantKind:   "containment",
			wantTitles: []string{},
		},
		{
			name:       "blank query",
			target:     "/api/v1/recommendations?q=%20%20",
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidQuery,
		},
		{
			name:       "missing query",
			target:     "/api/v1/recommendations",
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidQuery,
		},
		{
			name:       "malformed limit",
			target:     "/api/v1/recommendations?q=python&limit=six",
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidLimit,
		},
		{
			name:       "negative limit",
			target:     "/api/v1/recommendations?q=python&limit=-1",
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := get(t, s.Handler(), tt.target)
			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.wantCode != "" {
				assert.Equal(t, "error", body.Status)
				assert.Equal(t, tt.wantCode, body.Error.Code)
				return
			}
			assert.Equal(t, "success", body.Status)
			assert.Equal(t, tt.wantKind, body.Data.Kind)
			assert.Equal(t, tt.wantTitles, body.Data.Titles)
			assert.Equal(t, tt.wantMsg, body.Data.Message)
		})
	}
}

func TestRecommendations_DefaultLimit(t *testing.T) {
	catalog := newStubCatalog(t, nil)
	s, err := New(catalog, WithDefaultLimit(3))
	require.NoError(t, err)

	rec, _ := get(t, s.Handler(), "/api/v1/recommendations?q=excel")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, catalog.limit)
}

func TestRecommendations_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "load failure",
			err:      &artifact.LoadError{Location: "missing.crb.gz", Err: errors.New("no such file")},
			wantCode: CodeLoadFailed,
		},
		{
			name:     "inconsistent artifacts",
			err:      &recommend.ConsistencyError{Rows: 9, Dimension: [2]int{2, 2}, Index: 3},
			wantCode: CodeInconsistent,
		},
		{
			name:     "other",
			err:      errors.New("boom"),
			wantCode: CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newStubCatalog(t, nil)
			catalog.err = tt.err
			s, err := New(catalog)
			require.NoError(t, err)

			rec, body := get(t, s.Handler(), "/api/v1/recommendations?q=python")
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestHealth(t *testing.T) {
	catalog := newStubCatalog(t, nil)
	catalog.ready = false
	s, err := New(catalog)
	require.NoError(t, err)

	rec, body := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, CodeNotReady, body.Error.Code)

	catalog.ready = true
	rec, body = get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body.Status)
	assert.JSONEq(t, `{"status":"success","data":{"state":"ready"}}`, rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	s, err := New(newStubCatalog(t, nil), WithRateLimit(2, time.Minute))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		rec, _ := get(t, s.Handler(), "/api/v1/recommendations?q=python")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?q=python", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// health checks are not rate limited
	rec, _ = get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	s, err := New(newStubCatalog(t, nil), WithRateLimit(0, 0))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		rec, _ := get(t, s.Handler(), fmt.Sprintf("/api/v1/recommendations?q=python&limit=%d", i))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	s, err := New(newStubCatalog(t, metrics), WithMetrics(reg, metrics))
	require.NoError(t, err)

	get(t, s.Handler(), "/api/v1/recommendations?q=python")
	get(t, s.Handler(), "/api/v1/recommendations?q=Machine+Learning+A-Z")
	get(t, s.Handler(), "/api/v1/recommendations?q=xyzzy")
	get(t, s.Handler(), "/api/v1/recommendations?q=python&limit=bad")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queries.WithLabelValues("containment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queries.WithLabelValues("similar")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queries.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.exactMatches))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.errors.WithLabelValues(CodeInvalidLimit)))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `courserec_queries_total{kind="containment"} 1`)
	assert.Contains(t, out, "courserec_query_duration_seconds_count 4")
	assert.Contains(t, out, "courserec_containment_hits_count 3")
}

func TestMetricsEndpoint_Default(t *testing.T) {
	s, err := New(newStubCatalog(t, nil))
	require.NoError(t, err)

	get(t, s.Handler(), "/api/v1/recommendations?q=python")
	get(t, s.Handler(), "/api/v1/recommendations?q=xyzzy")
	get(t, s.Handler(), "/api/v1/recommendations?q=+")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()

	tests := []struct {
		name    string
		metric  string
		present bool
	}{
		{"answered queries", `courserec_queries_total{kind="containment"} 1`, true},
		{"not found queries", `courserec_queries_total{kind="not_found"} 1`, true},
		{"errors", `courserec_query_errors_total{code="invalid_query"} 1`, true},
		{"latency", "courserec_query_duration_seconds_count 3", true},
		{"exact matches need a monitor", "courserec_exact_matches_total", false},
		{"containment hits need a monitor", "courserec_containment_hits", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.present {
				assert.Contains(t, out, tt.metric)
			} else {
				assert.NotContains(t, out, tt.metric)
			}
		})
	}
}

func TestNewMetrics_NilRegistry(t *testing.T) {
	_, err := NewMetrics(nil)
	assert.Equal(t, ErrRegistryRequired, err)
}

func TestListenAndServe_Shutdown(t *testing.T) {
	s, err := New(newStubCatalog(t, nil), WithTimeouts(time.Second, time.Second))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
