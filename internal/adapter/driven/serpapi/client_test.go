package serpapi_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/tasteofthebes/internal/adapter/driven/serpapi"
	"github.com/ericfisherdev/tasteofthebes/internal/adapter/metrics"
	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) (*serpapi.Client, *metrics.Metrics) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	m := metrics.New(prometheus.NewRegistry())
	client := serpapi.NewClientWithHTTPClient(server.Client(), serpapi.Config{
		BaseURL: server.URL + "/search.json",
		APIKey:  "test-key",
	}, discardLogger, m)

	return client, m
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestLookup_MapsKnowledgeGraph(t *testing.T) {
	var gotQuery map[string][]string
	var gotPath string
	client, m := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		jsonHandler(http.StatusOK, `{
			"knowledge_graph": {
				"phone": "+20 95 2359752",
				"address": "90 Mohamed Farid St, Luxor",
				"type": "Egyptian restaurant",
				"rating": 4.6,
				"place_id": "ChIJabc",
				"price": "E£200–400",
				"directions": "https://maps.example/sofra",
				"reviews": 2134
			}
		}`)(w, r)
	}))

	got := client.Lookup(context.Background(), "مطعم صوفرة")

	assert.Equal(t, "/search.json", gotPath)
	assert.Equal(t, []string{"json"}, gotQuery["format"])
	assert.Equal(t, []string{"test-key"}, gotQuery["api_key"])
	assert.Equal(t, []string{"luxor الاقصر egypt مطعم صوفرة"}, gotQuery["q"])

	assert.Equal(t, model.Enrichment{
		Phone:          "+20 95 2359752",
		Type:           "Egyptian restaurant",
		Address:        "90 Mohamed Farid St, Luxor",
		PlaceID:        "ChIJabc",
		GoogleRating:   4.6,
		PricePerPerson: "E£200–400",
		Directions:     "https://maps.example/sofra",
		GoogleReviews:  "2134",
	}, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EnrichmentLookups.WithLabelValues(metrics.OutcomeFound)))
}

func TestLookup_PartialKnowledgeGraph(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(http.StatusOK, `{
		"knowledge_graph": {"type": "Cafe", "rating": "4.2", "phone": null}
	}`))

	got := client.Lookup(context.Background(), "Cafe")

	want := model.UnknownEnrichment()
	want.Type = "Cafe"
	want.GoogleRating = 4.2
	assert.Equal(t, want, got)
}

func TestLookup_FallsBackToSentinels(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantOutcome string
	}{
		{
			name:        "no knowledge graph",
			handler:     jsonHandler(http.StatusOK, `{"organic_results": []}`),
			wantOutcome: metrics.OutcomeNoData,
		},
		{
			name:        "server error",
			handler:     jsonHandler(http.StatusInternalServerError, `{"error": "boom"}`),
			wantOutcome: metrics.OutcomeError,
		},
		{
			name:        "unauthorized",
			handler:     jsonHandler(http.StatusUnauthorized, `{"error": "Invalid API key"}`),
			wantOutcome: metrics.OutcomeError,
		},
		{
			name:        "malformed body",
			handler:     jsonHandler(http.StatusOK, `{"knowledge_graph": `),
			wantOutcome: metrics.OutcomeError,
		},
		{
			name:        "wrong field type",
			handler:     jsonHandler(http.StatusOK, `{"knowledge_graph": {"rating": {"value": 4}}}`),
			wantOutcome: metrics.OutcomeError,
		},
		{
			name:        "NaN rating",
			handler:     jsonHandler(http.StatusOK, `{"knowledge_graph": {"phone": "123", "rating": "NaN"}}`),
			wantOutcome: metrics.OutcomeError,
		},
		{
			name:        "infinite rating",
			handler:     jsonHandler(http.StatusOK, `{"knowledge_graph": {"phone": "123", "rating": "Infinity"}}`),
			wantOutcome: metrics.OutcomeError,
		},
		{
			name:        "negative infinite rating",
			handler:     jsonHandler(http.StatusOK, `{"knowledge_graph": {"rating": "-Inf"}}`),
			wantOutcome: metrics.OutcomeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, m := newTestClient(t, tt.handler)

			got := client.Lookup(context.Background(), "Sofra")

			assert.Equal(t, model.UnknownEnrichment(), got)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.EnrichmentLookups.WithLabelValues(tt.wantOutcome)))
		})
	}
}

func TestLookup_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client := serpapi.NewClient(serpapi.Config{
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
	}, discardLogger, nil)

	got := client.Lookup(context.Background(), "Sofra")
	assert.Equal(t, model.UnknownEnrichment(), got)
}

func TestLookup_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := serpapi.NewClient(serpapi.Config{BaseURL: url, Timeout: time.Second}, discardLogger, nil)

	assert.Equal(t, model.UnknownEnrichment(), client.Lookup(context.Background(), "Sofra"))
}

func TestLookup_Disabled(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	client := serpapi.NewClient(serpapi.Config{}, discardLogger, m)

	got := client.Lookup(context.Background(), "Sofra")

	assert.Equal(t, model.UnknownEnrichment(), got)
	require.Equal(t, 1.0, testutil.ToFloat64(m.EnrichmentLookups.WithLabelValues(metrics.OutcomeDisabled)))
}

func TestLookup_CustomLocality(t *testing.T) {
	var gotQ string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		jsonHandler(http.StatusOK, `{}`)(w, r)
	}))
	t.Cleanup(server.Close)

	client := serpapi.NewClientWithHTTPClient(server.Client(), serpapi.Config{
		BaseURL:  server.URL,
		Locality: "aswan+egypt",
	}, discardLogger, nil)

	client.Lookup(context.Background(), "  Nubian House ")
	assert.Equal(t, "aswan egypt Nubian House", gotQ)
}
