// Package serpapi implements the Enricher port against a SerpApi-style
// knowledge-graph search endpoint.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ericfisherdev/tasteofthebes/internal/adapter/metrics"
	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
	"github.com/ericfisherdev/tasteofthebes/internal/domain/port/driven"
)

// DefaultLocality is prefixed to every lookup unless overridden.
const DefaultLocality = "luxor+الاقصر+egypt"

const maxResponseBytes = 4 << 20

// Compile-time interface satisfaction check.
var _ driven.Enricher = (*Client)(nil)

// Config describes the search endpoint.
type Config struct {
	BaseURL  string
	APIKey   string
	Locality string
	Timeout  time.Duration
}

// Client implements driven.Enricher. Every failure is absorbed into
// model.UnknownEnrichment.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	locality string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewClient creates a Client with its own http.Client bounded by cfg.Timeout.
func NewClient(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Client {
	return NewClientWithHTTPClient(&http.Client{Timeout: cfg.Timeout}, cfg, logger, m)
}

// NewClientWithHTTPClient creates a Client using httpClient. Intended for
// tests that point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Client {
	locality := cfg.Locality
	if locality == "" {
		locality = DefaultLocality
	}

	return &Client{
		http:     httpClient,
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		locality: locality,
		logger:   logger,
		metrics:  m,
	}
}

// searchResponse is the subset of the provider payload we read.
type searchResponse struct {
	KnowledgeGraph *knowledgeGraph `json:"knowledge_graph"`
}

type knowledgeGraph struct {
	Phone      *flexString `json:"phone"`
	Address    *flexString `json:"address"`
	Type       *flexString `json:"type"`
	Rating     *flexFloat  `json:"rating"`
	PlaceID    *flexString `json:"place_id"`
	Price      *flexString `json:"price"`
	Directions *flexString `json:"directions"`
	Reviews    *flexString `json:"reviews"`
}

// Lookup queries the provider for name. It never returns an error.
func (c *Client) Lookup(ctx context.Context, name string) model.Enrichment {
	if c.baseURL == "" {
		c.observe(metrics.OutcomeDisabled)
		return model.UnknownEnrichment()
	}

	kg, err := c.search(ctx, name)
	if err != nil {
		c.logger.Warn("restaurant enrichment failed", "name", name, "error", err)
		c.observe(metrics.OutcomeError)
		return model.UnknownEnrichment()
	}
	if kg == nil {
		c.logger.Info("no knowledge graph for restaurant", "name", name)
		c.observe(metrics.OutcomeNoData)
		return model.UnknownEnrichment()
	}

	c.observe(metrics.OutcomeFound)
	return kg.toEnrichment()
}

func (c *Client) search(ctx context.Context, name string) (*knowledgeGraph, error) {
	reqURL, err := c.searchURL(name)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("search request: unexpected status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return body.KnowledgeGraph, nil
}

// searchURL builds <base>?format=json&q=<locality> <name>&api_key=<key>.
// A "+" in the locality stands for a space, as it would in a raw query string.
func (c *Client) searchURL(name string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse enrichment base URL: %w", err)
	}

	q := u.Query()
	q.Set("format", "json")
	q.Set("q", strings.ReplaceAll(c.locality, "+", " ")+" "+strings.TrimSpace(name))
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c *Client) observe(outcome string) {
	if c.metrics != nil {
		c.metrics.EnrichmentLookups.WithLabelValues(outcome).Inc()
	}
}

func (kg *knowledgeGraph) toEnrichment() model.Enrichment {
	e := model.UnknownEnrichment()

	setText(&e.Phone, kg.Phone)
	setText(&e.Address, kg.Address)
	setText(&e.Type, kg.Type)
	setText(&e.PlaceID, kg.PlaceID)
	setText(&e.PricePerPerson, kg.Price)
	setText(&e.Directions, kg.Directions)
	setText(&e.GoogleReviews, kg.Reviews)
	if kg.Rating != nil {
		e.GoogleRating = float64(*kg.Rating)
	}

	return e
}

func setText(dst *string, v *flexString) {
	if v != nil {
		*dst = string(*v)
	}
}
