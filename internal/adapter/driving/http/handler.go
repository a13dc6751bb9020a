package httphandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ericfisherdev/tasteofthebes/internal/adapter/metrics"
	"github.com/ericfisherdev/tasteofthebes/internal/application"
)

// maxBodyBytes caps request bodies on write endpoints.
const maxBodyBytes = 1 << 20

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	apiKeys     *application.APIKeyService
	restaurants *application.RestaurantService
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. m may be nil
// when metrics are not collected.
func NewHandler(
	apiKeys *application.APIKeyService,
	restaurants *application.RestaurantService,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		apiKeys:     apiKeys,
		restaurants: restaurants,
		metrics:     m,
		logger:      logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware. /metrics is served from gatherer when
// it is non-nil.
func NewServeMux(h *Handler, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Welcome)
	mux.HandleFunc("GET /docs", h.Docs)
	mux.HandleFunc("GET /health", h.Health)
	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	mux.HandleFunc("GET /api/createAPIKey", h.CreateAPIKey)
	mux.HandleFunc("GET /api/approveAdmin", h.ApproveAdmin)
	mux.HandleFunc("GET /api/isAdminApproved", h.IsAdminApproved)

	authed := requireAPIKey(h.apiKeys, h.logger)
	admin := func(fn http.HandlerFunc) http.Handler {
		return authed(requireApprovedAdmin(fn))
	}

	mux.Handle("GET /api/v1/getAllRestaurants", authed(http.HandlerFunc(h.GetAllRestaurants)))
	mux.Handle("POST /api/v1/addRestaurant", admin(h.AddRestaurant))
	mux.Handle("GET /api/v1/getRestaurantsWithMissingData", admin(h.GetRestaurantsWithMissingData))
	mux.Handle("PUT /api/v1/updateRestaurant/{id}", admin(h.UpdateRestaurant))
	mux.Handle("DELETE /api/v1/deleteRestaurant/{id}", admin(h.DeleteRestaurant))

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(h.logger, mux)
	wrapped = loggingMiddleware(h.logger, h.metrics, wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
