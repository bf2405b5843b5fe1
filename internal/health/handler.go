package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hkmoon/bookcheck/internal/library"
	"github.com/hkmoon/bookcheck/internal/ratelimit"
	"github.com/redis/go-redis/v9"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler handles health check operations.
type Handler struct {
	redis     Checker
	libraries library.Provider
}

// NewHandler creates a new health handler.
func NewHandler(redis Checker, libraries library.Provider) *Handler {
	return &Handler{
		redis:     redis,
		libraries: libraries,
	}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status         string `json:"status"`
		Redis          string `json:"redis"`
		LibraryRecords int    `json:"libraryRecords"`
	}
}

// Check reports the state of the service and its dependencies. An empty
// library index or unreachable redis degrades the status without failing
// the endpoint.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.redis.Ping(ctx); err != nil {
		resp.Body.Redis = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.Redis = "healthy"
	}

	resp.Body.LibraryRecords = h.libraries.Index().Len()
	if resp.Body.LibraryRecords == 0 {
		resp.Body.Status = "degraded"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/health",
		Summary: "Health check",
		Tags:    []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
