package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/hkmoon/bookcheck/internal/analytics"
	"github.com/hkmoon/bookcheck/internal/availability"
	"github.com/hkmoon/bookcheck/internal/cache"
	"github.com/hkmoon/bookcheck/internal/library"
	"github.com/hkmoon/bookcheck/internal/search"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Per-operation cache TTLs.
const (
	searchTTL       = 5 * time.Minute
	checkLibraryTTL = 5 * time.Minute
	checkRegionTTL  = 10 * time.Minute
)

// BookHandler handles catalog search and availability checks.
type BookHandler struct {
	libraries    library.Provider
	searcher     search.Searcher
	aggregator   *availability.Aggregator
	cache        cache.Store
	publishQuery analytics.Publish[analytics.SearchPerformedEvent]
	publishCheck analytics.Publish[analytics.AvailabilityCheckedEvent]
	logger       *zap.Logger
}

// NewBookHandler creates a new book handler.
func NewBookHandler(
	libraries library.Provider,
	searcher search.Searcher,
	aggregator *availability.Aggregator,
	cacheStore cache.Store,
	publishQuery analytics.Publish[analytics.SearchPerformedEvent],
	publishCheck analytics.Publish[analytics.AvailabilityCheckedEvent],
	logger *zap.Logger,
) *BookHandler {
	return &BookHandler{
		libraries:    libraries,
		searcher:     searcher,
		aggregator:   aggregator,
		cache:        cacheStore,
		publishQuery: publishQuery,
		publishCheck: publishCheck,
		logger:       logger,
	}
}

func (h *BookHandler) SearchBooks(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, huma.Error400BadRequest("query must not be blank")
	}

	resp := &SearchResponse{}
	key := cache.Key("search", query)

	if h.fromCache(ctx, key, &resp.Body) {
		h.emitSearch(ctx, query, len(resp.Body.Item), true)

		return resp, nil
	}

	items, err := h.searcher.Search(ctx, query)
	if err != nil {
		h.logger.Error("catalog search failed",
			zap.String("query", query),
			zap.Error(err),
		)

		return nil, huma.Error502BadGateway("catalog search provider failed")
	}

	resp.Body.Item = items
	h.toCache(ctx, key, &resp.Body, searchTTL)
	h.emitSearch(ctx, query, len(items), false)

	return resp, nil
}

func (h *BookHandler) CheckLibrary(ctx context.Context, req *CheckLibraryRequest) (*CheckResponse, error) {
	isbn := strings.TrimSpace(req.ISBN)
	code := strings.TrimSpace(req.LibraryCode)

	if isbn == "" || code == "" {
		return nil, huma.Error400BadRequest("isbn and libraryCode are both required")
	}

	if !validISBN13(isbn) {
		return nil, huma.Error400BadRequest("isbn must be a 13-digit identifier")
	}

	resp := &CheckResponse{}
	key := cache.Key("check_library", isbn, code)

	if h.fromCache(ctx, key, &resp.Body) {
		h.emitCheck(ctx, analytics.AvailabilityCheckedEvent{
			ISBN:        isbn,
			LibraryCode: code,
			Targets:     len(resp.Body.Results),
			CacheHit:    true,
		})

		return resp, nil
	}

	lib, ok := h.libraries.Index().LookupByCode(code)
	if !ok {
		return nil, huma.Error404NotFound("unknown library code")
	}

	result, err := h.aggregator.CheckOne(ctx, isbn, lib)
	if err != nil {
		h.logger.Error("availability check failed",
			zap.String("isbn", isbn),
			zap.String("libraryCode", code),
			zap.Error(err),
		)

		return nil, huma.Error502BadGateway("availability provider failed")
	}

	resp.Body.Results = []availability.Result{result}
	h.toCache(ctx, key, &resp.Body, checkLibraryTTL)
	h.emitCheck(ctx, analytics.AvailabilityCheckedEvent{
		ISBN:        isbn,
		LibraryCode: code,
		Targets:     1,
	})

	return resp, nil
}

func (h *BookHandler) CheckRegion(ctx context.Context, req *CheckRegionRequest) (*CheckResponse, error) {
	isbn := strings.TrimSpace(req.ISBN)
	region := strings.TrimSpace(req.Region)
	district := strings.TrimSpace(req.District)

	if isbn == "" || region == "" || district == "" {
		return nil, huma.Error400BadRequest("isbn, region and district are all required")
	}

	if !validISBN13(isbn) {
		return nil, huma.Error400BadRequest("isbn must be a 13-digit identifier")
	}

	resp := &CheckResponse{}
	key := cache.Key("check_region", isbn, region, district)

	if h.fromCache(ctx, key, &resp.Body) {
		h.emitCheck(ctx, analytics.AvailabilityCheckedEvent{
			ISBN:     isbn,
			Region:   region,
			District: district,
			Targets:  len(resp.Body.Results),
			CacheHit: true,
		})

		return resp, nil
	}

	libs := h.libraries.Index().LibrariesIn(region, district)

	resp.Body.Results = []availability.Result{}

	if len(libs) == 0 {
		return resp, nil
	}

	resp.Body.Results = h.aggregator.CheckAll(ctx, isbn, libs)
	h.toCache(ctx, key, &resp.Body, checkRegionTTL)
	h.emitCheck(ctx, analytics.AvailabilityCheckedEvent{
		ISBN:     isbn,
		Region:   region,
		District: district,
		Targets:  len(libs),
	})

	return resp, nil
}

// fromCache fills out from the cached payload for key. Store errors and
// corrupt entries degrade to a miss.
func (h *BookHandler) fromCache(ctx context.Context, key string, out any) bool {
	payload, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))

		return false
	}

	if !ok {
		return false
	}

	if err := json.Unmarshal(payload, out); err != nil {
		h.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))

		return false
	}

	return true
}

func (h *BookHandler) toCache(ctx context.Context, key string, body any, ttl time.Duration) {
	payload, err := json.Marshal(body)
	if err != nil {
		h.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))

		return
	}

	if err := h.cache.Set(ctx, key, payload, ttl); err != nil {
		h.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (h *BookHandler) emitSearch(ctx context.Context, query string, resultCount int, cacheHit bool) {
	meta := RequestMetaFromContext(ctx)

	event := &analytics.SearchPerformedEvent{
		ID:          uuid.NewString(),
		Query:       query,
		ResultCount: resultCount,
		CacheHit:    cacheHit,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
		RequestID:   meta.RequestID,
		PerformedAt: time.Now(),
	}

	if err := h.publishQuery(event); err != nil {
		h.logger.Error("failed to publish search event",
			zap.String("query", query),
			zap.Error(err),
		)
	}
}

func (h *BookHandler) emitCheck(ctx context.Context, event analytics.AvailabilityCheckedEvent) {
	meta := RequestMetaFromContext(ctx)

	event.ID = uuid.NewString()
	event.ClientIP = meta.ClientIP
	event.RequestID = meta.RequestID
	event.CheckedAt = time.Now()

	if err := h.publishCheck(&event); err != nil {
		h.logger.Error("failed to publish availability event",
			zap.String("isbn", event.ISBN),
			zap.Error(err),
		)
	}
}

// validISBN13 reports whether s is a 13-digit catalog identifier.
func validISBN13(s string) bool {
	if len(s) != 13 {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
