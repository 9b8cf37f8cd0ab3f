// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/resonance/internal/catalog"
	"github.com/tomtom215/resonance/internal/logging"
	"github.com/tomtom215/resonance/internal/models"
	"github.com/tomtom215/resonance/internal/recommend"
)

// Recommender is the part of recommend.Recommender the handlers use.
type Recommender interface {
	GetRecommendations(ctx context.Context, catalog, recentlyPlayed []models.Track, current models.TrackRef, topN int) []recommend.RecommendationScore
	GetTrendingSongs(ctx context.Context, catalog, recentlyPlayed []models.Track, topN int) []recommend.RecommendationScore
	ClearCache()
	Stats() []recommend.Stats
}

// HandlerConfig holds request defaults and limits.
type HandlerConfig struct {
	// DefaultTopN is used when top_n is absent.
	DefaultTopN int

	// MaxTopN rejects larger top_n values.
	MaxTopN int

	// Version is reported by /healthz.
	Version string
}

// Handler serves the recommendation API.
type Handler struct {
	recommender Recommender
	source      catalog.Source
	config      HandlerConfig
	startTime   time.Time
}

// NewHandler creates a handler. source may be nil, in which case the
// catalog routes answer 503.
func NewHandler(rec Recommender, source catalog.Source, cfg HandlerConfig) *Handler {
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = recommend.DefaultTopN
	}
	if cfg.MaxTopN <= 0 {
		cfg.MaxTopN = 1000
	}
	if cfg.DefaultTopN > cfg.MaxTopN {
		cfg.DefaultTopN = cfg.MaxTopN
	}

	return &Handler{
		recommender: rec,
		source:      source,
		config:      cfg,
		startTime:   time.Now(),
	}
}

// RecommendationsResponse is the data of GET /api/v1/recommendations.
type RecommendationsResponse struct {
	Engine       string                          `json:"engine"`
	CurrentTrack *int64                          `json:"current_track,omitempty"`
	Scores       []recommend.RecommendationScore `json:"scores"`

	// Unresolved lists recently played ids missing from the catalog.
	Unresolved []int64 `json:"unresolved,omitempty"`
}

// HealthStatus is the data of GET /healthz.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version,omitempty"`
	CatalogSource bool    `json:"catalog_source"`
	Uptime        float64 `json:"uptime_seconds"`
}

// Recommendations handles GET /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	topN, apiErr := h.topN(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	currentID, apiErr := getInt64Param(r, "current_track")
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := RecommendationsRequest{TopN: topN, CurrentTrack: currentID}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	cat, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}

	current := cat.Current
	if req.CurrentTrack != nil {
		if !containsTrack(cat.Tracks, *req.CurrentTrack) {
			respondError(w, r, http.StatusNotFound, ErrCodeTrackNotFound,
				fmt.Sprintf("track %d is not in the catalog", *req.CurrentTrack), nil)
			return
		}
		current = models.RefTo(*req.CurrentTrack)
	}

	scores := h.recommender.GetRecommendations(r.Context(), cat.Tracks, cat.RecentlyPlayed, current, req.TopN)

	resp := RecommendationsResponse{
		Engine:     recommend.EngineDefault,
		Scores:     scores,
		Unresolved: cat.Unresolved,
	}
	if id, ok := current.Get(); ok {
		resp.CurrentTrack = &id
	}

	respondSuccess(w, r, resp, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		CatalogSize: len(cat.Tracks),
	})
}

// Trending handles GET /api/v1/trending.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	topN, apiErr := h.topN(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := TrendingRequest{TopN: topN}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	cat, ok := h.loadCatalog(w, r)
	if !ok {
		return
	}

	scores := h.recommender.GetTrendingSongs(r.Context(), cat.Tracks, cat.RecentlyPlayed, req.TopN)

	respondSuccess(w, r, RecommendationsResponse{
		Engine:     recommend.EngineTrending,
		Scores:     scores,
		Unresolved: cat.Unresolved,
	}, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		CatalogSize: len(cat.Tracks),
	})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.recommender.Stats(), models.Metadata{})
}

// ClearCache handles POST /api/v1/cache/clear.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.recommender.ClearCache()
	logging.Ctx(r.Context()).Info().Msg("Recommendation caches cleared via API")

	respondSuccess(w, r, map[string]interface{}{
		"cleared": true,
		"engines": []string{recommend.EngineDefault, recommend.EngineTrending},
	}, models.Metadata{})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, HealthStatus{
		Status:        "healthy",
		Version:       h.config.Version,
		CatalogSource: h.source != nil,
		Uptime:        time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// NotFound answers unknown routes with the error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
}

// topN reads top_n with the configured default and cap.
func (h *Handler) topN(r *http.Request) (int, *models.APIError) {
	topN, apiErr := getIntParam(r, "top_n", h.config.DefaultTopN)
	if apiErr != nil {
		return 0, apiErr
	}
	if topN > h.config.MaxTopN {
		return 0, &models.APIError{
			Code:    ErrCodeValidation,
			Message: fmt.Sprintf("top_n must be at most %d", h.config.MaxTopN),
			Details: map[string]interface{}{"field": "top_n", "tag": "max", "value": topN},
		}
	}
	return topN, nil
}

// loadCatalog reads the catalog or writes a 503 response.
func (h *Handler) loadCatalog(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	if h.source == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeCatalogUnavailable, "No catalog is configured", nil)
		return nil, false
	}

	cat, err := h.source.Load(r.Context())
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeCatalogUnavailable, "Catalog could not be loaded", err)
		return nil, false
	}
	return cat, true
}

func containsTrack(tracks []models.Track, id int64) bool {
	for i := range tracks {
		if tracks[i].ID == id {
			return true
		}
	}
	return false
}
