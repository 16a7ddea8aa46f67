package handler

import (
	"context"
	"net/http"
)

// Enricher mirrors the resolver surface exposed for direct lookups.
type Enricher interface {
	LogoURL(ctx context.Context, brand string) string
	ProductionVolume(ctx context.Context, carName string) string
	PriceEstimate(ctx context.Context, carName string) string
}

// EnrichHandler exposes the enrichment lookups directly, mainly for
// debugging cache and search behavior without a full image round trip.
type EnrichHandler struct {
	enricher Enricher
}

func NewEnrichHandler(enricher Enricher) *EnrichHandler {
	return &EnrichHandler{enricher: enricher}
}

// Logo handles GET /api/v1/logo?brand=Ferrari
func (h *EnrichHandler) Logo(w http.ResponseWriter, r *http.Request) {
	brand := r.URL.Query().Get("brand")
	if brand == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "brand query parameter is required")
		return
	}

	logoURL := h.enricher.LogoURL(r.Context(), brand)
	if logoURL == "" {
		writeError(w, http.StatusNotFound, "not_found", "no usable logo found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"brand":    brand,
		"logo_url": logoURL,
	})
}

// Production handles GET /api/v1/production?car=Ferrari+Roma
func (h *EnrichHandler) Production(w http.ResponseWriter, r *http.Request) {
	carName := r.URL.Query().Get("car")
	if carName == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "car query parameter is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"car_name":        carName,
		"number_produced": h.enricher.ProductionVolume(r.Context(), carName),
	})
}

// Price handles GET /api/v1/price?car=Ferrari+Roma
func (h *EnrichHandler) Price(w http.ResponseWriter, r *http.Request) {
	carName := r.URL.Query().Get("car")
	if carName == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "car query parameter is required")
		return
	}

	price := h.enricher.PriceEstimate(r.Context(), carName)
	if price == "" {
		writeError(w, http.StatusNotFound, "not_found", "no price figures found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"car_name": carName,
		"price":    price,
	})
}
