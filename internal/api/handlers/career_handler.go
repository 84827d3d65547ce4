package handlers

import (
	"net/http"
	"strconv"

	"github.com/navanish17/ai-career-advisor/internal/application/services"
)

const defaultSearchLimit = 20

// CareerHandler handles career catalog HTTP requests
type CareerHandler struct {
	catalog *services.CareerCatalogService
}

// NewCareerHandler creates a new career handler
func NewCareerHandler(catalog *services.CareerCatalogService) *CareerHandler {
	return &CareerHandler{catalog: catalog}
}

// ListCareers handles GET /api/careers
func (h *CareerHandler) ListCareers(w http.ResponseWriter, r *http.Request) {
	careers, err := h.catalog.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"careers": careers,
		"count":   len(careers),
	})
}

// SearchCareers handles GET /api/careers/search
func (h *CareerHandler) SearchCareers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	careers, err := h.catalog.Search(r.Context(), query, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"careers": careers,
		"count":   len(careers),
		"query":   query,
	})
}

// GetCareer handles GET /api/careers/{name}
func (h *CareerHandler) GetCareer(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "career name is required")
		return
	}

	career, err := h.catalog.Get(r.Context(), name)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, career)
}
