package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navanish17/ai-career-advisor/internal/api/handlers"
	"github.com/navanish17/ai-career-advisor/internal/application/services"
	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
)

func setupCareerHandler(careers []*entities.Career) *handlers.CareerHandler {
	catalog := services.NewCareerCatalogService(&memCareerRepo{careers: careers}, nil)
	return handlers.NewCareerHandler(catalog)
}

func TestListCareers(t *testing.T) {
	handler := setupCareerHandler(sampleCareers())

	req := httptest.NewRequest("GET", "/api/careers", nil)
	w := httptest.NewRecorder()

	handler.ListCareers(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Careers []*entities.Career `json:"careers"`
		Count   int                `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
}

func TestGetCareer(t *testing.T) {
	handler := setupCareerHandler(sampleCareers())

	req := httptest.NewRequest("GET", "/api/careers/Software%20Engineer", nil)
	req.SetPathValue("name", "Software Engineer")
	w := httptest.NewRecorder()

	handler.GetCareer(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var career entities.Career
	require.NoError(t, json.NewDecoder(w.Body).Decode(&career))
	assert.Equal(t, "Software Engineer", career.Name)
}

func TestGetCareerNotFound(t *testing.T) {
	handler := setupCareerHandler(sampleCareers())

	req := httptest.NewRequest("GET", "/api/careers/Astronaut", nil)
	req.SetPathValue("name", "Astronaut")
	w := httptest.NewRecorder()

	handler.GetCareer(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchCareersEmptyQueryListsAll(t *testing.T) {
	handler := setupCareerHandler(sampleCareers())

	req := httptest.NewRequest("GET", "/api/careers/search", nil)
	w := httptest.NewRecorder()

	handler.SearchCareers(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Careers []*entities.Career `json:"careers"`
		Count   int                `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
}

func TestSearchCareersInvalidLimit(t *testing.T) {
	handler := setupCareerHandler(sampleCareers())

	req := httptest.NewRequest("GET", "/api/careers/search?q=tech&limit=zero", nil)
	w := httptest.NewRecorder()

	handler.SearchCareers(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
