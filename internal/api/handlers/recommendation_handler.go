package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/navanish17/ai-career-advisor/internal/application/services"
	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/observability"
)

// RecommendationHandler handles recommendation, quiz and interaction
// HTTP requests
type RecommendationHandler struct {
	recommendations *services.RecommendationService
	preferences     *services.PreferenceService
	interactions    *services.InteractionService
	similar         *services.SimilarCareerService
	validate        *validator.Validate
	metrics         *observability.Metrics
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(
	recommendations *services.RecommendationService,
	preferences *services.PreferenceService,
	interactions *services.InteractionService,
	similar *services.SimilarCareerService,
	metrics *observability.Metrics,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		preferences:     preferences,
		interactions:    interactions,
		similar:         similar,
		validate:        validator.New(),
		metrics:         metrics,
	}
}

type quizSubmitRequest struct {
	Skills               []string `json:"skills" validate:"max=50,dive,min=1"`
	Interests            []string `json:"interests" validate:"max=50,dive,min=1"`
	PersonalityTraits    []string `json:"personality_traits" validate:"max=50,dive,min=1"`
	EducationLevel       *string  `json:"education_level"`
	CurrentStream        *string  `json:"current_stream"`
	Percentage           *float64 `json:"percentage" validate:"omitempty,gte=0,lte=100"`
	PreferredWorkStyle   *string  `json:"preferred_work_style"`
	PreferredSalaryRange *string  `json:"preferred_salary_range"`
	PreferredLocation    *string  `json:"preferred_location"`
	BudgetConstraint     *string  `json:"budget_constraint"`
	TimeCommitment       *string  `json:"time_commitment"`
}

type interactionTrackRequest struct {
	CareerName      string `json:"career_name" validate:"required"`
	InteractionType string `json:"interaction_type" validate:"required"`
	Source          string `json:"source"`
	SessionID       string `json:"session_id"`
}

type feedbackRequest struct {
	CareerName string `json:"career_name" validate:"required"`
	IsHelpful  bool   `json:"is_helpful"`
}

// SubmitQuiz handles POST /api/recommendations/quiz
func (h *RecommendationHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("user_email")
	if userEmail == "" {
		respondWithError(w, http.StatusBadRequest, "user_email is required")
		return
	}

	var req quizSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid quiz payload: "+err.Error())
		return
	}

	profile, err := h.preferences.Save(r.Context(), userEmail, services.PreferenceUpdate{
		Skills:               req.Skills,
		Interests:            req.Interests,
		PersonalityTraits:    req.PersonalityTraits,
		EducationLevel:       req.EducationLevel,
		CurrentStream:        req.CurrentStream,
		Percentage:           req.Percentage,
		PreferredWorkStyle:   req.PreferredWorkStyle,
		PreferredSalaryRange: req.PreferredSalaryRange,
		PreferredLocation:    req.PreferredLocation,
		BudgetConstraint:     req.BudgetConstraint,
		TimeCommitment:       req.TimeCommitment,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// GetProfile handles GET /api/recommendations/profile
func (h *RecommendationHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("user_email")
	if userEmail == "" {
		respondWithError(w, http.StatusBadRequest, "user_email is required")
		return
	}

	profile, err := h.preferences.Get(r.Context(), userEmail)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// GetRecommendations handles GET /api/recommendations/careers
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("user_email")
	if userEmail == "" {
		respondWithError(w, http.StatusBadRequest, "user_email is required")
		return
	}

	topK, ok := parseTopK(w, r)
	if !ok {
		return
	}

	start := time.Now()
	recommendations, err := h.recommendations.GetRecommendations(r.Context(), userEmail, topK)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	method := "popularity"
	if len(recommendations) > 0 {
		method = string(recommendations[0].Type)
	}
	if h.metrics != nil {
		observability.RecordRecommendationMetric(r.Context(), h.metrics, method, len(recommendations), time.Since(start))
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_email":            userEmail,
		"recommendations":       recommendations,
		"total_count":           len(recommendations),
		"recommendation_method": method,
	})
}

// GetSimilarCareers handles GET /api/recommendations/similar
func (h *RecommendationHandler) GetSimilarCareers(w http.ResponseWriter, r *http.Request) {
	careerName := r.URL.Query().Get("career")
	if careerName == "" {
		respondWithError(w, http.StatusBadRequest, "career is required")
		return
	}

	topK, ok := parseTopK(w, r)
	if !ok {
		return
	}

	similar, err := h.similar.FindSimilar(r.Context(), careerName, topK)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"target_career":   careerName,
		"similar_careers": similar,
	})
}

// TrackInteraction handles POST /api/recommendations/interactions
func (h *RecommendationHandler) TrackInteraction(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("user_email")
	if userEmail == "" {
		respondWithError(w, http.StatusBadRequest, "user_email is required")
		return
	}

	var req interactionTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid interaction payload: "+err.Error())
		return
	}

	source := req.Source
	if source == "" {
		source = "recommendation"
	}

	interaction, err := h.interactions.Track(
		r.Context(),
		userEmail,
		req.CareerName,
		entities.InteractionType(req.InteractionType),
		source,
		req.SessionID,
	)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if h.metrics != nil {
		observability.RecordInteractionMetric(r.Context(), h.metrics, string(interaction.Type))
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"interaction_id": interaction.ID,
		"message":        "tracked " + req.InteractionType + " for " + req.CareerName,
	})
}

// SubmitFeedback handles POST /api/recommendations/feedback. Helpful
// feedback counts as a save, unhelpful as a dismissal.
func (h *RecommendationHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("user_email")
	if userEmail == "" {
		respondWithError(w, http.StatusBadRequest, "user_email is required")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid feedback payload: "+err.Error())
		return
	}

	interactionType := entities.InteractionDismissed
	if req.IsHelpful {
		interactionType = entities.InteractionSaved
	}

	if _, err := h.interactions.Track(r.Context(), userEmail, req.CareerName, interactionType, "feedback", ""); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "feedback recorded",
	})
}

// parseTopK reads the optional top_k query parameter. Zero means "use the
// service default"; non-numeric input is rejected here, range checks
// happen in the services.
func parseTopK(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("top_k")
	if raw == "" {
		return 0, true
	}
	topK, err := strconv.Atoi(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "top_k must be an integer")
		return 0, false
	}
	return topK, true
}
