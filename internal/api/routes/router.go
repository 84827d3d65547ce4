package routes

import (
	"net/http"

	"github.com/navanish17/ai-career-advisor/internal/api/handlers"
	"github.com/navanish17/ai-career-advisor/internal/api/middleware"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	recommendationHandler *handlers.RecommendationHandler
	careerHandler         *handlers.CareerHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	recommendationHandler *handlers.RecommendationHandler,
	careerHandler *handlers.CareerHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		recommendationHandler: recommendationHandler,
		careerHandler:         careerHandler,
		cacheMiddleware:       cacheMiddleware,
		metrics:               metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Quiz and preference endpoints
	r.mux.HandleFunc("POST /api/recommendations/quiz", r.recommendationHandler.SubmitQuiz)
	r.mux.HandleFunc("GET /api/recommendations/profile", r.recommendationHandler.GetProfile)

	// Recommendation endpoints
	r.mux.HandleFunc("GET /api/recommendations/careers", r.recommendationHandler.GetRecommendations)
	r.mux.HandleFunc("GET /api/recommendations/similar", r.recommendationHandler.GetSimilarCareers)

	// Interaction tracking endpoints
	r.mux.HandleFunc("POST /api/recommendations/interactions", r.recommendationHandler.TrackInteraction)
	r.mux.HandleFunc("POST /api/recommendations/feedback", r.recommendationHandler.SubmitFeedback)

	// Career catalog endpoints
	r.mux.HandleFunc("GET /api/careers", r.careerHandler.ListCareers)
	r.mux.HandleFunc("GET /api/careers/search", r.careerHandler.SearchCareers)
	r.mux.HandleFunc("GET /api/careers/{name}", r.careerHandler.GetCareer)

	// Apply middleware in reverse order (last middleware wraps first).
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on cache HITs.
	handler = middleware.CORSMiddleware(handler)

	return handler
}
