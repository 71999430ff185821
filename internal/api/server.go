package api

import (
	"net/http"
	"time"

	blogsapi "github.com/futig/cookbook-backend/internal/api/blogs"
	datasetsapi "github.com/futig/cookbook-backend/internal/api/datasets"
	"github.com/futig/cookbook-backend/internal/api/docs"
	explorerapi "github.com/futig/cookbook-backend/internal/api/explorer"
	itinerariesapi "github.com/futig/cookbook-backend/internal/api/itineraries"
	"github.com/futig/cookbook-backend/internal/api/middleware"
	newsapi "github.com/futig/cookbook-backend/internal/api/news"
	portfolioapi "github.com/futig/cookbook-backend/internal/api/portfolio"
	ragapi "github.com/futig/cookbook-backend/internal/api/rag"
	statementsapi "github.com/futig/cookbook-backend/internal/api/statements"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers groups every resource handler the router mounts.
type Handlers struct {
	RAG         *ragapi.Handler
	Statements  *statementsapi.Handler
	Datasets    *datasetsapi.Handler
	Itineraries *itinerariesapi.Handler
	News        *newsapi.Handler
	Blogs       *blogsapi.Handler
	Explorer    *explorerapi.Handler
	Portfolio   *portfolioapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		ragapi.RegisterRoutes(r, h.RAG)
		statementsapi.RegisterRoutes(r, h.Statements)
		datasetsapi.RegisterRoutes(r, h.Datasets)
		itinerariesapi.RegisterRoutes(r, h.Itineraries)
		newsapi.RegisterRoutes(r, h.News)
		blogsapi.RegisterRoutes(r, h.Blogs)
		explorerapi.RegisterRoutes(r, h.Explorer)
		portfolioapi.RegisterRoutes(r, h.Portfolio)
	})

	return r
}
