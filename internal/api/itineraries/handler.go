package itineraries

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/futig/cookbook-backend/internal/api/apierr"
	"github.com/futig/cookbook-backend/internal/api/download"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/formatter"
	"github.com/futig/cookbook-backend/internal/pkg/logger"
	"github.com/futig/cookbook-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase ItineraryUsecase
	formats *formatter.Factory
}

func NewHandler(usecase ItineraryUsecase, formats *formatter.Factory) *Handler {
	return &Handler{usecase: usecase, formats: formats}
}

// Draft handles POST /itineraries/drafts
func (h *Handler) Draft(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DraftItinerary")

	var params entity.TripParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctxzap.Info(ctx, "drafting itinerary",
		zap.String("destination", params.Destination),
		zap.Int("days", params.Days),
	)

	draft, err := h.usecase.Draft(ctx, params)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Created(w, draft)
}

// Finalize handles POST /itineraries/{session_id}
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "FinalizeItinerary"),
	)

	var req entity.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	itinerary, err := h.usecase.Finalize(ctx, sessionID, req)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, itinerary)
}

// Get handles GET /itineraries/{session_id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "GetItinerary"),
	)

	itinerary, err := h.usecase.Get(ctx, sessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, itinerary)
}

// Download handles GET /itineraries/{session_id}/report
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "DownloadItinerary"),
	)

	itinerary, err := h.usecase.Get(ctx, sessionID)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	title := "Trip to " + itinerary.Params.Destination
	download.Serve(ctx, w, h.formats, download.ParseFormat(r),
		"itinerary", title, itinerary.Markdown)
}

// ReverseGeocode handles GET /itineraries/geocode/reverse
func (h *Handler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ReverseGeocode")

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		apierr.Respond(ctx, w, http.StatusBadRequest, "lat and lon query parameters are required", nil)
		return
	}

	place, err := h.usecase.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		apierr.FromUsecase(ctx, w, err)
		return
	}

	response.Success(w, place)
}
