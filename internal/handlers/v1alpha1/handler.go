package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jobkeeper/application-tracker/internal/store"
	"go.uber.org/zap"
)

// Handler serves the read-only dashboard API on top of the ledger.
type Handler struct {
	store store.Store
}

func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/api/v1/applications", h.ListApplications)
	router.Get("/api/v1/applications/{id}", h.GetApplication)
	router.Get("/api/v1/events", h.ListEvents)
	router.Get("/api/v1/stats", h.GetStats)
}

// (GET /api/v1/applications)
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	filter := store.NewApplicationQueryFilter()
	if status := r.URL.Query().Get("status"); status != "" {
		filter = filter.ByStatus(status)
	}

	applications, err := h.store.Application().List(r.Context(), filter,
		store.NewApplicationQueryOptions().WithSortOrder(store.SortByCreatedTimeDesc))
	if err != nil {
		zap.S().Named("handlers").Errorf("failed to list applications: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, ApplicationListToAPI(applications))
}

// (GET /api/v1/applications/{id})
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	application, err := h.store.Application().Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			http.Error(w, "application not found", http.StatusNotFound)
			return
		}
		zap.S().Named("handlers").Errorf("failed to get application %s: %v", id, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, ApplicationToAPI(*application))
}

// (GET /api/v1/events)
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	options := store.NewEventQueryOptions().WithSortOrder(store.SortByEventDateDesc)
	if applicationID := r.URL.Query().Get("application_id"); applicationID != "" {
		options = options.ByApplicationID(applicationID)
	}

	events, err := h.store.Event().List(r.Context(), options)
	if err != nil {
		zap.S().Named("handlers").Errorf("failed to list events: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, EventListToAPI(events))
}

// (GET /api/v1/stats)
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Statistics(r.Context())
	if err != nil {
		zap.S().Named("handlers").Errorf("failed to compute stats: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, StatsToAPI(stats))
}
