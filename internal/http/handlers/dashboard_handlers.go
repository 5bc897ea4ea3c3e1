package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/planejacasar/wedding-backend/internal/http/middleware"
	"github.com/planejacasar/wedding-backend/internal/http/response"
	"github.com/planejacasar/wedding-backend/internal/service"
)

// DashboardHandler gates membership itself before delegating to the
// aggregator, which does no access checks.
type DashboardHandler struct {
	events    service.EventService
	dashboard service.DashboardService
}

func NewDashboardHandler(events service.EventService, dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{events: events, dashboard: dashboard}
}

func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/kpis", h.kpis)
	r.Get("/upcoming-tasks", h.upcomingTasks)
	r.Get("/progress-by-area", h.progressByArea)
	r.Get("/vendors-status", h.vendorsStatus)
	r.Get("/budget-snapshot", h.budgetSnapshot)
	return r
}

// authorize runs the membership gate shared by every dashboard route.
func (h *DashboardHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return "", false
	}
	if err := h.events.Authorize(r.Context(), middleware.UserID(r), eventID); err != nil {
		response.Error(w, err)
		return "", false
	}
	return eventID, true
}

func (h *DashboardHandler) kpis(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	kpis, err := h.dashboard.KPIs(r.Context(), eventID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, kpis)
}

func (h *DashboardHandler) progressByArea(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	areas, err := h.dashboard.ProgressByArea(r.Context(), eventID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, areas)
}

func (h *DashboardHandler) vendorsStatus(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	counts, err := h.dashboard.VendorStatusCounts(r.Context(), eventID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, counts)
}

func (h *DashboardHandler) budgetSnapshot(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	snapshot, err := h.dashboard.BudgetSnapshot(r.Context(), eventID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snapshot)
}

func (h *DashboardHandler) upcomingTasks(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	tasks, err := h.dashboard.UpcomingTasks(r.Context(), eventID, queryInt(r, "limit", 0))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, tasks)
}
