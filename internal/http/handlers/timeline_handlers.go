package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/http/middleware"
	"github.com/planejacasar/wedding-backend/internal/http/response"
	"github.com/planejacasar/wedding-backend/internal/service"
)

type TimelineHandler struct {
	timeline service.TimelineService
}

func NewTimelineHandler(timeline service.TimelineService) *TimelineHandler {
	return &TimelineHandler{timeline: timeline}
}

func (h *TimelineHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *TimelineHandler) create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTimelineTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.timeline.Create(r.Context(), middleware.UserID(r), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, task)
}

func (h *TimelineHandler) list(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	var filters domain.TimelineFilters
	if s, valid := domain.ParseTimelineStatus(r.URL.Query().Get("status")); valid {
		filters.Status = &s
	}
	filters.Search = r.URL.Query().Get("search")

	tasks, err := h.timeline.List(r.Context(), middleware.UserID(r), eventID, filters)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, tasks)
}

func (h *TimelineHandler) stats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	stats, err := h.timeline.Stats(r.Context(), middleware.UserID(r), eventID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *TimelineHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch domain.TimelineTaskPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	task, err := h.timeline.Update(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, task)
}

func (h *TimelineHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.timeline.Delete(r.Context(), middleware.UserID(r), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
