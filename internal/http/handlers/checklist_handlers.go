package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/http/middleware"
	"github.com/planejacasar/wedding-backend/internal/http/response"
	"github.com/planejacasar/wedding-backend/internal/service"
)

type ChecklistHandler struct {
	checklist service.ChecklistService
}

func NewChecklistHandler(checklist service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklist: checklist}
}

func (h *ChecklistHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Put("/{id}", h.update)
	r.Patch("/{id}/toggle", h.toggle)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *ChecklistHandler) create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateChecklistTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.checklist.Create(r.Context(), middleware.UserID(r), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, task)
}

func (h *ChecklistHandler) list(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	var filters domain.ChecklistFilters
	if s, valid := domain.ParseTaskStatus(r.URL.Query().Get("status")); valid {
		filters.Status = &s
	}
	if c, valid := domain.ParseTaskCategory(r.URL.Query().Get("category")); valid {
		filters.Category = &c
	}
	if p, valid := domain.ParseTaskPriority(r.URL.Query().Get("priority")); valid {
		filters.Priority = &p
	}
	filters.Search = r.URL.Query().Get("search")

	tasks, err := h.checklist.List(r.Context(), middleware.UserID(r), eventID, filters)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, tasks)
}

func (h *ChecklistHandler) stats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	stats, err := h.checklist.Stats(r.Context(), middleware.UserID(r), eventID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *ChecklistHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch domain.ChecklistTaskPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	task, err := h.checklist.Update(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, task)
}

func (h *ChecklistHandler) toggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.checklist.Toggle(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, task)
}

func (h *ChecklistHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.checklist.Delete(r.Context(), middleware.UserID(r), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
