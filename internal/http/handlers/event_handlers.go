package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/http/middleware"
	"github.com/planejacasar/wedding-backend/internal/http/response"
	"github.com/planejacasar/wedding-backend/internal/service"
)

type EventHandler struct {
	events service.EventService
}

func NewEventHandler(events service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/join", h.join)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *EventHandler) create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.events.Create(r.Context(), middleware.UserID(r), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, event)
}

func (h *EventHandler) list(w http.ResponseWriter, r *http.Request) {
	details, err := h.events.ListForUser(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, details)
}

func (h *EventHandler) get(w http.ResponseWriter, r *http.Request) {
	details, err := h.events.Get(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, details)
}

func (h *EventHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch domain.EventPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	event, err := h.events.Update(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, event)
}

func (h *EventHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Delete(r.Context(), middleware.UserID(r), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

func (h *EventHandler) join(w http.ResponseWriter, r *http.Request) {
	var req domain.JoinEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := h.events.Join(r.Context(), middleware.UserID(r), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, event)
}
