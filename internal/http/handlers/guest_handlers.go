package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/http/middleware"
	"github.com/planejacasar/wedding-backend/internal/http/response"
	"github.com/planejacasar/wedding-backend/internal/service"
)

type GuestHandler struct {
	guests service.GuestService
}

func NewGuestHandler(guests service.GuestService) *GuestHandler {
	return &GuestHandler{guests: guests}
}

func (h *GuestHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *GuestHandler) create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateGuestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	guest, err := h.guests.Create(r.Context(), middleware.UserID(r), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, guest)
}

func (h *GuestHandler) list(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	var filters domain.GuestFilters
	if s, valid := domain.ParseGuestStatus(r.URL.Query().Get("status")); valid {
		filters.Status = &s
	}
	if t, valid := domain.ParseGuestType(r.URL.Query().Get("type")); valid {
		filters.Type = &t
	}
	if side, valid := domain.ParseGuestSide(r.URL.Query().Get("side")); valid {
		filters.Side = &side
	}
	filters.Search = r.URL.Query().Get("search")

	guests, err := h.guests.List(r.Context(), middleware.UserID(r), eventID, filters)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, guests)
}

func (h *GuestHandler) stats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	stats, err := h.guests.Stats(r.Context(), middleware.UserID(r), eventID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *GuestHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch domain.GuestPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	guest, err := h.guests.Update(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, guest)
}

func (h *GuestHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.guests.Delete(r.Context(), middleware.UserID(r), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
