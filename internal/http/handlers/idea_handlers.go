package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/http/middleware"
	"github.com/planejacasar/wedding-backend/internal/http/response"
	"github.com/planejacasar/wedding-backend/internal/service"
)

type IdeaHandler struct {
	ideas service.IdeaService
}

func NewIdeaHandler(ideas service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideas: ideas}
}

func (h *IdeaHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Put("/{id}", h.update)
	r.Patch("/{id}/toggle-favorite", h.toggleFavorite)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *IdeaHandler) create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateIdeaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	idea, err := h.ideas.Create(r.Context(), middleware.UserID(r), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, idea)
}

func (h *IdeaHandler) list(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	var filters domain.IdeaFilters
	if c, valid := domain.ParseIdeaCategory(r.URL.Query().Get("category")); valid {
		filters.Category = &c
	}
	if fav, err := strconv.ParseBool(r.URL.Query().Get("favorite")); err == nil {
		filters.IsFavorite = &fav
	}
	if tags := r.URL.Query().Get("tags"); tags != "" {
		filters.Tags = strings.Split(tags, ",")
	}
	filters.Search = r.URL.Query().Get("search")

	ideas, err := h.ideas.List(r.Context(), middleware.UserID(r), eventID, filters)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, ideas)
}

func (h *IdeaHandler) stats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	stats, err := h.ideas.Stats(r.Context(), middleware.UserID(r), eventID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *IdeaHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch domain.IdeaPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	idea, err := h.ideas.Update(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, idea)
}

func (h *IdeaHandler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	idea, err := h.ideas.ToggleFavorite(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, idea)
}

func (h *IdeaHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ideas.Delete(r.Context(), middleware.UserID(r), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
