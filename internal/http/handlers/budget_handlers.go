package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/http/middleware"
	"github.com/planejacasar/wedding-backend/internal/http/response"
	"github.com/planejacasar/wedding-backend/internal/service"
)

type BudgetHandler struct {
	budgets service.BudgetService
}

func NewBudgetHandler(budgets service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

func (h *BudgetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Put("/{id}", h.update)
	r.Patch("/{id}/approve", h.approve)
	r.Patch("/{id}/reject", h.reject)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *BudgetHandler) create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBudgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	budget, err := h.budgets.Create(r.Context(), middleware.UserID(r), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, budget)
}

func (h *BudgetHandler) list(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	var filters domain.BudgetFilters
	if s, valid := domain.ParseBudgetStatus(r.URL.Query().Get("status")); valid {
		filters.Status = &s
	}
	if c, valid := domain.ParseSpendCategory(r.URL.Query().Get("category")); valid {
		filters.Category = &c
	}
	filters.Search = r.URL.Query().Get("search")

	budgets, err := h.budgets.List(r.Context(), middleware.UserID(r), eventID, filters)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, budgets)
}

func (h *BudgetHandler) stats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	stats, err := h.budgets.Stats(r.Context(), middleware.UserID(r), eventID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *BudgetHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch domain.BudgetPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	budget, err := h.budgets.Update(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, budget)
}

func (h *BudgetHandler) approve(w http.ResponseWriter, r *http.Request) {
	budget, err := h.budgets.Approve(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, budget)
}

func (h *BudgetHandler) reject(w http.ResponseWriter, r *http.Request) {
	budget, err := h.budgets.Reject(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, budget)
}

func (h *BudgetHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.budgets.Delete(r.Context(), middleware.UserID(r), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
