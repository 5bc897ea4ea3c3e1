package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/http/middleware"
	"github.com/planejacasar/wedding-backend/internal/http/response"
	"github.com/planejacasar/wedding-backend/internal/service"
)

type VendorHandler struct {
	vendors service.VendorService
}

func NewVendorHandler(vendors service.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

func (h *VendorHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Put("/{id}", h.update)
	r.Patch("/{id}/mark-paid", h.markPaid)
	r.Patch("/{id}/mark-overdue", h.markOverdue)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *VendorHandler) create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.vendors.Create(r.Context(), middleware.UserID(r), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, vendor)
}

func (h *VendorHandler) list(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	var filters domain.VendorFilters
	if s, valid := domain.ParseVendorStatus(r.URL.Query().Get("status")); valid {
		filters.Status = &s
	}
	if c, valid := domain.ParseSpendCategory(r.URL.Query().Get("category")); valid {
		filters.Category = &c
	}
	filters.Search = r.URL.Query().Get("search")

	vendors, err := h.vendors.List(r.Context(), middleware.UserID(r), eventID, filters)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, vendors)
}

func (h *VendorHandler) stats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}

	stats, err := h.vendors.Stats(r.Context(), middleware.UserID(r), eventID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *VendorHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch domain.VendorPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	vendor, err := h.vendors.Update(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) markPaid(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.vendors.MarkPaid(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) markOverdue(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.vendors.MarkOverdue(r.Context(), middleware.UserID(r), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vendors.Delete(r.Context(), middleware.UserID(r), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
