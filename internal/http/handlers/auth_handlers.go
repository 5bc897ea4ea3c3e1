package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/http/middleware"
	"github.com/planejacasar/wedding-backend/internal/http/response"
	"github.com/planejacasar/wedding-backend/internal/service"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Routes wires the credential endpoints. Login and forgot-password sit
// behind the rate limiter; /me requires a bearer token.
func (h *AuthHandler) Routes(limiter, requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.With(limiter).Post("/login", h.login)
	r.With(limiter).Post("/forgot-password", h.forgotPassword)
	r.Post("/reset-password", h.resetPassword)
	r.With(requireAuth).Get("/me", h.me)
	return r
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Me(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), &req); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{
		"message": "if an account exists for this email, a reset link has been sent",
	})
}

func (h *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.auth.ResetPassword(r.Context(), &req); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
