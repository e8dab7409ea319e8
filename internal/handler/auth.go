package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Dan9191/kos-service/internal/middleware"
	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/response"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login handles administrator authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		response.ValidationError(w, map[string][]string{"credentials": {"email and password are required"}})
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	response.Success(w, http.StatusOK, "Login berhasil", loginResponse{Token: token, User: user})
}

// Logout clears the session cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	response.Success(w, http.StatusOK, "Logout berhasil", nil)
}

// Me returns the authenticated administrator
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CurrentUser(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch user")
		return
	}
	response.Success(w, http.StatusOK, "Data retrieved successfully", user)
}
