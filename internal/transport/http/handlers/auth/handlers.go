package authhandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paymeet/internal/domain/auth"
	"paymeet/internal/transport/http/api"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(db *pgxpool.Pool, jwtSecret string) *Handler {
	return &Handler{Service: auth.NewService(db, jwtSecret)}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, user, err := h.Service.Login(r.Context(), payload.Username, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		log.Printf("login failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	api.Success(w, map[string]any{"token": token, "user": user})
}

// Tokens are stateless; logout exists so clients have a uniform endpoint to
// call when discarding one.
func (h *Handler) handleLogout(w http.ResponseWriter, _ *http.Request) {
	api.Success(w, map[string]string{"message": "logged out"})
}
