package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// AuthHandlers contains HTTP handlers for registration and login
type AuthHandlers struct {
	userRepo   *UserRepository
	sessionTTL time.Duration
	log        zerolog.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(userRepo *UserRepository, sessionTTL time.Duration, log zerolog.Logger) *AuthHandlers {
	return &AuthHandlers{
		userRepo:   userRepo,
		sessionTTL: sessionTTL,
		log:        log.With().Str("handler", "auth").Logger(),
	}
}

// loginResponse pairs the user with their session token
type loginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// HandleRegister creates a new account
// POST /api/auth/register
func (h *AuthHandlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.Register(creds)
	if errors.Is(err, ErrEmailTaken) {
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(user)
}

// HandleLogin verifies credentials and issues a session token
// POST /api/auth/login
func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.Authenticate(creds)
	if errors.Is(err, ErrInvalidCredentials) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Login failed")
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	session, err := h.userRepo.CreateSession(user.ID, h.sessionTTL)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create session")
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResponse{User: user, Token: session.Token})
}

// HandleLogout invalidates the presented session token
// POST /api/auth/logout
func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if err := h.userRepo.DeleteSession(token); err != nil {
			h.log.Warn().Err(err).Msg("Failed to delete session")
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequireAuth is middleware that rejects requests without a valid
// Authorization bearer token
func (h *AuthHandlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		if _, err := h.userRepo.ValidateToken(token); err != nil {
			http.Error(w, "Session invalid or expired", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
