package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/api/middleware"
	"github.com/marc/albumshare/internal/config"
	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	BirthDate string `json:"birthDate" validate:"required"`
	Gender    string `json:"gender" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type CheckPasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// sessionPayload is the auth response body: the public profile plus the
// issued token.
type sessionPayload struct {
	*domain.User
	Token string `json:"token"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !checkRequest(w, r, &req) {
		return
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Birth date incorrect")
		return
	}

	result, err := h.authService.Signup(r.Context(), service.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: birthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			respondError(w, http.StatusBadRequest, "Email is already in use")
			return
		}
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}

	h.setSessionCookie(w, result.Token)
	respond(w, http.StatusCreated, msgCreated, sessionPayload{User: result.User, Token: result.Token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !checkRequest(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}

	h.setSessionCookie(w, result.Token)
	respond(w, http.StatusOK, msgOK, sessionPayload{User: result.User, Token: result.Token})
}

func (h *AuthHandler) Renew(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	result, err := h.authService.Renew(r.Context(), &claims)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}

	h.setSessionCookie(w, result.Token)
	respond(w, http.StatusOK, msgOK, sessionPayload{User: result.User, Token: result.Token})
}

// Logout clears the session cookie. There is no server-side session state,
// so repeating it is harmless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: !h.cfg.IsProduction(),
		Secure:   h.cfg.IsProduction(),
	})
	respond(w, http.StatusOK, "Successfully logged out", nil)
}

func (h *AuthHandler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req CheckPasswordRequest
	if !checkRequest(w, r, &req) {
		return
	}

	user, err := h.authService.CheckPassword(r.Context(), userID, req.OldPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondError(w, http.StatusBadRequest, "Invalid user ID")
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondError(w, http.StatusBadRequest, "Old password is invalid")
		default:
			respondError(w, http.StatusInternalServerError, msgServer)
		}
		return
	}

	respond(w, http.StatusOK, msgOK, map[string]string{
		"uid":       user.ID.String(),
		"firstName": user.FirstName,
	})
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var req UpdatePasswordRequest
	if !checkRequest(w, r, &req) {
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}

	respond(w, http.StatusOK, msgOK, "Password changed")
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !checkRequest(w, r, &req) {
		return
	}

	// Fire and forget; the response never reveals whether the address
	// exists or whether delivery worked.
	h.authService.ForgotPassword(r.Context(), req.Email)
	respond(w, http.StatusOK, "Reset password email sent", nil)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(domain.SessionDuration / time.Second),
		HttpOnly: !h.cfg.IsProduction(),
		Secure:   h.cfg.IsProduction(),
	})
}
