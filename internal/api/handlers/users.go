package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	BirthDate string `json:"birthDate" validate:"required"`
	Gender    string `json:"gender" validate:"required"`
}

type AdminStatusRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error while fetching users")
		return
	}
	respond(w, http.StatusOK, msgOK, users)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var req UpdateUserRequest
	if !checkRequest(w, r, &req) {
		return
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Birth date incorrect")
		return
	}

	user, err := h.userService.Update(r.Context(), userID, service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		BirthDate: birthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondError(w, http.StatusNotFound, msgNotFound)
		case errors.Is(err, domain.ErrEmailTaken):
			respondError(w, http.StatusUnprocessableEntity, "Email already exists")
		default:
			respondError(w, http.StatusInternalServerError, msgServer)
		}
		return
	}

	respond(w, http.StatusOK, msgOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.userService.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		respondError(w, http.StatusInternalServerError, "Server error while deleting user")
		return
	}

	respond(w, http.StatusOK, msgOK, "User and all associated data deleted successfully")
}

func (h *UserHandler) SetAdminStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	var req AdminStatusRequest
	if !checkRequest(w, r, &req) {
		return
	}

	user, err := h.userService.SetAdmin(r.Context(), userID, *req.IsAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Server error while updating admin status")
		return
	}

	respond(w, http.StatusOK, msgOK, user)
}
