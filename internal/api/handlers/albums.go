package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/api/middleware"
	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/service"
)

type AlbumHandler struct {
	albumService *service.AlbumService
}

func NewAlbumHandler(albumService *service.AlbumService) *AlbumHandler {
	return &AlbumHandler{albumService: albumService}
}

type AlbumRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
}

func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	albums, err := h.albumService.GetByUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}
	respond(w, http.StatusOK, msgOK, albums)
}

func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	album, err := h.albumService.Get(r.Context(), albumID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}
	respond(w, http.StatusOK, msgOK, album)
}

func (h *AlbumHandler) Search(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	albums, err := h.albumService.SearchByName(r.Context(), claims.UserID, chi.URLParam(r, "s"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}
	respond(w, http.StatusOK, msgOK, albums)
}

func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req AlbumRequest
	if !checkRequest(w, r, &req) {
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	album, err := h.albumService.Create(r.Context(), claims.UserID, service.AlbumInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}
	respond(w, http.StatusCreated, msgCreated, album)
}

func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var req AlbumRequest
	if !checkRequest(w, r, &req) {
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	album, err := h.albumService.Update(r.Context(), albumID, service.AlbumInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}
	respond(w, http.StatusOK, msgOK, album)
}

// Delete removes the album and its photos. A media-host failure surfaces as
// Not Found on this path, matching the photo deletion endpoints.
func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.albumService.Delete(r.Context(), albumID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUpstream):
			respondError(w, http.StatusNotFound, msgNotFound)
		default:
			respondError(w, http.StatusInternalServerError, msgServer)
		}
		return
	}

	respond(w, http.StatusOK, msgOK, "Album Deleted")
}

func (h *AlbumHandler) CountPhotos(w http.ResponseWriter, r *http.Request) {
	albumID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	count, err := h.albumService.CountPhotos(r.Context(), albumID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}
	respond(w, http.StatusOK, msgOK, map[string]int64{"count": count})
}
