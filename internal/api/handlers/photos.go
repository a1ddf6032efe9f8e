package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/media"
	"github.com/marc/albumshare/internal/service"
)

type PhotoHandler struct {
	photoService *service.PhotoService
	gateway      media.Gateway
}

func NewPhotoHandler(photoService *service.PhotoService, gateway media.Gateway) *PhotoHandler {
	return &PhotoHandler{photoService: photoService, gateway: gateway}
}

type CreatePhotoRequest struct {
	AlbumID     string `json:"albumId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required,url"`
}

type UpdatePhotoRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// GetSignature signs the client's upload parameters so it can push bytes
// directly to the media host without ever seeing the API secret.
func (h *PhotoHandler) GetSignature(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, msgOK, h.gateway.SignUpload(r.URL.Query()))
}

// List is the multi-mode photo query endpoint. In priority order: album
// photo count, album-scoped filtered listing, lookup by id, and finally the
// full unscoped listing.
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	switch {
	case q.Get("albumIdCount") != "" && q.Get("albumName") != "":
		h.countForAlbum(w, r, q.Get("albumIdCount"), q.Get("albumName"))
	case q.Get("albumId") != "":
		h.listForAlbum(w, r, q.Get("albumId"))
	case q.Get("id") != "":
		h.getByID(w, r, q.Get("id"))
	default:
		photos, err := h.photoService.ListAll(r.Context())
		if err != nil {
			respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		respond(w, http.StatusOK, msgOK, photos)
	}
}

func (h *PhotoHandler) countForAlbum(w http.ResponseWriter, r *http.Request, albumIDParam, albumName string) {
	albumID, err := uuid.Parse(albumIDParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	count, err := h.photoService.CountForAlbum(r.Context(), albumID, albumName)
	if err != nil {
		respondError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	respond(w, http.StatusOK, msgOK, count)
}

func (h *PhotoHandler) listForAlbum(w http.ResponseWriter, r *http.Request, albumIDParam string) {
	albumID, err := uuid.Parse(albumIDParam)
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	q := r.URL.Query()
	filter := domain.PhotoFilter{
		Name:  q.Get("s"),
		Tag:   q.Get("tag"),
		Color: q.Get("color"),
	}
	if v := q.Get("width"); v != "" {
		filter.Width, _ = strconv.Atoi(v)
	}
	if v := q.Get("height"); v != "" {
		filter.Height, _ = strconv.Atoi(v)
	}

	photos, err := h.photoService.FindByAlbum(r.Context(), albumID, filter)
	if err != nil {
		// Long-standing contract on this path: a 400 status carrying the
		// not-found message. Clients match on the message.
		respondError(w, http.StatusBadRequest, msgNotFound)
		return
	}
	if len(photos) == 0 {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	respond(w, http.StatusOK, msgOK, photos)
}

func (h *PhotoHandler) getByID(w http.ResponseWriter, r *http.Request, idParam string) {
	photoID, err := uuid.Parse(idParam)
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	photo, err := h.photoService.Get(r.Context(), photoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}
	respond(w, http.StatusOK, msgOK, photo)
}

func (h *PhotoHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.getByID(w, r, chi.URLParam(r, "id"))
}

func (h *PhotoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePhotoRequest
	if !checkRequest(w, r, &req) {
		return
	}

	albumID, err := uuid.Parse(req.AlbumID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid album ID")
		return
	}

	photo, err := h.photoService.Create(r.Context(), service.CreatePhotoInput{
		AlbumID:     albumID,
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}
	respond(w, http.StatusCreated, msgCreated, photo)
}

func (h *PhotoHandler) Update(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var req UpdatePhotoRequest
	if !checkRequest(w, r, &req) {
		return
	}

	photo, err := h.photoService.Update(r.Context(), photoID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		respondError(w, http.StatusInternalServerError, msgServer)
		return
	}
	respond(w, http.StatusOK, msgOK, photo)
}

// Delete also serves the route carrying a trailing asset-id segment; the
// client-supplied value is ignored and the asset id is derived from the
// stored URL.
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.photoService.Delete(r.Context(), photoID); err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	respond(w, http.StatusOK, msgOK, "Photo Deleted")
}

// DeleteMultiple removes the photos named by the mIds query list and the
// remote assets named by cIds. Partial success is accepted.
func (h *PhotoHandler) DeleteMultiple(w http.ResponseWriter, r *http.Request) {
	mIDs := splitList(r.URL.Query().Get("mIds"))
	cIDs := splitList(r.URL.Query().Get("cIds"))
	if len(mIDs) == 0 && len(cIDs) == 0 {
		respondError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	recordIDs := make([]uuid.UUID, 0, len(mIDs))
	for _, raw := range mIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, msgBadRequest)
			return
		}
		recordIDs = append(recordIDs, id)
	}

	if err := h.photoService.DeleteBatch(r.Context(), recordIDs, cIDs); err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	respond(w, http.StatusOK, msgOK, "Photos Deleted")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
