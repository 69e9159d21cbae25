package profilehandler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"paymeet/internal/domain/profile"
	"paymeet/internal/transport/http/api"
	"paymeet/internal/transport/http/shared"
)

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
}

type Handler struct {
	Store          *profile.Store
	UploadDir      string
	MaxUploadBytes int64
}

func NewHandler(store *profile.Store, uploadDir string, maxUploadBytes int64) *Handler {
	return &Handler{Store: store, UploadDir: uploadDir, MaxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Patch("/", h.handleUpdate)
		// The id segment is kept for API compatibility; the store always
		// targets the singleton row.
		r.Post("/{profileID}/photo", h.handleUploadPhoto)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	prof, err := h.Store.Get(r.Context())
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		log.Printf("get profile failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	api.Success(w, prof)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	var patch profile.Patch
	if err := decoder.Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	existing, err := h.Store.Get(r.Context())
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		log.Printf("get profile failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	patch.Apply(&existing)

	v := shared.NewValidator()
	v.Required("firstName", existing.FirstName, "first name is required")
	v.Required("lastName", existing.LastName, "last name is required")
	v.Required("email", existing.Email, "email is required")
	if v.Reject(w) {
		return
	}

	updated, err := h.Store.Update(r.Context(), existing)
	if err != nil {
		log.Printf("update profile failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	api.Success(w, updated)
}

func (h *Handler) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Size == 0 {
		api.Fail(w, http.StatusBadRequest, "uploaded file is empty")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedPhotoExtensions[ext] {
		api.Fail(w, http.StatusBadRequest, "unsupported file type")
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		log.Printf("upload dir create failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to upload photo")
		return
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		log.Printf("upload file create failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to upload photo")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("upload file write failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to upload photo")
		return
	}

	photoURL := "/uploads/" + name
	if err := h.Store.SetPhotoURL(r.Context(), photoURL); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "profile not found")
			return
		}
		log.Printf("photo url update failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to update profile with new photo")
		return
	}

	api.Success(w, map[string]string{"message": "photo uploaded successfully", "photoUrl": photoURL})
}
