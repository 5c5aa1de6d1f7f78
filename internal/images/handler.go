package images

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/cutout/service/internal/config"
	"github.com/cutout/service/internal/removebg"
	"github.com/cutout/service/internal/response"
	"github.com/cutout/service/internal/storage"
)

// validate checks request inputs; shared because validator caches struct info.
var validate = validator.New()

// deleteRequest carries the query parameters of the deletion endpoint.
type deleteRequest struct {
	URL string `validate:"required,http_url"`
}

// Handler holds HTTP handlers for the image pipelines.
type Handler struct {
	svc *Service
	cfg *config.Config
}

// NewHandler creates a new images Handler.
func NewHandler(svc *Service, cfg *config.Config) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

// Health godoc
//
//	@Summary		Processing endpoint health
//	@Description	Reports that the processing endpoint is reachable.
//	@Tags			images
//	@Produce		json
//	@Success		200	{object}	map[string]bool
//	@Router			/remove-bg [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// RemoveBackground godoc
//
//	@Summary		Remove an image's background
//	@Description	Strips the background from the uploaded image, mirrors the
//	@Description	result horizontally, stores it, and returns the public URL.
//	@Description	With store=false the raw processed PNG is returned instead
//	@Description	(unflipped; the client compensates at download time).
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Produce		png
//	@Param			image_file	formData	file	true	"PNG or JPEG image, at most 8 MiB"
//	@Param			store		query		bool	false	"persist the result (default true)"
//	@Success		200	{object}	response.URLBody
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/remove-bg [post]
func (h *Handler) RemoveBackground(w http.ResponseWriter, r *http.Request) {
	if h.cfg.RemoveBGKey == "" {
		response.InternalError(w, "API key not configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.BadRequest(w, h.sizeLimitMessage())
			return
		}
		response.BadRequest(w, "No image file provided.")
		return
	}

	file, header, err := r.FormFile("image_file")
	if err != nil {
		response.BadRequest(w, "No image file provided.")
		return
	}
	defer file.Close()

	if !AllowedContentType(header.Header.Get("Content-Type")) {
		response.BadRequest(w, "Only PNG or JPG images are allowed.")
		return
	}
	if header.Size > h.cfg.MaxUploadBytes {
		response.BadRequest(w, h.sizeLimitMessage())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "No image file provided.")
		return
	}

	persist := r.URL.Query().Get("store") != "false"

	result, err := h.svc.Process(r.Context(), data, header.Filename, persist)
	if err != nil {
		h.writeProcessError(w, err)
		return
	}

	if !persist {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(result.Data)
		return
	}
	response.JSON(w, http.StatusOK, response.URLBody{URL: result.URL})
}

// Upload godoc
//
//	@Summary		Store raw bytes
//	@Description	Puts the request body into the object store under a fresh
//	@Description	name and returns the public URL.
//	@Tags			images
//	@Accept			octet-stream
//	@Produce		json
//	@Success		200	{object}	response.URLBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes+(1<<20)))
	if err != nil {
		response.BadRequest(w, "Could not read request body.")
		return
	}

	url, err := h.svc.StoreRaw(r.Context(), body)
	if err != nil {
		if errors.Is(err, ErrStorageNotConfigured) {
			response.InternalError(w, "Storage not configured.")
			return
		}
		response.InternalError(w, "Upload failed.")
		return
	}
	response.JSON(w, http.StatusOK, response.URLBody{URL: url})
}

// Delete godoc
//
//	@Summary		Delete a stored result
//	@Description	Deletes the object identified by a previously issued public
//	@Description	URL. Any caller holding the URL may delete it; the URL is
//	@Description	the only capability (no ownership is modeled).
//	@Tags			images
//	@Produce		plain
//	@Param			url	query	string	true	"public URL of the stored object"
//	@Success		200	{string}	string	"Deleted"
//	@Failure		400	{string}	string	"Missing URL"
//	@Failure		500	{string}	string
//	@Router			/delete [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		response.Text(w, http.StatusBadRequest, "Missing URL")
		return
	}
	if err := validate.Struct(deleteRequest{URL: rawURL}); err != nil {
		response.Text(w, http.StatusBadRequest, "Invalid URL")
		return
	}

	if err := h.svc.Delete(r.Context(), rawURL); err != nil {
		switch {
		case errors.Is(err, storage.ErrForeignURL):
			response.Text(w, http.StatusBadRequest, "Invalid URL")
		case errors.Is(err, ErrStorageNotConfigured):
			response.Text(w, http.StatusInternalServerError, "Storage not configured.")
		default:
			response.Text(w, http.StatusInternalServerError, "Delete failed")
		}
		return
	}
	response.Text(w, http.StatusOK, "Deleted")
}

// sizeLimitMessage is the user-facing rejection for uploads over the cap.
func (h *Handler) sizeLimitMessage() string {
	return fmt.Sprintf("Image must be <= %dMB.", h.cfg.MaxUploadBytes>>20)
}

// writeProcessError maps pipeline failures to responses: adapter failures
// surface their first reported title plus full detail; everything else
// (transform, store) collapses to a generic processing error.
func (h *Handler) writeProcessError(w http.ResponseWriter, err error) {
	var apiErr *removebg.Error
	switch {
	case errors.As(err, &apiErr):
		response.ErrorDetails(w, http.StatusInternalServerError, apiErr.Title(), apiErr.Errors)
	case errors.Is(err, ErrStorageNotConfigured):
		response.InternalError(w, "Storage not configured.")
	default:
		response.InternalError(w, "Image processing failed.")
	}
}
