package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/shop/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// UploadField is the multipart field the image is read from.
const UploadField = "file"

// multipartOverhead is allowed on top of the file limit for boundaries and
// part headers.
const multipartOverhead = 64 << 10

type UploadHandler struct {
	UploadService *service.UploadService
}

// ServeHTTP handles POST /api/upload
//
//	@Summary		Upload an image
//	@Description	Stores a single image sent as multipart field "file" and returns the path it is served from.
//	@Tags			Upload
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file					true	"Image"
//	@Success		200		{object}	shopsdk.UploadResponse	"Stored path"
//	@Failure		400		{object}	shopsdk.ErrorResponse	"No file uploaded"
//	@Failure		401		{object}	shopsdk.ErrorResponse	"Invalid or missing session token"
//	@Failure		403		{object}	shopsdk.ErrorResponse	"Not an admin"
//	@Failure		413		{object}	shopsdk.ErrorResponse	"File too large"
//	@Router			/api/upload [post].
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.UploadService.Limit()+multipartOverhead)
	mr, err := r.MultipartReader()
	if err != nil {
		l.Warn("upload is not multipart", "err", err)
		shopsdk.ErrNoFileUploaded.WriteError(w)
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				shopsdk.ErrUploadTooLarge.WriteError(w)
				return
			}
			l.Warn("malformed multipart body", "err", err)
			shopsdk.ErrNoFileUploaded.WriteError(w)
			return
		}
		if part.FormName() != UploadField || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		up, err := h.UploadService.Save(r.Context(), part.FileName(), part)
		_ = part.Close()
		if err != nil {
			writeUploadError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, shopsdk.UploadResponse{Path: up.Path})
		return
	}

	shopsdk.ErrNoFileUploaded.WriteError(w)
}

func writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		shopsdk.ErrUploadTooLarge.WriteError(w)
		return
	}
	writeServiceError(w, r, err)
}
