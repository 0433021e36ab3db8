package api

import (
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"

	"github.com/twitterclone/twitter-api/internal/api/shared"
	"github.com/twitterclone/twitter-api/internal/domain"
)

// PostImage handles POST /tutorial/post-image with a multipart file field "image".
func (h *TutorialHandler) PostImage(w http.ResponseWriter, r *http.Request) {
	files, err := h.multipartFiles(r, "image")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	info, err := describeImage(files[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read image")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, info)
}

// PostImages handles POST /tutorial/post-images with one or more "images" files.
func (h *TutorialHandler) PostImages(w http.ResponseWriter, r *http.Request) {
	files, err := h.multipartFiles(r, "images")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	infos := make([]ImageInfo, 0, len(files))
	for _, fh := range files {
		info, err := describeImage(fh)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to read image")
			return
		}
		infos = append(infos, info)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, infos)
}

// multipartFiles parses the multipart body and returns the files under field.
func (h *TutorialHandler) multipartFiles(r *http.Request, field string) ([]*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(h.maxFormMemory); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidBody, err)
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, domain.NewValidationError(field, "is required", domain.ErrValidation)
	}
	return files, nil
}

// describeImage reads the whole upload to measure it.
func describeImage(fh *multipart.FileHeader) (ImageInfo, error) {
	f, err := fh.Open()
	if err != nil {
		return ImageInfo{}, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	n, err := io.Copy(io.Discard, f)
	if err != nil && !errors.Is(err, io.EOF) {
		return ImageInfo{}, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}

	return ImageInfo{
		Filename: fh.Filename,
		Format:   fh.Header.Get("Content-Type"),
		SizeKB:   math.Round(float64(n)/1024*100) / 100,
	}, nil
}
