package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v4"
	"github.com/ninja-software/terror/v2"
	"github.com/rs/zerolog"
)

// FilesController holds handlers for the public blob area
type FilesController struct {
	Log   *zerolog.Logger
	Blobs BlobStore
}

// FileRouter returns a new router for serving stored files
func FileRouter(log *zerolog.Logger, blobs BlobStore) chi.Router {
	c := &FilesController{
		Log:   log,
		Blobs: blobs,
	}

	r := chi.NewRouter()
	r.Get("/*", WithError(c.FileGet))

	return r
}

// FileGet retrieves a stored file by its full path (eg. products/pen-....jpg)
func (c *FilesController) FileGet(w http.ResponseWriter, r *http.Request) (int, error) {
	defer r.Body.Close()

	filePath := chi.URLParam(r, "*")
	if filePath == "" {
		return http.StatusBadRequest, terror.Error(terror.ErrInvalidInput, "no file path provided")
	}

	blob, err := c.Blobs.Get(r.Context(), filePath)
	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, terror.Error(err, "file not found")
	}
	if err != nil {
		return http.StatusInternalServerError, terror.Error(err, "could not get file")
	}

	// only the public blob area is served, there is no auth layer
	if !blob.Public {
		return http.StatusNotFound, terror.Error(fmt.Errorf("blob %s is not public", filePath), "file not found")
	}

	// tell the browser the returned content should be downloaded/inline
	disposition := "attachment"
	isViewDisposition := r.URL.Query().Get("view")
	if isViewDisposition == "true" {
		disposition = "inline"
	}

	if blob.MimeType != "" && blob.MimeType != "unknown" {
		w.Header().Add("Content-Type", blob.MimeType)
	}
	w.Header().Add("Content-Disposition", fmt.Sprintf("%s;filename=%s", disposition, blob.FileName))
	_, err = w.Write(blob.File)
	if err != nil {
		return http.StatusInternalServerError, err
	}

	return http.StatusOK, nil
}
