package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"microfin-backend/internal/service"
	"microfin-backend/internal/storage"
)

// DocumentHandler serves customer document upload and download.
type DocumentHandler struct {
	customers service.CustomerService
	documents *storage.DocumentStore
}

func NewDocumentHandler(customers service.CustomerService, documents *storage.DocumentStore) *DocumentHandler {
	return &DocumentHandler{customers: customers, documents: documents}
}

type documentListResponse struct {
	Documents []string `json:"documents"`
	Total     int      `json:"total"`
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["id"]
	if _, err := h.customers.Get(r.Context(), customerID); err != nil {
		writeServiceError(w, err)
		return
	}

	names, err := h.documents.List(customerID)
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentListResponse{Documents: names, Total: len(names)})
}

type documentUploadResponse struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID := vars["id"]
	if _, err := h.customers.Get(r.Context(), customerID); err != nil {
		writeServiceError(w, err)
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'document' is required")
		return
	}
	defer file.Close()

	size, err := h.documents.Save(customerID, header.Filename, file)
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, documentUploadResponse{Name: header.Filename, Size: size})
}

func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	f, err := h.documents.Open(vars["id"], name)
	if err != nil {
		writeDocumentError(w, err)
		return
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	io.Copy(w, f)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.documents.Delete(vars["id"], vars["name"]); err != nil {
		writeDocumentError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeDocumentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrFileNotFound):
		writeError(w, http.StatusNotFound, "document not found")
	case errors.Is(err, storage.ErrInvalidFileName):
		writeError(w, http.StatusBadRequest, "invalid document name")
	case errors.Is(err, storage.ErrFileTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "document too large")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
