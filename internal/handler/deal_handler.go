package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Zakaria-Tajer/fx/internal/metrics"
	"github.com/Zakaria-Tajer/fx/internal/model"
	"github.com/Zakaria-Tajer/fx/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// uploadField is the multipart form field holding the import file.
const uploadField = "file"

// multipartMemory bounds how much of a multipart body is buffered in memory.
const multipartMemory = 4 << 20

// DealHandler handles deal-related HTTP requests.
type DealHandler struct {
	imports        service.ImportService
	deals          service.DealService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewDealHandler creates a new deal handler.
func NewDealHandler(
	imports service.ImportService,
	deals service.DealService,
	maxUploadBytes int64,
	logger zerolog.Logger,
) *DealHandler {
	return &DealHandler{
		imports:        imports,
		deals:          deals,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("handler", "deal").Logger(),
	}
}

// Import handles POST /api/deals/import requests.
func (h *DealHandler) Import(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, model.ErrCodeFileTooLarge, "file exceeds upload limit", h.logger)
			return
		}
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingFile, "multipart form with a file field is required", h.logger)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingFile, "file is required", h.logger)
		return
	}
	defer file.Close()

	result, err := h.imports.Import(r.Context(), model.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	metrics.ObserveImport(result, err, time.Since(start))

	if err != nil {
		var domainErr *model.DomainError
		if model.IsBatchRejection(err) && errors.As(err, &domainErr) {
			writeError(w, r, http.StatusBadRequest, domainErr.Code, domainErr.Error(), h.logger)
			return
		}
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("import failed")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to import deals", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetByDealID handles GET /api/deals/{dealId} requests.
func (h *DealHandler) GetByDealID(w http.ResponseWriter, r *http.Request) {
	dealID := mux.Vars(r)["dealId"]
	if dealID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeDealIDRequired, model.ErrDealIDRequired.Message, h.logger)
		return
	}

	deal, err := h.deals.GetByDealID(r.Context(), dealID)
	if err != nil {
		if errors.Is(err, model.ErrDealNotFound) {
			writeError(w, r, http.StatusNotFound, model.ErrCodeDealNotFound, model.ErrDealNotFound.Message, h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve deal", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, deal)
}
