package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/molscope/molscope/internal/application/viewer"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/pkg/errors"
)

// StructureHandler serves the structure API: uploads, examples, ad-hoc
// summaries, and upload history.
type StructureHandler struct {
	svc           *viewer.Service
	logger        logging.Logger
	maxUploadSize int64
}

// NewStructureHandler builds the handler.
func NewStructureHandler(svc *viewer.Service, log logging.Logger, maxUploadSize int64) *StructureHandler {
	return &StructureHandler{svc: svc, logger: log, maxUploadSize: maxUploadSize}
}

// Upload handles POST /api/v1/structures/upload. The structure file is the
// multipart form field "file".
func (h *StructureHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, errors.New(errors.CodeNoFileSelected, "no file selected"))
		return
	}
	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		respondError(c, errors.Newf(errors.CodeStructureTooLarge,
			"file exceeds the %d byte upload limit", h.maxUploadSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, errors.Wrap(err, errors.CodeBadRequest, "failed to open uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, errors.Wrap(err, errors.CodeBadRequest, "failed to read uploaded file"))
		return
	}

	payload, err := h.svc.Ingest(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// ListExamples handles GET /api/v1/structures/examples.
func (h *StructureHandler) ListExamples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"examples": h.svc.Examples()})
}

// GetExample handles GET /api/v1/structures/examples/:name.
func (h *StructureHandler) GetExample(c *gin.Context) {
	payload, err := h.svc.LoadExample(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// Summarize handles POST /api/v1/structures/summarize: the raw request body
// is structure text, the response is the summary counts only.
func (h *StructureHandler) Summarize(c *gin.Context) {
	var body io.Reader = c.Request.Body
	if h.maxUploadSize > 0 {
		body = io.LimitReader(body, h.maxUploadSize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		respondError(c, errors.Wrap(err, errors.CodeBadRequest, "failed to read request body"))
		return
	}
	if h.maxUploadSize > 0 && int64(len(data)) > h.maxUploadSize {
		respondError(c, errors.Newf(errors.CodeStructureTooLarge,
			"body exceeds the %d byte limit", h.maxUploadSize))
		return
	}

	c.JSON(http.StatusOK, h.svc.Summarize(string(data)))
}

// History handles GET /api/v1/structures/history?limit=N.
func (h *StructureHandler) History(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	records, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load upload history", logging.Err(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploads": records})
}
