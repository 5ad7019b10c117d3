package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
	"github.com/joseph-ayodele/resumes-tracker/internal/llm"
	"github.com/joseph-ayodele/resumes-tracker/internal/pipeline"
	"github.com/joseph-ayodele/resumes-tracker/internal/records"
	"github.com/joseph-ayodele/resumes-tracker/internal/repository"
)

// HeaderDatabaseID carries the destination database id.
const HeaderDatabaseID = "X-Database-ID"

type Handler struct {
	deps Deps
	log  *slog.Logger
}

type connectRequest struct {
	Token      string `json:"token"`
	DatabaseID string `json:"database_id"`
	Reconnect  bool   `json:"reconnect"`
}

type batchResponse struct {
	RunID     string                `json:"run_id"`
	Total     int                   `json:"total"`
	Succeeded int                   `json:"succeeded"`
	Summary   string                `json:"summary"`
	Results   []entity.RecordResult `json:"results"`
}

func newBatchResponse(res entity.BatchResult) batchResponse {
	return batchResponse{
		RunID:     res.RunID,
		Total:     res.Total(),
		Succeeded: res.Succeeded(),
		Summary:   pipeline.Summary(res),
		Results:   res.Results,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// credentials resolves token and database id from the request, falling back to defaults.
func (h *Handler) credentials(c *gin.Context, token, databaseID string) (string, string, error) {
	if token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	}
	if databaseID == "" {
		databaseID = strings.TrimSpace(c.GetHeader(HeaderDatabaseID))
	}
	if token == "" {
		token = h.deps.Defaults.Credential
	}
	if databaseID == "" {
		databaseID = h.deps.Defaults.DatabaseID
	}
	v := common.NewValidator().
		Field("token", token, common.Required).
		Field("database_id", databaseID, common.Required)
	return token, databaseID, v.Error()
}

func (h *Handler) Connect(c *gin.Context) {
	var req connectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
			return
		}
	}
	token, dbID, err := h.credentials(c, req.Token, req.DatabaseID)
	if err != nil {
		h.fail(c, err)
		return
	}

	connect := h.deps.Service.Connect
	if req.Reconnect {
		connect = h.deps.Service.Reconnect
	}
	schema, err := connect(c.Request.Context(), token, dbID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"connected":  true,
		"properties": schema.Kinds(),
	})
}

// UploadRecords accepts one record or a list, as JSON or YAML (by Content-Type).
// With ?dry_run=true the mapped properties are returned and nothing is created.
func (h *Handler) UploadRecords(c *gin.Context) {
	token, dbID, err := h.credentials(c, "", "")
	if err != nil {
		h.fail(c, err)
		return
	}

	format := records.FormatJSON
	if strings.Contains(c.ContentType(), "yaml") {
		format = records.FormatYAML
	}
	recs, err := records.Read(c.Request.Body, format)
	if err != nil {
		h.fail(c, err)
		return
	}

	if dry, _ := strconv.ParseBool(c.Query("dry_run")); dry {
		previews, err := h.deps.Service.Preview(c.Request.Context(), recs, token, dbID)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"previews": previews})
		return
	}

	res, err := h.deps.Service.UploadRecords(c.Request.Context(), recs, token, dbID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newBatchResponse(res))
}

// ProcessDocument takes a multipart "file" field, extracts a record and uploads it.
func (h *Handler) ProcessDocument(c *gin.Context) {
	if h.deps.Processor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "document extraction is not configured"})
		return
	}
	token, dbID, err := h.credentials(c, "", "")
	if err != nil {
		h.fail(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing multipart field 'file'"})
		return
	}
	maxMB := h.deps.Defaults.MaxDocumentMB
	if maxMB <= 0 {
		maxMB = constants.MaxDocumentMBDefault
	}
	if fh.Size > int64(maxMB)*1024*1024 {
		h.fail(c, fmt.Errorf("document exceeds %d MB: %w", maxMB, common.ErrInvalidInput))
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		h.fail(c, err)
		return
	}

	doc, err := llm.NewDocument(fh.Filename, data, maxMB)
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.deps.Processor.ProcessDocument(c.Request.Context(), doc, token, dbID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record": out.Record,
		"batch":  newBatchResponse(out.Batch),
	})
}

func (h *Handler) ListRuns(c *gin.Context) {
	if h.deps.Runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upload history is disabled"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.deps.Runs.ListRuns(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	if runs == nil {
		runs = []entity.UploadRun{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (h *Handler) GetRun(c *gin.Context) {
	if h.deps.Runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upload history is disabled"})
		return
	}
	run, err := h.deps.Runs.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *Handler) RunReport(c *gin.Context) {
	if h.deps.Runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upload history is disabled"})
		return
	}
	id := c.Param("id")
	b, err := h.deps.Export.ExportRunXLSX(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="run-%s.xlsx"`, id))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", b)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("http.handler.error", "path", c.FullPath(), "status", status, "error", err)
	} else {
		h.log.Warn("http.handler.rejected", "path", c.FullPath(), "status", status, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrConnection):
		return http.StatusBadGateway
	case errors.Is(err, common.ErrExtraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
