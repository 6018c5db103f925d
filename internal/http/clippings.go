package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/clippings/internal/ankiconnect"
	"github.com/mrlokans/clippings/internal/audit"
	"github.com/mrlokans/clippings/internal/clippings"
	"github.com/mrlokans/clippings/internal/entities"
	"github.com/mrlokans/clippings/internal/exporters"
	"github.com/mrlokans/clippings/internal/tasks"
)

const (
	maxClippingsFileSize = 10 * 1024 * 1024 // 10 MB
)

// Output formats accepted by the sink query parameter.
const (
	outputJSON = "json"
	outputCSV  = "csv"
	outputAnki = "anki"
)

type ClippingsController struct {
	markers      *clippings.Markers
	anki         AnkiClient
	recorder     exporters.NoteRecorder
	auditService *audit.Service
	auditor      *audit.Auditor
	taskQueue    TaskQueue
}

func NewClippingsController(cfg RouterConfig) *ClippingsController {
	controller := &ClippingsController{
		markers:      cfg.Markers,
		anki:         cfg.AnkiClient,
		auditService: cfg.AuditService,
		auditor:      cfg.Auditor,
		taskQueue:    cfg.TaskQueue,
	}
	if cfg.Database != nil {
		controller.recorder = cfg.Database
	}
	return controller
}

type ParseResponse struct {
	Notes   entities.NoteCollection `json:"notes"`
	Blocks  int                     `json:"blocks"`
	Skipped int                     `json:"skipped"`
}

type ExportResponse struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error,omitempty"`
	Code    string                 `json:"code,omitempty"`
	Result  exporters.ExportResult `json:"result"`
	Skipped int                    `json:"skipped"`
}

// Parse turns an uploaded My Clippings.txt into notes and routes them to
// the sink named by the sink query parameter: json (default), csv or anki.
// POST /api/clippings/parse
func (cc *ClippingsController) Parse(c *gin.Context) {
	output := c.DefaultQuery("sink", outputJSON)
	switch output {
	case outputJSON, outputCSV, outputAnki:
	default:
		respondBadRequest(c, "unknown sink: "+output)
		return
	}
	if output == outputAnki && cc.anki == nil {
		respondError(c, http.StatusServiceUnavailable, "anki_unavailable", "AnkiConnect is not configured")
		return
	}

	file, header, err := c.Request.FormFile("clippings_file")
	if err != nil {
		respondBadRequest(c, "Clippings file not provided")
		return
	}
	defer file.Close()

	if header.Size > maxClippingsFileSize {
		respondFileTooLarge(c)
		return
	}

	// one byte past the limit tells an oversized stream from one that fits
	limited := &io.LimitedReader{R: file, N: maxClippingsFileSize + 1}
	parser := clippings.NewParser(cc.markers)
	result, err := parser.Parse(limited)
	if limited.N == 0 {
		respondFileTooLarge(c)
		return
	}
	if cc.auditService != nil {
		if err != nil {
			cc.auditService.LogParse(header.Filename, 0, 0, 0, err)
		} else {
			cc.auditService.LogParse(header.Filename, result.Blocks, result.Skipped, len(result.Notes), nil)
		}
	}
	if err != nil {
		respondBadRequest(c, fmt.Sprintf("Failed to parse clippings: %v", err))
		return
	}

	cc.saveSnapshot(header.Filename, result)

	switch output {
	case outputCSV:
		cc.exportCSV(c, header.Filename, result)
	case outputAnki:
		cc.exportAnki(c, header.Filename, result)
	default:
		c.JSON(http.StatusOK, ParseResponse{
			Notes:   result.Notes,
			Blocks:  result.Blocks,
			Skipped: result.Skipped,
		})
	}
}

func respondFileTooLarge(c *gin.Context) {
	respondBadRequest(c, fmt.Sprintf("File too large (max %d MB)", maxClippingsFileSize/(1024*1024)))
}

func (cc *ClippingsController) saveSnapshot(sourceFile string, result *clippings.ParseResult) {
	if cc.auditor == nil {
		return
	}

	if cc.taskQueue != nil {
		_, err := cc.taskQueue.Enqueue(tasks.SaveSnapshotTask{
			SourceFile: sourceFile,
			Blocks:     result.Blocks,
			Skipped:    result.Skipped,
			Notes:      result.Notes,
		})
		if err == nil {
			return
		}
		log.Printf("Failed to queue snapshot of %s, saving inline: %v", sourceFile, err)
	}

	if _, err := cc.auditor.SaveSnapshot(sourceFile, result.Blocks, result.Skipped, result.Notes); err != nil {
		log.Printf("Failed to save snapshot of %s: %v", sourceFile, err)
	}
}

func (cc *ClippingsController) exportCSV(c *gin.Context, sourceFile string, result *clippings.ParseResult) {
	var buf bytes.Buffer
	exportResult, err := cc.exporter(exporters.NewCSVExporter(&buf), sourceFile).Export(c.Request.Context(), result.Notes)
	cc.logExport(sourceFile, exportResult, err)
	if err != nil {
		respondInternalError(c, err, "write CSV")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="clippings.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (cc *ClippingsController) exportAnki(c *gin.Context, sourceFile string, result *clippings.ParseResult) {
	exporter := cc.exporter(exporters.NewAnkiConnectExporter(cc.anki), sourceFile)
	exportResult, err := exporter.Export(c.Request.Context(), result.Notes)
	cc.logExport(sourceFile, exportResult, err)

	if err != nil {
		c.JSON(http.StatusBadGateway, ExportResponse{
			Success: false,
			Error:   err.Error(),
			Code:    exportErrorCode(err),
			Result:  exportResult,
			Skipped: result.Skipped,
		})
		return
	}

	c.JSON(http.StatusOK, ExportResponse{
		Success: true,
		Result:  exportResult,
		Skipped: result.Skipped,
	})
}

// exporter wraps next so delivered notes land in the history store when one
// is configured.
func (cc *ClippingsController) exporter(next exporters.NoteExporter, sourceFile string) exporters.NoteExporter {
	if cc.recorder == nil {
		return next
	}
	return exporters.NewRecordingExporter(next, cc.recorder, sourceFile)
}

func (cc *ClippingsController) logExport(sourceFile string, result exporters.ExportResult, err error) {
	if cc.auditService == nil {
		return
	}
	if result.Sink == "" {
		result.Sink = "unknown"
	}
	cc.auditService.LogExport(result.Sink, sourceFile, result.NotesProcessed, result.NotesFailed, err)
}

func exportErrorCode(err error) string {
	var apiErr *ankiconnect.APIError
	var serverErr *ankiconnect.ServerError
	switch {
	case errors.Is(err, ankiconnect.ErrPartialFailure):
		return "partial_failure"
	case errors.As(err, &apiErr):
		return "anki_error"
	case errors.As(err, &serverErr):
		return "anki_server_error"
	default:
		return "anki_unreachable"
	}
}
