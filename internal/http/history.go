package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/clippings/internal/entities"
	"github.com/mrlokans/clippings/internal/exporters"
)

// ExportHistory is the read side of the exported notes store.
type ExportHistory interface {
	GetExportedNotes(limit, offset int) ([]entities.ExportedNote, int64, error)
	CountExportedNotes(sink string) (int64, error)
}

type HistoryController struct {
	history ExportHistory
}

func NewHistoryController(history ExportHistory) *HistoryController {
	return &HistoryController{history: history}
}

// GetExportedNotes lists the notes delivered to any sink, newest first.
// GET /api/history
func (hc *HistoryController) GetExportedNotes(c *gin.Context) {
	limit, offset := parsePagination(c)

	notes, total, err := hc.history.GetExportedNotes(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list exported notes")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(notes, total, limit, offset))
}

// HistoryStats counts the delivered notes, overall and per sink.
type HistoryStats struct {
	Total  int64            `json:"total"`
	BySink map[string]int64 `json:"by_sink"`
}

// GetStats handles GET /api/history/stats
func (hc *HistoryController) GetStats(c *gin.Context) {
	total, err := hc.history.CountExportedNotes("")
	if err != nil {
		respondInternalError(c, err, "count exported notes")
		return
	}

	stats := HistoryStats{Total: total, BySink: make(map[string]int64)}
	for _, sink := range []string{exporters.SinkCSV, exporters.SinkAnkiConnect} {
		count, err := hc.history.CountExportedNotes(sink)
		if err != nil {
			respondInternalError(c, err, "count exported notes")
			return
		}
		stats.BySink[sink] = count
	}

	c.JSON(http.StatusOK, stats)
}
