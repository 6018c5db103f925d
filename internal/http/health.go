package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/clippings/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// CleanupSchedule exposes the state of the audit retention job.
type CleanupSchedule interface {
	IsRunning() bool
	GetNextRunTime() *time.Time
}

type HealthController struct {
	db      *database.Database
	anki    AnkiClient
	cleanup CleanupSchedule
	version string
}

func NewHealthController(db *database.Database, anki AnkiClient, cleanup CleanupSchedule, version string) *HealthController {
	return &HealthController{
		db:      db,
		anki:    anki,
		cleanup: cleanup,
		version: version,
	}
}

// Status reports database and AnkiConnect reachability. A broken database
// makes the service unhealthy; an unreachable Anki only degrades it, since
// the CSV and JSON outputs keep working.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	if h.anki != nil {
		version, err := h.anki.Version(c.Request.Context())
		if err != nil {
			checks["ankiconnect"] = "error: " + err.Error()
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			checks["ankiconnect"] = "ok (api v" + strconv.Itoa(version) + ")"
		}
	} else {
		checks["ankiconnect"] = "not configured"
	}

	// informational only
	switch {
	case h.cleanup == nil:
		checks["audit_cleanup"] = "not configured"
	case !h.cleanup.IsRunning():
		checks["audit_cleanup"] = "stopped"
	default:
		if next := h.cleanup.GetNextRunTime(); next != nil {
			checks["audit_cleanup"] = "next run at " + next.Format(time.RFC3339)
		} else {
			checks["audit_cleanup"] = "not scheduled"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
