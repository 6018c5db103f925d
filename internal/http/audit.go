package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/clippings/internal/audit"
	"github.com/mrlokans/clippings/internal/entities"
)

type AuditController struct {
	auditService *audit.Service
}

func NewAuditController(auditService *audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// GetAuditEvents returns paginated audit events as JSON, newest first.
// GET /api/audit?type=parse&limit=50&offset=0
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, offset := parsePagination(c)
	eventType := c.Query("type")

	var events []entities.AuditEvent
	var total int64
	var err error

	if eventType != "" {
		if !isKnownEventType(eventType) {
			respondBadRequest(c, "unknown event type: "+eventType)
			return
		}
		events, total, err = ac.auditService.GetEventsByType(entities.AuditEventType(eventType), limit, offset)
	} else {
		events, total, err = ac.auditService.GetEvents(limit, offset)
	}

	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(events, total, limit, offset))
}

// GetAuditEvent returns a single audit event.
// GET /api/audit/:id
func (ac *AuditController) GetAuditEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := ac.auditService.GetEvent(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "audit event")
			return
		}
		respondInternalError(c, err, "get audit event")
		return
	}

	c.JSON(http.StatusOK, event)
}

func isKnownEventType(eventType string) bool {
	switch entities.AuditEventType(eventType) {
	case entities.AuditEventParse, entities.AuditEventExport, entities.AuditEventCleanup:
		return true
	}
	return false
}
