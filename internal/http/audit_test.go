package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/clippings/internal/entities"
)

func setupAuditRouter(t *testing.T) (*gin.Engine, []uint) {
	t.Helper()

	auditService, _ := setupAuditService(t)

	var ids []uint
	for i := 0; i < 3; i++ {
		event := &entities.AuditEvent{
			EventType:   entities.AuditEventParse,
			Action:      "clippings_parse",
			Description: fmt.Sprintf("parse %d", i),
			Status:      entities.AuditStatusSuccess,
		}
		require.NoError(t, auditService.Log(event))
		ids = append(ids, event.ID)
	}
	require.NoError(t, auditService.Log(&entities.AuditEvent{
		EventType: entities.AuditEventExport,
		Action:    "csv_export",
		Status:    entities.AuditStatusSuccess,
	}))

	controller := NewAuditController(auditService)
	router := gin.New()
	router.GET("/api/audit", controller.GetAuditEvents)
	router.GET("/api/audit/:id", controller.GetAuditEvent)
	return router, ids
}

func TestAuditController_GetAuditEvents(t *testing.T) {
	router, _ := setupAuditRouter(t)

	tests := []struct {
		name        string
		query       string
		wantStatus  int
		wantTotal   int64
		wantLen     int
		wantHasMore bool
	}{
		{name: "all events", query: "", wantStatus: http.StatusOK, wantTotal: 4, wantLen: 4},
		{name: "paginated", query: "?limit=2", wantStatus: http.StatusOK, wantTotal: 4, wantLen: 2, wantHasMore: true},
		{name: "filtered by type", query: "?type=parse", wantStatus: http.StatusOK, wantTotal: 3, wantLen: 3},
		{name: "unknown type", query: "?type=login", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/api/audit"+tt.query, nil)
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var response struct {
				Data    []entities.AuditEvent `json:"data"`
				Total   int64                 `json:"total"`
				HasMore bool                  `json:"has_more"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantTotal, response.Total)
			assert.Len(t, response.Data, tt.wantLen)
			assert.Equal(t, tt.wantHasMore, response.HasMore)
		})
	}
}

func TestAuditController_GetAuditEvent(t *testing.T) {
	router, ids := setupAuditRouter(t)

	t.Run("existing event", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", fmt.Sprintf("/api/audit/%d", ids[1]), nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var event entities.AuditEvent
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
		assert.Equal(t, "parse 1", event.Description)
	})

	t.Run("missing event", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/audit/9999", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/audit/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
