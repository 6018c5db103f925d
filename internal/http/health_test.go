package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/clippings/internal/database"
	"github.com/mrlokans/clippings/internal/entities"
)

// fakeAnki records the notes it receives and answers like AnkiConnect.
type fakeAnki struct {
	received   []entities.Note
	created    int
	addErr     error
	version    int
	versionErr error
}

func (f *fakeAnki) AddNotes(_ context.Context, notes []entities.Note) (int, error) {
	f.received = append(f.received, notes...)
	if f.addErr != nil {
		return f.created, f.addErr
	}
	return len(notes), nil
}

func (f *fakeAnki) Version(context.Context) (int, error) {
	return f.version, f.versionErr
}

func setupHealthTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func getHealth(t *testing.T, controller *HealthController) (int, HealthResponse) {
	t.Helper()

	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database and anki are reachable", func(t *testing.T) {
		db := setupHealthTestDB(t)
		controller := NewHealthController(db, &fakeAnki{version: 6}, nil, "1.0.0")

		code, response := getHealth(t, controller)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "ok (api v6)", response.Checks["ankiconnect"])
		assert.Contains(t, response.Time, "T")
	})

	t.Run("reports not configured dependencies", func(t *testing.T) {
		controller := NewHealthController(nil, nil, nil, "1.0.0")

		code, response := getHealth(t, controller)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "not configured", response.Checks["database"])
		assert.Equal(t, "not configured", response.Checks["ankiconnect"])
	})

	t.Run("returns degraded when anki is unreachable", func(t *testing.T) {
		db := setupHealthTestDB(t)
		controller := NewHealthController(db, &fakeAnki{versionErr: errors.New("connection refused")}, nil, "1.0.0")

		code, response := getHealth(t, controller)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "degraded", response.Status)
		assert.Contains(t, response.Checks["ankiconnect"], "connection refused")
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db, err := database.NewDatabase(filepath.Join(t.TempDir(), "closed.db"))
		require.NoError(t, err)
		require.NoError(t, db.Close())

		controller := NewHealthController(db, &fakeAnki{versionErr: errors.New("down")}, nil, "1.0.0")

		code, response := getHealth(t, controller)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})
}

type fakeCleanupSchedule struct {
	running bool
	next    *time.Time
}

func (f *fakeCleanupSchedule) IsRunning() bool { return f.running }
func (f *fakeCleanupSchedule) GetNextRunTime() *time.Time { return f.next }

func TestHealthController_AuditCleanup(t *testing.T) {
	next := time.Date(2026, 10, 20, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		cleanup CleanupSchedule
		want    string
	}{
		{name: "not configured", cleanup: nil, want: "not configured"},
		{name: "stopped", cleanup: &fakeCleanupSchedule{}, want: "stopped"},
		{name: "scheduled", cleanup: &fakeCleanupSchedule{running: true, next: &next}, want: "next run at 2026-10-20T03:00:00Z"},
		{name: "no entry", cleanup: &fakeCleanupSchedule{running: true}, want: "not scheduled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, response := getHealth(t, NewHealthController(nil, nil, tt.cleanup, "1.0.0"))

			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "healthy", response.Status)
			assert.Equal(t, tt.want, response.Checks["audit_cleanup"])
		})
	}
}

func TestNewHealthController(t *testing.T) {
	controller := NewHealthController(nil, nil, nil, "")

	assert.NotNil(t, controller)
	assert.Nil(t, controller.db)
	assert.Nil(t, controller.anki)
	assert.Equal(t, "", controller.version)
}
