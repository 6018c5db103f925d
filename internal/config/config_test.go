package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultAnkiConnectURL, cfg.AnkiConnect.URL)
	assert.Equal(t, "Kindle", cfg.AnkiConnect.DeckName)
	assert.Equal(t, "Basique", cfg.AnkiConnect.ModelName)
	assert.Equal(t, "Recto", cfg.AnkiConnect.FrontField)
	assert.Equal(t, "Verso", cfg.AnkiConnect.BackField)
	assert.True(t, cfg.AnkiConnect.AllowDuplicate)
	assert.Equal(t, "deck", cfg.AnkiConnect.DuplicateScope)
	assert.Equal(t, 30*time.Second, cfg.AnkiConnect.Timeout)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "", cfg.Audit.Dir)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, int32(8189), cfg.HTTP.Port)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("ANKICONNECT_URL", "http://anki.local:9000")
	t.Setenv("ANKICONNECT_DECK", "Books")
	t.Setenv("ANKICONNECT_ALLOW_DUPLICATE", "false")
	t.Setenv("ANKICONNECT_TIMEOUT", "5s")
	t.Setenv("PORT", "9999")
	t.Setenv("TASKS_ENABLED", "false")

	cfg := NewConfig()

	assert.Equal(t, "http://anki.local:9000", cfg.AnkiConnect.URL)
	assert.Equal(t, "Books", cfg.AnkiConnect.DeckName)
	assert.False(t, cfg.AnkiConnect.AllowDuplicate)
	assert.Equal(t, 5*time.Second, cfg.AnkiConnect.Timeout)
	assert.Equal(t, int32(9999), cfg.HTTP.Port)
	assert.False(t, cfg.Tasks.Enabled)
}
