package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		AnkiConnect
		Audit
		Global
		Database
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	AnkiConnect struct {
		URL            string
		DeckName       string
		ModelName      string
		FrontField     string // Note type field receiving the book title
		BackField      string // Note type field receiving the note body
		AllowDuplicate bool
		DuplicateScope string // "deck" or "collection"
		Timeout        time.Duration
	}
	Audit struct {
		Dir             string // Directory for JSON snapshots of parsed notes, disabled when empty
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// AnkiConnect defaults match a French Anki install with the "Basique" note type
	v.SetDefault("ankiconnect_url", DefaultAnkiConnectURL)
	v.SetDefault("ankiconnect_deck", "Kindle")
	v.SetDefault("ankiconnect_model", "Basique")
	v.SetDefault("ankiconnect_front_field", "Recto")
	v.SetDefault("ankiconnect_back_field", "Verso")
	v.SetDefault("ankiconnect_allow_duplicate", true)
	v.SetDefault("ankiconnect_duplicate_scope", "deck")
	v.SetDefault("ankiconnect_timeout", "30s")

	// Audit defaults
	v.SetDefault("audit_dir", "")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		AnkiConnect: AnkiConnect{
			URL:            v.GetString("ANKICONNECT_URL"),
			DeckName:       v.GetString("ANKICONNECT_DECK"),
			ModelName:      v.GetString("ANKICONNECT_MODEL"),
			FrontField:     v.GetString("ANKICONNECT_FRONT_FIELD"),
			BackField:      v.GetString("ANKICONNECT_BACK_FIELD"),
			AllowDuplicate: v.GetBool("ANKICONNECT_ALLOW_DUPLICATE"),
			DuplicateScope: v.GetString("ANKICONNECT_DUPLICATE_SCOPE"),
			Timeout:        v.GetDuration("ANKICONNECT_TIMEOUT"),
		},
		Audit: Audit{
			Dir:             v.GetString("AUDIT_DIR"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
