package config

// Default paths and endpoints
const (
	// DefaultDatabasePath is the default path for the export history database
	DefaultDatabasePath = "./clippings.db"

	// DefaultAnkiConnectURL is where the AnkiConnect add-on listens by default
	DefaultAnkiConnectURL = "http://localhost:8765"
)
