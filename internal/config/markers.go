package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mrlokans/clippings/internal/clippings"
)

var markerKeys = []string{"bookmark", "highlight", "note"}

// LoadMarkers builds the clippings markers from the built-in French defaults,
// overridden by the "parser" table of the file at path when path is not
// empty. The file format follows its extension (toml, yaml, json, ...).
//
//	[parser]
//	bookmark = "- Your Bookmark"
//	highlight = "- Your Highlight"
//	note = "- Your Note"
//
// Keys missing from the file keep their default.
func LoadMarkers(path string) (*clippings.Markers, error) {
	v := viper.New()
	v.SetDefault("parser.bookmark", clippings.DefaultBookmarkPrefix)
	v.SetDefault("parser.highlight", clippings.DefaultHighlightPrefix)
	v.SetDefault("parser.note", clippings.DefaultNotePrefix)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ConfigError{Path: path, Err: err}
		}
		if err := validateMarkers(v); err != nil {
			return nil, &ConfigError{Path: path, Err: err}
		}
	}

	return clippings.NewMarkers(
		v.GetString("parser.bookmark"),
		v.GetString("parser.highlight"),
		v.GetString("parser.note"),
	), nil
}

func validateMarkers(v *viper.Viper) error {
	if !v.InConfig("parser") {
		return nil
	}
	if _, ok := v.Get("parser").(map[string]interface{}); !ok {
		return fmt.Errorf("%w: \"parser\" must be a table", ErrInvalidStructure)
	}
	for _, key := range markerKeys {
		if !v.InConfig("parser." + key) {
			continue
		}
		if _, ok := v.Get("parser." + key).(string); !ok {
			return fmt.Errorf("%w: \"parser.%s\" must be a string", ErrInvalidStructure, key)
		}
	}
	return nil
}
