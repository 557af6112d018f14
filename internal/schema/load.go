package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a registry override from a JSON file. An empty path returns
// the built-in registry.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: reading %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("schema: parsing %s: %w", path, err)
	}

	// Keyword tables may be omitted from an override that only changes forms.
	if len(f.HeaderKeywords) == 0 {
		f.HeaderKeywords = defaultFile.HeaderKeywords
	}
	if len(f.RepeatMarkers) == 0 {
		f.RepeatMarkers = defaultFile.RepeatMarkers
	}
	if len(f.StationAliases) == 0 {
		f.StationAliases = defaultFile.StationAliases
	}

	r, err := New(f)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	return r, nil
}
