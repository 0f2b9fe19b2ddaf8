// Package testdata provides response fixtures for client tests.
// The JSON files follow responses captured from NamelessMC 2.x websites.
package testdata

import (
	"embed"
	"encoding/json"
	"testing"
)

// FS embeds all JSON fixture files.
//
//go:embed */*.json
var FS embed.FS

// LoadFixture reads and returns fixture content as string.
// The path is relative to the testdata directory (e.g., "users/info.json").
func LoadFixture(t *testing.T, path string) string {
	t.Helper()

	data, err := FS.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", path, err)
	}

	return string(data)
}

// LoadFixtureJSON reads a fixture and unmarshals it into v.
func LoadFixtureJSON(t *testing.T, path string, v any) {
	t.Helper()

	if err := json.Unmarshal([]byte(LoadFixture(t, path)), v); err != nil {
		t.Fatalf("failed to unmarshal fixture %s: %v", path, err)
	}
}
