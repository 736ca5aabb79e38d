package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FormatName tags the save format a manifest describes. The raw .cw body
// itself carries no version tag, so the manifest is the only place the
// format is named.
const FormatName = "crafti-world/1"

// Manifest is the JSON sidecar written next to every save.
type Manifest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Seed    uint64 `json:"seed"`
	Format  string `json:"format"`
	SavedAt string `json:"saved_at"`
}

const manifestSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["id", "name", "seed", "format", "saved_at"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"name": {"type": "string", "minLength": 1},
		"seed": {"type": "integer", "minimum": 0},
		"format": {"type": "string", "pattern": "^crafti-world/[0-9]+$"},
		"saved_at": {"type": "string"}
	}
}`

var compiledManifestSchema = jsonschema.MustCompileString("manifest.schema.json", manifestSchema)

func (s *Store) readManifest(name string) (*Manifest, error) {
	data, err := os.ReadFile(s.manifestPath(name))
	if err != nil {
		return nil, fmt.Errorf("read manifest for %s: %w", name, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest for %s: %w", name, err)
	}
	if err := compiledManifestSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate manifest for %s: %w", name, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest for %s: %w", name, err)
	}
	return &m, nil
}

func (s *Store) writeManifest(name string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest for %s: %w", name, err)
	}
	if err := atomicWrite(s.manifestPath(name), append(data, '\n')); err != nil {
		return fmt.Errorf("write manifest for %s: %w", name, err)
	}
	return nil
}

// ValidManifestName rejects save names that would escape the saves
// directory or collide with index files.
func ValidManifestName(name string) bool {
	if name == "" || name == "index" {
		return false
	}
	return !strings.ContainsAny(name, `/\.`)
}
