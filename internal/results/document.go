package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a results document (results.yaml or results.json, per spec §6) from path,
// dispatching on its extension. Unknown top-level record fields survive the round trip via
// Record.Extra when the document is YAML; the JSON encoder/decoder pair only knows the typed
// fields, so a JSON document loses genuinely unknown fields on read-modify-write (documented
// trade-off; results.yaml is the format every other interface in this core treats as
// canonical).
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results document %s: %w", path, err)
	}

	var records []Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing results document %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing results document %s: %w", path, err)
		}
	}
	return records, nil
}

// Save writes records to path as YAML or JSON, dispatching on its extension (defaulting to
// YAML for any other/no extension).
func Save(path string, records []Record) error {
	var out []byte
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		out, err = json.MarshalIndent(records, "", "  ")
	default:
		out, err = yaml.Marshal(records)
	}
	if err != nil {
		return fmt.Errorf("encoding results document: %w", err)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing results document %s: %w", path, err)
	}
	return nil
}
