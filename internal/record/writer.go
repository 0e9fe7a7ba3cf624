package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"synthcall/internal/config"
)

// MetaDirName is the sibling directory holding the run's effective
// configuration and record documentation.
const MetaDirName = "_meta"

// Write persists one record as indented JSON under out/<date>/<call_id>.json
// and returns the file path.
func Write(outDir string, rec *CallRecord) (string, error) {
	dayDir := filepath.Join(outDir, rec.Date)
	if err := os.MkdirAll(dayDir, 0755); err != nil {
		return "", fmt.Errorf("create day directory %q: %w", dayDir, err)
	}
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record %s: %w", rec.CallID, err)
	}
	path := filepath.Join(dayDir, rec.CallID+".json")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", fmt.Errorf("write record %s: %w", rec.CallID, err)
	}
	return path, nil
}

// WriteMeta writes the run's metadata directory once per run: the effective
// merged configuration, the record schema, and the field documentation.
func WriteMeta(outDir string, cfg *config.Config) error {
	metaDir := filepath.Join(outDir, MetaDirName)
	if err := os.MkdirAll(metaDir, 0755); err != nil {
		return fmt.Errorf("create meta directory %q: %w", metaDir, err)
	}

	effective, err := cfg.JSON()
	if err != nil {
		return fmt.Errorf("serialize effective config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(metaDir, "config_effective.json"), effective, 0644); err != nil {
		return err
	}

	schemaJSON, err := json.MarshalIndent(CallSchema, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize call schema: %w", err)
	}
	if err := os.WriteFile(filepath.Join(metaDir, "schema_call.json"), schemaJSON, 0644); err != nil {
		return err
	}

	descJSON, err := json.MarshalIndent(FieldDescriptions, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize field descriptions: %w", err)
	}
	return os.WriteFile(filepath.Join(metaDir, "field_descriptions.json"), descJSON, 0644)
}
