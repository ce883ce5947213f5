package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/salesqa/callcheck/report"
)

// File names inside a session directory.
const (
	csvName    = "result_parsing.csv"
	jsonName   = "records.json"
	sqliteName = "report.db"
)

func mkSessionDir(outputsRoot string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	sid := "session_" + ts
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return sid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, records []report.ComplianceRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// persist writes the bundle in every requested format into a fresh
// outputs/session_<ts> directory and returns that directory.
func persist(ctx context.Context, outputsRoot string, formats []string, b *report.Bundle) (string, error) {
	_, dir, err := mkSessionDir(outputsRoot)
	if err != nil {
		return "", fmt.Errorf("creating session dir: %w", err)
	}

	for _, f := range formats {
		switch f {
		case "csv":
			err = writeCSV(filepath.Join(dir, csvName), b.Records)
		case "json":
			err = writeJSON(filepath.Join(dir, jsonName), b)
		case "sqlite":
			err = report.WriteSQLite(ctx, filepath.Join(dir, sqliteName), b)
		default:
			err = fmt.Errorf("unknown format")
		}
		if err != nil {
			return "", fmt.Errorf("writing %s report: %w", f, err)
		}
	}
	return dir, nil
}
