package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/store"
	"github.com/fansync/fansync/internal/ui"
	"github.com/natefinch/atomic"
)

// DocumentVersion is the only version this build can import.
const DocumentVersion = 1

// Document is the versioned curve-and-policy export format.
type Document struct {
	Version   int                   `json:"version"`
	Timestamp time.Time             `json:"timestamp"`
	Policies  []hwio.Policy         `json:"policies"`
	Curves    map[string]hwio.Curve `json:"curves"`
}

// CurveWriter replays imported curves. Satisfied by the sync
// controller.
type CurveWriter interface {
	SetCurve(ctx context.Context, c hwio.Curve) error
}

// Export snapshots the given stores into a version 1 document.
func Export(policies *store.PolicyStore, curves *store.CurveStore) Document {
	return Document{
		Version:   DocumentVersion,
		Timestamp: time.Now(),
		Policies:  policies.All(),
		Curves:    curves.Curves(),
	}
}

// WriteFile writes the document to the given path. The write is
// atomic, a crash never leaves a half-written export behind.
func WriteFile(path string, document Document) error {
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// ReadFile parses an export document from disk.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	var document Document
	if err := json.Unmarshal(data, &document); err != nil {
		return Document{}, fmt.Errorf("malformed export document: %w", err)
	}
	return document, nil
}

// Import replays every curve entry of the document through the given
// writer. Entries whose key disagrees with the embedded curve, or
// that the writer rejects, are skipped with a warning instead of
// aborting the whole import. Returns the number of curves written.
func Import(ctx context.Context, writer CurveWriter, document Document) (int, error) {
	if document.Version != DocumentVersion {
		return 0, fmt.Errorf("unsupported export document version: %d", document.Version)
	}

	imported := 0
	for key, c := range document.Curves {
		header, mode, err := hwio.ParseCurveKey(key)
		if err != nil {
			ui.Warning("Skipping curve entry '%s': %v", key, err)
			continue
		}
		if header != c.HeaderID || mode != c.Mode {
			ui.Warning("Skipping curve entry '%s': key does not match curve (header %d, mode %s)",
				key, c.HeaderID, c.Mode)
			continue
		}

		if err := writer.SetCurve(ctx, c); err != nil {
			ui.Warning("Skipping curve entry '%s': %v", key, err)
			continue
		}
		imported++
	}

	return imported, nil
}
