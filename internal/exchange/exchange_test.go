package exchange

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fansync/fansync/internal/curve"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/store"
	"github.com/stretchr/testify/assert"
)

type recordingWriter struct {
	written []hwio.Curve
	err     error
}

func (w *recordingWriter) SetCurve(_ context.Context, c hwio.Curve) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, c)
	return nil
}

func populatedStores() (*store.PolicyStore, *store.CurveStore) {
	policies := store.NewPolicyStore()
	policies.Put(hwio.Policy{HeaderID: 0, Mode: hwio.ControlModePWM, Profile: hwio.ProfileManual})

	curves := store.NewCurveStore()
	curves.Put(curve.Default(0, hwio.ControlModePWM))
	curves.MarkUnsupported(3, hwio.ControlModeAuto)
	return policies, curves
}

func TestExportSnapshotsStores(t *testing.T) {
	// GIVEN
	policies, curves := populatedStores()

	// WHEN
	document := Export(policies, curves)

	// THEN
	assert.Equal(t, 1, document.Version)
	assert.Len(t, document.Policies, 1)
	assert.Len(t, document.Curves, 1)
	assert.Contains(t, document.Curves, "0_pwm")
	assert.False(t, document.Timestamp.IsZero())
}

func TestWriteAndReadFileRoundTrip(t *testing.T) {
	// GIVEN
	policies, curves := populatedStores()
	document := Export(policies, curves)
	path := filepath.Join(t.TempDir(), "fansync-export.json")

	// WHEN
	err := WriteFile(path, document)
	assert.NoError(t, err)
	restored, err := ReadFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, document.Version, restored.Version)
	assert.Equal(t, document.Policies, restored.Policies)
	assert.Equal(t, document.Curves, restored.Curves)
}

func TestImportReplaysCurves(t *testing.T) {
	// GIVEN
	policies, curves := populatedStores()
	document := Export(policies, curves)
	writer := &recordingWriter{}

	// WHEN
	imported, err := Import(context.Background(), writer, document)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Len(t, writer.written, 1)
	assert.Equal(t, hwio.HeaderID(0), writer.written[0].HeaderID)
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	// GIVEN
	document := Document{Version: 2}
	writer := &recordingWriter{}

	// WHEN
	_, err := Import(context.Background(), writer, document)

	// THEN
	assert.Error(t, err)
	assert.Empty(t, writer.written)
}

func TestImportSkipsEntriesWithMismatchedKeys(t *testing.T) {
	// GIVEN
	document := Document{
		Version: 1,
		Curves: map[string]hwio.Curve{
			"5_pwm": curve.Default(0, hwio.ControlModePWM),
		},
	}
	writer := &recordingWriter{}

	// WHEN
	imported, err := Import(context.Background(), writer, document)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, imported)
	assert.Empty(t, writer.written)
}

func TestImportSkipsRejectedCurvesInsteadOfAborting(t *testing.T) {
	// GIVEN
	document := Document{
		Version: 1,
		Curves: map[string]hwio.Curve{
			"0_pwm": curve.Default(0, hwio.ControlModePWM),
		},
	}
	writer := &recordingWriter{err: &curve.ValidationError{Reason: "duplicate temperature 40°C"}}

	// WHEN
	imported, err := Import(context.Background(), writer, document)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, imported)
}
