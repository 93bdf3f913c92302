package icontool

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfcx/icontool/icon"
)

func writePNG(t *testing.T, file string, w, h int) {
	t.Helper()

	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(m, image.Rect(w/4, h/4, 3*w/4, 3*h/4), image.NewUniform(color.NRGBA{200, 30, 30, 255}), image.Point{}, draw.Src)

	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func newTool(t *testing.T) *Icontool {
	t.Helper()

	m, err := New(filepath.Join(t.TempDir(), "icontool.db"), log.New(os.Stderr, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	return m
}

func TestPrepareFile(t *testing.T) {
	m := newTool(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "celebi_normal.png")
	output := filepath.Join(dir, "celebi_normal_prepared.png")
	writePNG(t, input, 40, 30)

	result, rec, err := m.PrepareFile(input, output, icon.DefaultOptions())
	require.NoError(t, err)

	assert.True(t, result.Ready())
	assert.Equal(t, "Celebi", rec.Name)
	assert.Equal(t, "Normal", rec.Variant)
	assert.Equal(t, 80, rec.Width)
	assert.Equal(t, 60, rec.Height)
	assert.Equal(t, "Pending Upload", rec.Status)

	_, err = os.Stat(output)
	assert.NoError(t, err)
}

func TestPrepareBatch(t *testing.T) {
	m := newTool(t)
	dir := t.TempDir()

	writePNG(t, filepath.Join(dir, "celebi_normal.png"), 40, 30)
	writePNG(t, filepath.Join(dir, "celebi_shiny.png"), 40, 30)
	writePNG(t, filepath.Join(dir, "mew.png"), 64, 48)

	// A file that cannot be decoded must not stop the batch.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0644))

	report, err := m.PrepareBatch(dir, "", icon.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Prepared)
	assert.Equal(t, 1, report.Failed)
	assert.Len(t, report.Outcomes, 4)
	assert.Equal(t, filepath.Join(dir, "prepared"), report.OutputDir)

	// Enumeration order: broken.png sorts first and fails.
	assert.Error(t, report.Outcomes[0].Err)
	assert.NoError(t, report.Outcomes[1].Err)

	_, err = os.Stat(report.PreviewFile)
	assert.NoError(t, err)
	_, err = os.Stat(report.TrackingFile)
	assert.NoError(t, err)

	// The tracking spreadsheet has a header plus one row per
	// prepared icon.
	b, err := os.ReadFile(report.TrackingFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Pokemon,Type,File"))
}

func TestPrepareBatchMissingDir(t *testing.T) {
	m := newTool(t)

	_, err := m.PrepareBatch(filepath.Join(t.TempDir(), "nope"), "", icon.DefaultOptions())
	assert.Error(t, err)
}

func TestTrackDB(t *testing.T) {
	db, err := NewTrackDB(filepath.Join(t.TempDir(), "track.db"))
	require.NoError(t, err)
	defer db.Close()

	rec := IconRecord{
		Name:    "Celebi",
		Variant: "Normal",
		File:    "celebi_normal.png",
		SHA1:    "AB12",
		Width:   80,
		Height:  60,
		Bytes:   1234,
		Ready:   true,
		Status:  "Pending Upload",
	}

	id, err := db.Record(rec)
	require.NoError(t, err)
	assert.NotZero(t, id)

	// Same hash upserts rather than duplicating.
	rec.Status = "Pending Upload"
	again, err := db.Record(rec)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	require.NoError(t, db.SetAssetID("celebi_normal.png", "12345678"))
	assert.Error(t, db.SetAssetID("missing.png", "1"))

	records, err := db.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "12345678", records[0].AssetID)
	assert.Equal(t, "Uploaded", records[0].Status)
}

func TestExportCSV(t *testing.T) {
	db, err := NewTrackDB(filepath.Join(t.TempDir(), "track.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Record(IconRecord{Name: "Mew", Variant: "Shiny", File: "mew_shiny.png", SHA1: "FF", Width: 80, Height: 60, Bytes: 10, Ready: true, Status: "Pending Upload"})
	require.NoError(t, err)
	require.NoError(t, db.SetAssetID("mew_shiny.png", "987"))

	var buf bytes.Buffer
	require.NoError(t, db.Export(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	// Shiny asset references land in the shiny column.
	assert.Contains(t, lines[1], "Mew,Shiny,mew_shiny.png")
	assert.Contains(t, lines[1], ",,987,")
}

func TestSplitIconName(t *testing.T) {
	for _, tt := range []struct {
		file    string
		name    string
		variant string
	}{
		{"celebi_normal.png", "Celebi", "Normal"},
		{"celebi_shiny.png", "Celebi", "Shiny"},
		{"mew.png", "Mew", "Normal"},
		{"deoxys_attack_shiny.png", "Deoxys Attack", "Shiny"},
	} {
		name, variant := splitIconName(tt.file)
		assert.Equal(t, tt.name, name, tt.file)
		assert.Equal(t, tt.variant, variant, tt.file)
	}
}
