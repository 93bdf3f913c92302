package icon

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, c color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(m, m.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return m
}

func TestNormalizeKeysOpaqueBackground(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 255}
	m := uniform(40, 30, white)

	// A small red sprite in the middle of a white background.
	draw.Draw(m, image.Rect(15, 10, 25, 20), image.NewUniform(color.NRGBA{200, 0, 0, 255}), image.Point{}, draw.Src)

	out, r := Normalize(m, DefaultOptions())

	assert.True(t, r.Ready())
	assert.Equal(t, white, r.Background)
	assert.Equal(t, 40*30-10*10, r.KeyedPixels)

	// The canvas is the 80x60 target with transparent corners.
	assert.Equal(t, 80, out.Bounds().Dx())
	assert.Equal(t, 60, out.Bounds().Dy())
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A)

	// The sprite survives, centered.
	assert.Equal(t, uint8(255), out.NRGBAAt(40, 30).A)
}

func TestNormalizeTolerance(t *testing.T) {
	bg := color.NRGBA{250, 250, 250, 255}
	m := uniform(20, 20, bg)

	// Within the default tolerance of the background.
	draw.Draw(m, image.Rect(0, 0, 10, 20), image.NewUniform(color.NRGBA{245, 245, 245, 255}), image.Point{}, draw.Src)

	_, r := Normalize(m, DefaultOptions())

	assert.Equal(t, 20*20, r.KeyedPixels)
}

func TestNormalizeKeepsExistingAlpha(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 80, 60))
	draw.Draw(m, image.Rect(20, 20, 60, 40), image.NewUniform(color.NRGBA{0, 0, 200, 255}), image.Point{}, draw.Src)

	out, r := Normalize(m, DefaultOptions())

	// Already transparent and already target sized, no keying.
	assert.Equal(t, 0, r.KeyedPixels)
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(40, 30).A)
}

func TestNormalizeCentersSmall(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	draw.Draw(m, m.Bounds(), image.NewUniform(color.NRGBA{0, 200, 0, 255}), image.Point{}, draw.Src)

	out, r := Normalize(m, DefaultOptions())

	assert.Equal(t, 80, out.Bounds().Dx())
	assert.Equal(t, 60, out.Bounds().Dy())

	// Centered 20x20 block sits at (30,20)-(50,40).
	assert.Equal(t, uint8(255), out.NRGBAAt(40, 30).A)
	assert.Equal(t, uint8(0), out.NRGBAAt(10, 10).A)

	assert.NotEmpty(t, r.Fixes)
	assert.NotEmpty(t, r.Warnings) // smaller than minimum
}

func TestNormalizeScalesLarge(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 400, 300))
	draw.Draw(m, image.Rect(100, 100, 300, 200), image.NewUniform(color.NRGBA{200, 100, 0, 255}), image.Point{}, draw.Src)

	out, _ := Normalize(m, DefaultOptions())

	assert.Equal(t, 80, out.Bounds().Dx())
	assert.Equal(t, 60, out.Bounds().Dy())
}

func TestNormalizeOverLimit(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2048, 100))

	_, r := Normalize(m, DefaultOptions())

	assert.False(t, r.Ready())
	require.NotEmpty(t, r.Issues)
	assert.Contains(t, r.Issues[0], "upload limit")
}

func TestNormalizePadding(t *testing.T) {
	// An opaque sprite filling the whole target canvas must be shrunk
	// to leave the minimum padding.
	m := uniform(80, 60, color.NRGBA{10, 10, 10, 255})
	m.SetNRGBA(0, 0, color.NRGBA{10, 10, 10, 0}) // keep some alpha so keying is skipped

	out, r := Normalize(m, DefaultOptions())

	assert.Contains(t, r.Fixes, "added 2px padding")
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), out.NRGBAAt(79, 59).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(40, 30).A)
}

func TestDetectBackgroundModalColor(t *testing.T) {
	bg := color.NRGBA{0, 128, 255, 255}
	m := uniform(50, 50, bg)

	// A sprite touching one corner must not win the vote.
	draw.Draw(m, image.Rect(0, 0, 5, 5), image.NewUniform(color.NRGBA{255, 0, 0, 255}), image.Point{}, draw.Src)

	assert.Equal(t, bg, detectBackground(m))
}

func TestSaveQuantized(t *testing.T) {
	dir := t.TempDir()
	m := uniform(80, 60, color.NRGBA{1, 2, 3, 255})

	opts := DefaultOptions()
	opts.Quantize = true

	file := filepath.Join(dir, "out.png")
	require.NoError(t, Save(file, m, opts))

	loaded, format, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 80, loaded.Bounds().Dx())
}
