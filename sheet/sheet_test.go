package sheet

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankSheet(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func fillCell(m *image.NRGBA, x, y, w, h int) {
	draw.Draw(m, image.Rect(x, y, x+w, y+h), image.NewUniform(color.NRGBA{10, 200, 30, 255}), image.Point{}, draw.Src)
}

func TestValidateFullSheetDimensions(t *testing.T) {
	r := Validate(blankSheet(1680, 750), Regular)

	assert.True(t, r.OK())
	assert.Empty(t, r.Errors)
	assert.Equal(t, 21, r.Columns)
	assert.Equal(t, 25, r.Rows)
}

func TestValidateSplitSheetDimensions(t *testing.T) {
	r := Validate(blankSheet(880, 300), Regular)

	assert.True(t, r.OK())
	assert.Equal(t, 11, r.Columns)
	assert.Equal(t, 10, r.Rows)
}

func TestValidateBadWidth(t *testing.T) {
	r := Validate(blankSheet(1681, 750), Regular)

	assert.False(t, r.OK())
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "1681px")
}

func TestValidateBadHeight(t *testing.T) {
	r := Validate(blankSheet(1680, 751), Regular)

	assert.False(t, r.OK())
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "multiple of 30px")
}

func TestValidateEggDimensions(t *testing.T) {
	r := Validate(blankSheet(540, 320), Egg)

	assert.True(t, r.OK())
	assert.Equal(t, 18, r.Columns)
	assert.Equal(t, 10, r.Rows)

	r = Validate(blankSheet(541, 320), Egg)
	assert.False(t, r.OK())

	r = Validate(blankSheet(540, 321), Egg)
	assert.False(t, r.OK())
}

func TestEmptyCellsAreNotErrors(t *testing.T) {
	m := blankSheet(1680, 30)

	// Fill only the normal half of cell 0; everything else stays
	// fully transparent.
	fillCell(m, 0, 0, 40, 30)

	r := Validate(m, Regular)

	assert.True(t, r.OK())
	assert.NotEmpty(t, r.EmptyCells)

	// 21 cells, two sprites each, one filled.
	assert.Len(t, r.EmptyCells, 21*2-1)

	// The shiny half of cell 0 is empty, the normal half is not.
	assert.Equal(t, "shiny", r.EmptyCells[0].Variant)
	assert.Equal(t, 0, r.EmptyCells[0].Icon)
	assert.Equal(t, 40, r.EmptyCells[0].X)
}

func TestOpaqueCellNotEmpty(t *testing.T) {
	m := blankSheet(540, 32)
	for col := 0; col < 18; col++ {
		fillCell(m, col*30, 0, 30, 32)
	}

	r := Validate(m, Egg)

	assert.True(t, r.OK())
	assert.Empty(t, r.EmptyCells)
}

func TestEggEmptyCellNumbering(t *testing.T) {
	m := blankSheet(540, 64)
	for col := 0; col < 18; col++ {
		fillCell(m, col*30, 0, 30, 32)
	}
	// Second row left empty apart from the first cell.
	fillCell(m, 0, 32, 30, 32)

	r := Validate(m, Egg)

	require.Len(t, r.EmptyCells, 17)
	assert.Equal(t, 18+1+1451, r.EmptyCells[0].Icon)
}

func TestManyEmptyEggCellsWarns(t *testing.T) {
	r := Validate(blankSheet(540, 320), Egg)

	assert.True(t, r.OK())
	require.NotEmpty(t, r.Warnings)
	assert.Contains(t, r.Warnings[len(r.Warnings)-1], "many empty cells")
}

func TestNoAlphaWarning(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 1680, 30))
	r := Validate(m, Regular)
	assert.True(t, r.OK())

	gray := image.NewGray(image.Rect(0, 0, 1680, 30))
	r = Validate(gray, Regular)
	assert.True(t, r.OK())
	require.NotEmpty(t, r.Warnings)
	assert.Contains(t, r.Warnings[0], "alpha")
}
