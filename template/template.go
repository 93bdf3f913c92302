/*
Package template generates blank guide images for sheet artists.

The templates use the same cell geometry as the addressing model: 80
by 30 cells with a normal/shiny divider for regular sheets, 30 by 32
cells for egg sheets. Gray lines mark cell boundaries, the red line
splits a regular cell into its normal and shiny halves, and each row
is labelled with its first icon number.
*/
package template

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gfcx/icontool/grid"
)

// DefaultRows is the row count used when the caller does not specify
// one.
const DefaultRows = 25

var (
	gridColor    = color.NRGBA{100, 100, 100, 128}
	dividerColor = color.NRGBA{200, 50, 50, 180}
	labelColor   = color.NRGBA{150, 150, 150, 200}
	iconColor    = color.NRGBA{100, 150, 255, 200}
	eggColor     = color.NRGBA{255, 200, 100, 200}
)

// Regular returns a transparent template for a full regular sheet with
// the given number of rows.
func Regular(rows int) *image.NRGBA {
	width := grid.RegularColumns * grid.RegularCellWidth
	height := rows * grid.RegularCellHeight

	m := image.NewNRGBA(image.Rect(0, 0, width, height))

	for x := 0; x <= width; x += grid.RegularCellWidth {
		vline(m, x, 0, height, gridColor)
	}
	for x := grid.SpriteWidth; x < width; x += grid.RegularCellWidth {
		vline(m, x, 0, height, dividerColor)
	}
	for y := 0; y <= height; y += grid.RegularCellHeight {
		hline(m, 0, y, width, gridColor)
	}

	for col := 0; col < grid.RegularColumns; col++ {
		label(m, col*grid.RegularCellWidth+grid.SpriteWidth, 5, strconv.Itoa(col), labelColor)
	}
	for row := 0; row < rows; row++ {
		y := row * grid.RegularCellHeight
		label(m, 5, y+10, "R"+strconv.Itoa(row), labelColor)
		label(m, 5, y+20, "#"+strconv.Itoa(row*grid.RegularColumns), iconColor)
	}

	return m
}

// Egg returns a transparent template for the egg sheet with the given
// number of rows.
func Egg(rows int) *image.NRGBA {
	width := grid.EggColumns * grid.EggCellWidth
	height := rows * grid.EggCellHeight

	m := image.NewNRGBA(image.Rect(0, 0, width, height))

	for x := 0; x <= width; x += grid.EggCellWidth {
		vline(m, x, 0, height, gridColor)
	}
	for y := 0; y <= height; y += grid.EggCellHeight {
		hline(m, 0, y, width, gridColor)
	}

	for col := 0; col < grid.EggColumns; col++ {
		label(m, col*grid.EggCellWidth+10, 5, strconv.Itoa(col), labelColor)
	}
	for row := 0; row < rows; row++ {
		y := row * grid.EggCellHeight
		label(m, 2, y+10, "R"+strconv.Itoa(row), labelColor)
		label(m, 2, y+20, "#"+strconv.Itoa(row*grid.EggColumns+grid.EggBase), eggColor)
	}

	return m
}

// Reference returns a small card illustrating the sprite dimensions:
// the 40x30 normal and shiny boxes, the 80x30 cell with its divider
// and the 30x32 egg box.
func Reference() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, 400, 300))
	draw.Draw(m, m.Bounds(), image.NewUniform(color.NRGBA{40, 40, 40, 255}), image.Point{}, draw.Src)

	white := color.NRGBA{255, 255, 255, 255}

	// Normal sprite box.
	box(m, 50, 50, grid.SpriteWidth, grid.RegularCellHeight, color.NRGBA{0, 255, 0, 255})
	label(m, 55, 30, "Normal", white)
	label(m, 55, 55, "40x30", white)

	// Shiny sprite box.
	box(m, 100, 50, grid.SpriteWidth, grid.RegularCellHeight, color.NRGBA{255, 100, 255, 255})
	label(m, 105, 30, "Shiny", white)

	// Full cell with divider.
	box(m, 50, 150, grid.RegularCellWidth, grid.RegularCellHeight, color.NRGBA{100, 150, 255, 255})
	vline(m, 50+grid.SpriteWidth, 150, grid.RegularCellHeight, color.NRGBA{255, 50, 50, 255})
	label(m, 55, 130, "Cell 80x30", white)

	// Egg sprite box.
	box(m, 250, 50, grid.EggCellWidth, grid.EggCellHeight, eggColor)
	label(m, 230, 30, "Egg 30x32", white)

	return m
}

func vline(m *image.NRGBA, x, y, h int, c color.NRGBA) {
	for dy := 0; dy < h; dy++ {
		m.SetNRGBA(x, y+dy, c)
	}
}

func hline(m *image.NRGBA, x, y, w int, c color.NRGBA) {
	for dx := 0; dx < w; dx++ {
		m.SetNRGBA(x+dx, y, c)
	}
}

func box(m *image.NRGBA, x, y, w, h int, c color.NRGBA) {
	hline(m, x, y, w, c)
	hline(m, x, y+h, w, c)
	vline(m, x, y, h, c)
	vline(m, x+w, y, h, c)
}

func label(m *image.NRGBA, x, y int, s string, c color.NRGBA) {
	d := font.Drawer{
		Dst:  m,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(s)
}
