/*
Package sheet validates icon sheet images against the grid addressing
model.

A regular sheet is either 1680 pixels wide (the full 21 column grid) or
880 pixels wide (an 11 column split sheet) with a height that is a
multiple of 30. An egg sheet is exactly 540 pixels wide with a height
that is a multiple of 32. Dimension violations are hard errors; empty
cells and missing transparency are only ever warnings and never block
an upload.
*/
package sheet

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gfcx/icontool/grid"
)

// Kind selects which layout a sheet is validated against.
type Kind string

const (
	Regular Kind = "regular"
	Egg     Kind = "egg"
)

const (
	fullWidth  = grid.RegularColumns * grid.RegularCellWidth // 1680
	splitWidth = 11 * grid.RegularCellWidth                  // 880
	eggWidth   = grid.EggColumns * grid.EggCellWidth         // 540
)

// EmptyCell identifies one sprite slot that contains no opaque pixels.
type EmptyCell struct {
	// Icon is the icon number implied by the slot. On split regular
	// sheets this is still computed against the full 21 column grid,
	// matching how the slots are labelled everywhere else.
	Icon    int
	Variant string // "normal", "shiny" or "egg"
	X, Y    int
}

func (c EmptyCell) String() string {
	if c.Variant == "egg" {
		return fmt.Sprintf("egg %d at (%d, %d)", c.Icon, c.X, c.Y)
	}
	return fmt.Sprintf("%s %d at (%d, %d)", c.Variant, c.Icon, c.X, c.Y)
}

// Report accumulates the findings for one sheet. Errors are
// structural and block upload; warnings and empty cells never do.
type Report struct {
	Kind       Kind
	Columns    int
	Rows       int
	Errors     []string
	Warnings   []string
	EmptyCells []EmptyCell
}

// OK reports whether the sheet passed structural validation. Empty
// cells and warnings do not affect the result.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

func (r *Report) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the pixel dimensions of m against the layout for
// kind and scans every implied cell for emptiness. All findings for
// the sheet are collected into the returned report rather than being
// raised one at a time.
func Validate(m image.Image, kind Kind) *Report {
	r := &Report{Kind: kind}

	b := m.Bounds()
	width, height := b.Dx(), b.Dy()

	switch kind {
	case Egg:
		if width != eggWidth {
			r.errorf("width %dpx is invalid, should be %dpx (%d columns)", width, eggWidth, grid.EggColumns)
		} else {
			r.Columns = grid.EggColumns
		}
		if height%grid.EggCellHeight != 0 {
			r.errorf("height %dpx is not a multiple of %dpx", height, grid.EggCellHeight)
		} else {
			r.Rows = height / grid.EggCellHeight
		}
	default:
		if width != fullWidth && width != splitWidth {
			r.errorf("width %dpx is invalid, should be %dpx (full) or %dpx (split)", width, fullWidth, splitWidth)
		} else {
			r.Columns = width / grid.RegularCellWidth
		}
		if height%grid.RegularCellHeight != 0 {
			r.errorf("height %dpx is not a multiple of %dpx", height, grid.RegularCellHeight)
		} else {
			r.Rows = height / grid.RegularCellHeight
		}
	}

	if !hasAlpha(m) {
		r.warnf("image has no alpha channel, background will not be transparent")
	}

	if !r.OK() {
		return r
	}

	scanCells(m, r)

	return r
}

func hasAlpha(m image.Image) bool {
	switch m.ColorModel() {
	case color.NRGBAModel, color.NRGBA64Model, color.RGBAModel, color.RGBA64Model, color.AlphaModel, color.Alpha16Model:
		return true
	}
	if p, ok := m.ColorModel().(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a < 0xffff {
				return true
			}
		}
	}
	return false
}

func scanCells(m image.Image, r *Report) {
	switch r.Kind {
	case Egg:
		for row := 0; row < r.Rows; row++ {
			for col := 0; col < r.Columns; col++ {
				x, y := col*grid.EggCellWidth, row*grid.EggCellHeight
				if regionEmpty(m, x, y, grid.EggCellWidth, grid.EggCellHeight) {
					r.EmptyCells = append(r.EmptyCells, EmptyCell{
						Icon:    row*grid.EggColumns + col + grid.EggBase,
						Variant: "egg",
						X:       x,
						Y:       y,
					})
				}
			}
		}
		if total := r.Rows * r.Columns; total > 0 && len(r.EmptyCells)*2 >= total {
			r.warnf("many empty cells (%d of %d), is this correct?", len(r.EmptyCells), total)
		}
	default:
		for row := 0; row < r.Rows; row++ {
			for col := 0; col < r.Columns; col++ {
				icon := row*grid.RegularColumns + col
				x, y := col*grid.RegularCellWidth, row*grid.RegularCellHeight
				if regionEmpty(m, x, y, grid.SpriteWidth, grid.RegularCellHeight) {
					r.EmptyCells = append(r.EmptyCells, EmptyCell{Icon: icon, Variant: "normal", X: x, Y: y})
				}
				if regionEmpty(m, x+grid.SpriteWidth, y, grid.SpriteWidth, grid.RegularCellHeight) {
					r.EmptyCells = append(r.EmptyCells, EmptyCell{Icon: icon, Variant: "shiny", X: x + grid.SpriteWidth, Y: y})
				}
			}
		}
	}
}

// regionEmpty reports whether no pixel in the region has non-zero
// opacity.
func regionEmpty(m image.Image, x, y, w, h int) bool {
	min := m.Bounds().Min
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if _, _, _, a := m.At(min.X+x+dx, min.Y+y+dy).RGBA(); a != 0 {
				return false
			}
		}
	}
	return true
}
