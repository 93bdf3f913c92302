package template

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

const (
	previewPerRow  = 8
	previewCell    = 100
	previewPadding = 10
	previewLabel   = 30
)

// Preview composes a contact sheet of prepared icons, up to eight per
// row, each in a 100x100 cell with its label underneath. Labels longer
// than fifteen characters are truncated. A nil entry leaves its cell
// blank.
func Preview(icons []image.Image, labels []string) *image.NRGBA {
	perRow := previewPerRow
	if len(icons) < perRow {
		perRow = len(icons)
	}
	if perRow == 0 {
		perRow = 1
	}
	rows := (len(icons) + perRow - 1) / perRow

	width := perRow*(previewCell+previewPadding) + previewPadding
	height := rows*(previewCell+previewPadding) + previewPadding + previewLabel

	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(m, m.Bounds(), image.NewUniform(color.NRGBA{40, 40, 40, 255}), image.Point{}, draw.Src)

	cellBG := image.NewUniform(color.NRGBA{60, 60, 60, 255})
	cellBorder := color.NRGBA{100, 100, 100, 255}
	textColor := color.NRGBA{200, 200, 200, 255}

	for i, icon := range icons {
		row := i / perRow
		col := i % perRow

		x := previewPadding + col*(previewCell+previewPadding)
		y := previewPadding + row*(previewCell+previewPadding)

		draw.Draw(m, image.Rect(x, y, x+previewCell, y+previewCell), cellBG, image.Point{}, draw.Src)
		box(m, x, y, previewCell, previewCell, cellBorder)

		if icon != nil {
			thumb := imaging.Fit(icon, previewCell-10, previewCell-previewLabel, imaging.Lanczos)
			tx := x + (previewCell-thumb.Bounds().Dx())/2
			ty := y + (previewCell-previewLabel-thumb.Bounds().Dy())/2
			draw.Draw(m, thumb.Bounds().Add(image.Pt(tx, ty)), thumb, thumb.Bounds().Min, draw.Over)
		}

		if i < len(labels) {
			name := labels[i]
			if len(name) > 15 {
				name = name[:12] + "..."
			}
			label(m, x+5, y+previewCell-25, name, textColor)
		}
	}

	return m
}
