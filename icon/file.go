package icon

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/ericpauley/go-quantize/quantize"
)

// Load decodes an icon image from file. GIF and JPEG sources are
// accepted alongside PNG; Normalize converts them to a transparent
// format.
func Load(file string) (image.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return image.Decode(f)
}

// Save encodes the normalized icon as PNG. With opts.Quantize the
// image is first reduced to a 256 color palette which typically
// shrinks the encoded file considerably.
func Save(file string, m image.Image, opts Options) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if opts.Quantize {
		q := quantize.MedianCutQuantizer{AddTransparent: true}
		pm := image.NewPaletted(m.Bounds(), q.Quantize(make(color.Palette, 0, 256), m))
		draw.Draw(pm, m.Bounds(), m, m.Bounds().Min, draw.Src)
		m = pm
	}

	return png.Encode(f, m)
}
