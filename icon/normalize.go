package icon

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Normalize prepares one icon image for upload and returns the
// normalized sprite along with a record of the checks and fixes.
func Normalize(m image.Image, opts Options) (*image.NRGBA, *Result) {
	r := &Result{}

	b := m.Bounds()
	width, height := b.Dx(), b.Dy()

	if width > MaxDimension || height > MaxDimension {
		r.Issues = append(r.Issues, fmt.Sprintf("size %dx%d exceeds the %dx%d upload limit", width, height, MaxDimension, MaxDimension))
	}
	if width < opts.TargetWidth/2 || height < opts.TargetHeight/2 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("size %dx%d is smaller than minimum %dx%d", width, height, opts.TargetWidth/2, opts.TargetHeight/2))
	}
	if aspectMismatch(width, height, opts.TargetWidth, opts.TargetHeight) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("aspect ratio of %dx%d differs from target %dx%d", width, height, opts.TargetWidth, opts.TargetHeight))
	}

	out := imaging.Clone(m)

	// Key out the background when the source carries no useful alpha.
	if !usefulAlpha(out) {
		bg := detectBackground(out)
		keyed := keyBackground(out, bg, opts.Tolerance)
		r.Background = bg
		r.KeyedPixels = keyed
		if keyed > 0 {
			r.Fixes = append(r.Fixes, fmt.Sprintf("keyed out background %v (%d pixels)", bg, keyed))
		} else {
			r.Fixes = append(r.Fixes, "converted to transparent format")
		}
	}

	// Enforce the platform limit before anything else.
	if out.Bounds().Dx() > MaxDimension || out.Bounds().Dy() > MaxDimension {
		out = imaging.Fit(out, MaxDimension, MaxDimension, imaging.Lanczos)
		r.Fixes = append(r.Fixes, fmt.Sprintf("resized to %dx%d to fit the upload limit", out.Bounds().Dx(), out.Bounds().Dy()))
	}

	// Fit to the target canvas.
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	switch {
	case w == opts.TargetWidth && h == opts.TargetHeight:
	case w < opts.TargetWidth && h < opts.TargetHeight:
		out = center(out, opts.TargetWidth, opts.TargetHeight)
		r.Fixes = append(r.Fixes, fmt.Sprintf("centered on %dx%d canvas", opts.TargetWidth, opts.TargetHeight))
	default:
		out = imaging.Fit(out, opts.TargetWidth, opts.TargetHeight, imaging.Lanczos)
		out = center(out, opts.TargetWidth, opts.TargetHeight)
		r.Fixes = append(r.Fixes, fmt.Sprintf("scaled and centered to %dx%d", opts.TargetWidth, opts.TargetHeight))
	}

	// Shrink the sprite when it touches the edges.
	if opts.MinPadding > 0 {
		if padded, ok := pad(out, opts.MinPadding); ok {
			out = padded
			r.Fixes = append(r.Fixes, fmt.Sprintf("added %dpx padding", opts.MinPadding))
		}
	}

	return out, r
}

func aspectMismatch(w, h, tw, th int) bool {
	if h == 0 || th == 0 {
		return true
	}
	aspect := float64(w) / float64(h)
	target := float64(tw) / float64(th)
	diff := aspect - target
	if diff < 0 {
		diff = -diff
	}
	return diff > 0.2
}

// usefulAlpha reports whether the image has any pixel that is not
// fully opaque. An alpha channel that is 255 everywhere still needs
// its background keyed out.
func usefulAlpha(m *image.NRGBA) bool {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.NRGBAAt(x, y).A != 0xff {
				return true
			}
		}
	}
	return false
}

// detectBackground samples the four corners and every tenth border
// pixel and returns the modal color. Falls back to white when there
// is nothing to sample.
func detectBackground(m *image.NRGBA) color.NRGBA {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return color.NRGBA{255, 255, 255, 255}
	}

	var samples []color.NRGBA
	samples = append(samples,
		m.NRGBAAt(b.Min.X, b.Min.Y),
		m.NRGBAAt(b.Max.X-1, b.Min.Y),
		m.NRGBAAt(b.Min.X, b.Max.Y-1),
		m.NRGBAAt(b.Max.X-1, b.Max.Y-1),
	)

	xStep := w / 10
	if xStep < 1 {
		xStep = 1
	}
	for x := b.Min.X; x < b.Max.X; x += xStep {
		samples = append(samples, m.NRGBAAt(x, b.Min.Y), m.NRGBAAt(x, b.Max.Y-1))
	}
	yStep := h / 10
	if yStep < 1 {
		yStep = 1
	}
	for y := b.Min.Y; y < b.Max.Y; y += yStep {
		samples = append(samples, m.NRGBAAt(b.Min.X, y), m.NRGBAAt(b.Max.X-1, y))
	}

	counts := make(map[color.NRGBA]int)
	var best color.NRGBA
	bestCount := 0
	for _, s := range samples {
		s.A = 0xff
		counts[s]++
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best
}

// keyBackground makes every pixel within tolerance of bg fully
// transparent and every other pixel fully opaque, returning how many
// pixels were keyed.
func keyBackground(m *image.NRGBA, bg color.NRGBA, tolerance int) int {
	b := m.Bounds()
	keyed := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.NRGBAAt(x, y)
			if within(c.R, bg.R, tolerance) && within(c.G, bg.G, tolerance) && within(c.B, bg.B, tolerance) {
				c.A = 0
				keyed++
			} else {
				c.A = 0xff
			}
			m.SetNRGBA(x, y, c)
		}
	}
	return keyed
}

func within(a, b uint8, tolerance int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func center(m *image.NRGBA, w, h int) *image.NRGBA {
	canvas := imaging.New(w, h, color.NRGBA{0, 0, 0, 0})
	return imaging.PasteCenter(canvas, m)
}

// pad shrinks the sprite so its opaque bounding box keeps at least
// padding pixels of clearance from every canvas edge. Returns false
// when the sprite already has clearance or is fully transparent.
func pad(m *image.NRGBA, padding int) (*image.NRGBA, bool) {
	box, ok := opaqueBounds(m)
	if !ok {
		return m, false
	}

	b := m.Bounds()
	if box.Min.X >= b.Min.X+padding && box.Min.Y >= b.Min.Y+padding &&
		box.Max.X <= b.Max.X-padding && box.Max.Y <= b.Max.Y-padding {
		return m, false
	}

	sprite := imaging.Crop(m, box)
	sprite = imaging.Fit(sprite, b.Dx()-2*padding, b.Dy()-2*padding, imaging.Lanczos)

	return center(sprite, b.Dx(), b.Dy()), true
}

// opaqueBounds returns the bounding box of all pixels with non-zero
// opacity.
func opaqueBounds(m *image.NRGBA) (image.Rectangle, bool) {
	b := m.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.NRGBAAt(x, y).A == 0 {
				continue
			}
			found = true
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x+1 > maxX {
				maxX = x + 1
			}
			if y+1 > maxY {
				maxY = y + 1
			}
		}
	}
	return image.Rect(minX, minY, maxX, maxY), found
}
