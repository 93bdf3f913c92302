/*
Package icon normalizes individual icon images before upload.

Normalization converts an image to a transparent NRGBA sprite: the
background color is detected by sampling the border, pixels within a
color tolerance of it are keyed out, the sprite is resized and
centered on a fixed target canvas and a minimum padding is enforced by
shrinking the sprite when it touches the canvas edge.
*/
package icon

import "image/color"

// MaxDimension is the platform upload limit on either side of an
// image.
const MaxDimension = 1024

// Options controls normalization.
type Options struct {
	TargetWidth  int
	TargetHeight int
	MinPadding   int
	// Tolerance is the maximum per-channel difference for a pixel to
	// be treated as background during keying.
	Tolerance int
	// Quantize reduces the image to a 256 color palette on save.
	Quantize bool
}

// DefaultOptions returns the standard target geometry for custom
// icons.
func DefaultOptions() Options {
	return Options{
		TargetWidth:  80,
		TargetHeight: 60,
		MinPadding:   2,
		Tolerance:    10,
	}
}

// Result records what normalization found and did to one image.
// Issues are conditions that could not be fixed, warnings are
// survivable oddities and fixes are the transforms that were applied.
type Result struct {
	Issues   []string
	Warnings []string
	Fixes    []string

	// Background is the detected background color when keying ran.
	Background color.NRGBA
	// KeyedPixels counts pixels made transparent by keying.
	KeyedPixels int
}

// Ready reports whether the icon has no outstanding issues.
func (r *Result) Ready() bool {
	return len(r.Issues) == 0
}
