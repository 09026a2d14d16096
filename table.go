package iconset

import (
	"fmt"
	"math"
	"strconv"
)

// Spec is a single icon variant: a logical point size, a display scale
// factor, a filename prefix and the device idiom the variant targets.
type Spec struct {
	PointSize float64
	Scale     float64
	Prefix    string
	Idiom     string
}

// PixelSize returns the actual edge length in pixels.
func (s Spec) PixelSize() int {
	return int(math.Round(s.PointSize * s.Scale))
}

// Filename returns the derived output filename. The "@{scale}x" suffix is
// omitted for 1x variants (e.g. "icon_76pt.png", "icon_20pt@2x.png").
func (s Spec) Filename() string {
	if s.Scale == 1 {
		return s.Prefix + ".png"
	}
	return fmt.Sprintf("%s@%sx.png", s.Prefix, formatFloat(s.Scale))
}

// SizeString returns the point size the way the asset catalog expects it,
// e.g. "1024x1024" or "83.5x83.5".
func (s Spec) SizeString() string {
	v := formatFloat(s.PointSize)
	return v + "x" + v
}

// ScaleString returns the scale the way the asset catalog expects it, e.g. "2x".
func (s Spec) ScaleString() string {
	return formatFloat(s.Scale) + "x"
}

// formatFloat renders integral values without a decimal point ("2", "1024")
// and fractional values with one ("83.5").
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// DefaultSpecs returns the icon variants required for an iOS/iPadOS/macOS
// app icon set. Order is preserved in logs and in the generated manifest.
func DefaultSpecs() []Spec {
	return []Spec{
		// iPhone
		{PointSize: 20, Scale: 2, Prefix: "icon_20pt", Idiom: "iphone"},
		{PointSize: 20, Scale: 3, Prefix: "icon_20pt", Idiom: "iphone"},
		{PointSize: 29, Scale: 2, Prefix: "icon_29pt", Idiom: "iphone"},
		{PointSize: 29, Scale: 3, Prefix: "icon_29pt", Idiom: "iphone"},
		{PointSize: 40, Scale: 2, Prefix: "icon_40pt", Idiom: "iphone"},
		{PointSize: 40, Scale: 3, Prefix: "icon_40pt", Idiom: "iphone"},
		{PointSize: 60, Scale: 2, Prefix: "icon_60pt", Idiom: "iphone"},
		{PointSize: 60, Scale: 3, Prefix: "icon_60pt", Idiom: "iphone"},
		// iPad
		{PointSize: 20, Scale: 1, Prefix: "icon_20pt", Idiom: "ipad"},
		{PointSize: 20, Scale: 2, Prefix: "icon_20pt", Idiom: "ipad"},
		{PointSize: 29, Scale: 1, Prefix: "icon_29pt", Idiom: "ipad"},
		{PointSize: 29, Scale: 2, Prefix: "icon_29pt", Idiom: "ipad"},
		{PointSize: 40, Scale: 1, Prefix: "icon_40pt", Idiom: "ipad"},
		{PointSize: 40, Scale: 2, Prefix: "icon_40pt", Idiom: "ipad"},
		{PointSize: 76, Scale: 1, Prefix: "icon_76pt", Idiom: "ipad"},
		{PointSize: 76, Scale: 2, Prefix: "icon_76pt", Idiom: "ipad"},
		{PointSize: 83.5, Scale: 2, Prefix: "icon_83.5pt", Idiom: "ipad"},
		// App Store
		{PointSize: 1024, Scale: 1, Prefix: "icon_1024pt", Idiom: "ios-marketing"},
		// macOS
		{PointSize: 16, Scale: 1, Prefix: "icon_16pt", Idiom: "mac"},
		{PointSize: 16, Scale: 2, Prefix: "icon_16pt", Idiom: "mac"},
		{PointSize: 32, Scale: 1, Prefix: "icon_32pt", Idiom: "mac"},
		{PointSize: 32, Scale: 2, Prefix: "icon_32pt", Idiom: "mac"},
		{PointSize: 128, Scale: 1, Prefix: "icon_128pt", Idiom: "mac"},
		{PointSize: 128, Scale: 2, Prefix: "icon_128pt", Idiom: "mac"},
		{PointSize: 256, Scale: 1, Prefix: "icon_256pt", Idiom: "mac"},
		{PointSize: 256, Scale: 2, Prefix: "icon_256pt", Idiom: "mac"},
		{PointSize: 512, Scale: 1, Prefix: "icon_512pt", Idiom: "mac"},
		{PointSize: 512, Scale: 2, Prefix: "icon_512pt", Idiom: "mac"},
	}
}
