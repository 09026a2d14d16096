package iconset

import (
	"testing"
)

func TestSpecFilename(t *testing.T) {
	tests := []struct {
		spec Spec
		want string
	}{
		{Spec{PointSize: 76, Scale: 1, Prefix: "icon_76pt", Idiom: "ipad"}, "icon_76pt.png"},
		{Spec{PointSize: 20, Scale: 2, Prefix: "icon_20pt", Idiom: "iphone"}, "icon_20pt@2x.png"},
		{Spec{PointSize: 20, Scale: 3, Prefix: "icon_20pt", Idiom: "iphone"}, "icon_20pt@3x.png"},
		{Spec{PointSize: 83.5, Scale: 2, Prefix: "icon_83.5pt", Idiom: "ipad"}, "icon_83.5pt@2x.png"},
		{Spec{PointSize: 1024, Scale: 1, Prefix: "icon_1024pt", Idiom: "ios-marketing"}, "icon_1024pt.png"},
		{Spec{PointSize: 30, Scale: 1.5, Prefix: "icon_30pt", Idiom: "car"}, "icon_30pt@1.5x.png"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.spec.Filename(); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpecPixelSize(t *testing.T) {
	tests := []struct {
		spec Spec
		want int
	}{
		{Spec{PointSize: 20, Scale: 2}, 40},
		{Spec{PointSize: 20, Scale: 3}, 60},
		{Spec{PointSize: 83.5, Scale: 2}, 167},
		{Spec{PointSize: 1024, Scale: 1}, 1024},
		{Spec{PointSize: 29, Scale: 3}, 87},
	}
	for _, tt := range tests {
		if got := tt.spec.PixelSize(); got != tt.want {
			t.Errorf("PixelSize() for %gpt@%gx = %d, want %d", tt.spec.PointSize, tt.spec.Scale, got, tt.want)
		}
	}
}

func TestSpecSizeString(t *testing.T) {
	tests := []struct {
		spec Spec
		want string
	}{
		{Spec{PointSize: 1024, Scale: 1}, "1024x1024"},
		{Spec{PointSize: 83.5, Scale: 2}, "83.5x83.5"},
		{Spec{PointSize: 20, Scale: 2}, "20x20"},
	}
	for _, tt := range tests {
		if got := tt.spec.SizeString(); got != tt.want {
			t.Errorf("SizeString() = %q, want %q", got, tt.want)
		}
	}
}

func TestSpecScaleString(t *testing.T) {
	tests := []struct {
		spec Spec
		want string
	}{
		{Spec{Scale: 1}, "1x"},
		{Spec{Scale: 2}, "2x"},
		{Spec{Scale: 3}, "3x"},
		{Spec{Scale: 1.5}, "1.5x"},
	}
	for _, tt := range tests {
		if got := tt.spec.ScaleString(); got != tt.want {
			t.Errorf("ScaleString() = %q, want %q", got, tt.want)
		}
	}
}

func TestDefaultSpecsFilenamesUnique(t *testing.T) {
	specs := DefaultSpecs()
	if len(specs) != 28 {
		t.Fatalf("DefaultSpecs() returned %d entries, want 28", len(specs))
	}
	seen := map[string]Spec{}
	for _, s := range specs {
		name := s.Filename()
		if prev, ok := seen[name]; ok && prev.PixelSize() != s.PixelSize() {
			t.Errorf("filename %s maps to both %dpx and %dpx", name, prev.PixelSize(), s.PixelSize())
		}
		seen[name] = s
	}
}
