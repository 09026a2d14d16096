package iconset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"
)

// fakeResizer counts invocations and optionally fails at a fixed invocation
// index (1-based).
type fakeResizer struct {
	calls      int
	failAt     int
	writeFiles bool
}

func (f *fakeResizer) Name() string { return "fake" }

func (f *fakeResizer) Resize(ctx context.Context, src string, width, height int, dst string) error {
	f.calls++
	if f.failAt > 0 && f.calls == f.failAt {
		return fmt.Errorf("forced failure at invocation %d", f.calls)
	}
	if f.writeFiles {
		if err := os.WriteFile(dst, []byte("fake png"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func TestGenerateSourceNotFound(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	r := &fakeResizer{}
	g, err := New(WithResizer(r))
	if err != nil {
		t.Fatal(err)
	}
	err = g.Generate(ctx, filepath.Join(dir, "missing.png"), filepath.Join(dir, "out"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("Generate() error = %v, want ErrSourceNotFound", err)
	}
	if r.calls != 0 {
		t.Errorf("resizer was invoked %d times for a missing source, want 0", r.calls)
	}
}

func TestGenerateNoResizer(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "icon.png")
	writeTestPNG(t, src, 64)
	g, err := New()
	if err != nil {
		t.Fatal(err)
	}
	err = g.Generate(ctx, src, filepath.Join(dir, "out"))
	if !errors.Is(err, ErrResizerUnavailable) {
		t.Fatalf("Generate() error = %v, want ErrResizerUnavailable", err)
	}
}

func TestGenerateFailFast(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "icon.png")
	writeTestPNG(t, src, 64)
	outDir := filepath.Join(dir, "out")

	const failAt = 5
	r := &fakeResizer{failAt: failAt, writeFiles: true}
	g, err := New(WithResizer(r))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(ctx, src, outDir); err == nil {
		t.Fatal("Generate() expected error")
	}
	if r.calls != failAt {
		t.Errorf("resizer invoked %d times, want %d (no entries after the failing one)", r.calls, failAt)
	}
	// Files written before the failure are left in place.
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != failAt-1 {
		t.Errorf("output dir has %d files, want %d", len(entries), failAt-1)
	}
}

func TestGenerateSuccess(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "icon.png")
	writeTestPNG(t, src, 64)
	outDir := filepath.Join(dir, "out")

	r := &fakeResizer{writeFiles: true}
	g, err := New(WithResizer(r))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(ctx, src, outDir); err != nil {
		t.Fatal(err)
	}
	specs := DefaultSpecs()
	if r.calls != len(specs) {
		t.Errorf("resizer invoked %d times, want %d", r.calls, len(specs))
	}
	for _, s := range specs {
		if _, err := os.Stat(filepath.Join(outDir, s.Filename())); err != nil {
			t.Errorf("missing output file %s: %v", s.Filename(), err)
		}
	}
}

func TestNewRejectsConflictingSpecs(t *testing.T) {
	_, err := New(WithSpecs([]Spec{
		{PointSize: 20, Scale: 2, Prefix: "icon", Idiom: "iphone"},
		{PointSize: 29, Scale: 2, Prefix: "icon", Idiom: "ipad"},
	}))
	if err == nil {
		t.Fatal("New() expected error for conflicting filenames")
	}
}

func TestRunEndToEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "icon.png")
	writeTestPNG(t, src, 256)
	outDir := filepath.Join(dir, "AppIcon.appiconset")

	r, err := DetectResizer("go", "")
	if err != nil {
		t.Fatal(err)
	}
	g, err := New(WithResizer(r))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Run(ctx, src, outDir); err != nil {
		t.Fatal(err)
	}

	specs := DefaultSpecs()
	for _, s := range specs {
		f, err := os.Open(filepath.Join(outDir, s.Filename()))
		if err != nil {
			t.Fatalf("missing output file %s: %v", s.Filename(), err)
		}
		cfg, format, err := image.DecodeConfig(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("failed to decode %s: %v", s.Filename(), err)
		}
		if format != "png" {
			t.Errorf("%s format = %q, want png", s.Filename(), format)
		}
		if cfg.Width != s.PixelSize() || cfg.Height != s.PixelSize() {
			t.Errorf("%s is %dx%d, want %dx%d", s.Filename(), cfg.Width, cfg.Height, s.PixelSize(), s.PixelSize())
		}
	}

	b, err := os.ReadFile(filepath.Join(outDir, ManifestFilename))
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if len(m.Images) != len(specs) {
		t.Fatalf("manifest has %d entries, want %d", len(m.Images), len(specs))
	}
	for i, s := range specs {
		if m.Images[i].Filename != s.Filename() {
			t.Errorf("manifest entry %d filename = %q, want %q", i, m.Images[i].Filename, s.Filename())
		}
	}
	if m.Info.Author != "xcode" || m.Info.Version != 1 {
		t.Errorf("manifest info = %+v, want author=xcode version=1", m.Info)
	}
}
