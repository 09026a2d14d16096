// Package iconset generates every bitmap variant of an application icon set
// from a single source image, plus the Contents.json manifest the Xcode
// asset catalog toolchain consumes.
package iconset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/k1LoW/errors"
)

var (
	// ErrSourceNotFound is returned when the source image does not exist.
	ErrSourceNotFound = errors.New("source image not found")
	// ErrResizerUnavailable is returned when no resize backend is usable on
	// this host.
	ErrResizerUnavailable = errors.New("resize backend unavailable")
)

// Generator produces a complete icon set. Generation is fail-fast: a
// partially generated icon set is unusable, so the first per-icon failure
// aborts the whole run. Files already written are left on disk.
type Generator struct {
	specs   []Spec
	resizer Resizer
	logger  *slog.Logger
}

type Option func(*Generator) error

// WithResizer sets the resize backend.
func WithResizer(r Resizer) Option {
	return func(g *Generator) error {
		g.resizer = r
		return nil
	}
}

// WithLogger sets the logger for per-icon progress records.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}

// WithSpecs replaces the default icon table.
func WithSpecs(specs []Spec) Option {
	return func(g *Generator) error {
		g.specs = specs
		return nil
	}
}

// New creates a new Generator.
func New(opts ...Option) (_ *Generator, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	g := &Generator{
		specs: DefaultSpecs(),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if len(g.specs) == 0 {
		return nil, fmt.Errorf("icon table is empty")
	}
	// The same (prefix, scale) may appear for several idioms, writing the
	// same file twice with identical content. A shared filename with a
	// different pixel size would silently overwrite, so reject it.
	seen := map[string]Spec{}
	for _, s := range g.specs {
		name := s.Filename()
		if prev, ok := seen[name]; ok && prev.PixelSize() != s.PixelSize() {
			return nil, fmt.Errorf("conflicting icon filename %s (%gpt@%gx and %gpt@%gx)", name, prev.PointSize, prev.Scale, s.PointSize, s.Scale)
		}
		seen[name] = s
	}
	return g, nil
}

// Specs returns the icon table in generation order.
func (g *Generator) Specs() []Spec {
	return g.specs
}

// Generate writes one correctly sized PNG per icon spec into outDir,
// creating the directory if needed. It returns ErrSourceNotFound before any
// resize is attempted when src does not exist, and aborts on the first
// failed resize.
func (g *Generator) Generate(ctx context.Context, src, outDir string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, src)
	}
	if g.resizer == nil {
		return ErrResizerUnavailable
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}
	g.logger.Info("generating icons",
		slog.String("source", src),
		slog.String("output_dir", outDir),
		slog.String("backend", g.resizer.Name()),
		slog.Int("count", len(g.specs)),
	)
	for _, spec := range g.specs {
		px := spec.PixelSize()
		name := spec.Filename()
		dst := filepath.Join(outDir, name)
		g.logger.Info("resizing icon", slog.String("filename", name))
		if err := g.resizer.Resize(ctx, src, px, px, dst); err != nil {
			g.logger.Error("failed to generate icon",
				slog.String("filename", name),
				slog.Any("error", err),
			)
			return fmt.Errorf("failed to generate %s: %w", name, err)
		}
		g.logger.Info("generated icon",
			slog.String("filename", name),
			slog.Int("pixels", px),
			slog.String("idiom", spec.Idiom),
		)
	}
	return nil
}

// WriteManifest writes the Contents.json manifest for the icon table into
// outDir. It should only be called after Generate succeeded; an unwritten
// manifest after a successful generation leaves the icon set unusable.
func (g *Generator) WriteManifest(outDir string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	m := NewManifest(g.specs)
	b, err := m.Bytes()
	if err != nil {
		return err
	}
	p := filepath.Join(outDir, ManifestFilename)
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", p, err)
	}
	g.logger.Info("wrote manifest", slog.String("filename", ManifestFilename), slog.Int("entries", len(m.Images)))
	return nil
}

// Run performs one complete generation run: all icons, then the manifest.
func (g *Generator) Run(ctx context.Context, src, outDir string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := g.Generate(ctx, src, outDir); err != nil {
		return err
	}
	if err := g.WriteManifest(outDir); err != nil {
		return err
	}
	g.logger.Info("generation completed", slog.Int("count", len(g.specs)))
	return nil
}
