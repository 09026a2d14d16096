// Package tick renders generation log records as human-readable progress
// lines, with a spinner while a resize is in flight.
package tick

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

var _ slog.Handler = (*tickHandler)(nil)

type tickHandler struct {
	handler slog.Handler
	spinner *spinner.Spinner
	stdout  io.Writer
}

func New(h slog.Handler) (_ *tickHandler, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	stdout := colorable.NewColorableStdout()
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stdout))
	if err := s.Color("yellow"); err != nil {
		return nil, err
	}
	s.Start()
	s.Disable()
	return &tickHandler{
		handler: h,
		spinner: s,
		stdout:  stdout,
	}, nil
}

func (h *tickHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *tickHandler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	switch r.Message {
	case "generating icons":
		var src, outDir string
		r.Attrs(func(attr slog.Attr) bool {
			switch attr.Key {
			case "source":
				src = attr.Value.String()
			case "output_dir":
				outDir = attr.Value.String()
			}
			return true
		})
		return h.write(fmt.Sprintf("Generating icons from %s\nOutput directory: %s\n", bold(src), bold(outDir)))
	case "resizing icon":
		if !h.spinner.Enabled() {
			h.spinner.Enable()
		}
		return nil
	case "generated icon":
		h.stopSpinner()
		var filename, idiom string
		var pixels int64
		r.Attrs(func(attr slog.Attr) bool {
			switch attr.Key {
			case "filename":
				filename = attr.Value.String()
			case "idiom":
				idiom = attr.Value.String()
			case "pixels":
				pixels = attr.Value.Int64()
			}
			return true
		})
		return h.write(fmt.Sprintf("%s %s (%dx%dpx) %s\n", green("✓"), filename, pixels, pixels, gray(idiom)))
	case "failed to generate icon":
		h.stopSpinner()
		var filename, errMsg string
		r.Attrs(func(attr slog.Attr) bool {
			switch attr.Key {
			case "filename":
				filename = attr.Value.String()
			case "error":
				errMsg = attr.Value.String()
			}
			return true
		})
		return h.write(fmt.Sprintf("%s %s: %s\n", red("✗"), filename, errMsg))
	case "wrote manifest":
		return h.write(fmt.Sprintf("%s %s\n", green("✓"), "Contents.json"))
	case "generation completed":
		var count int64
		r.Attrs(func(attr slog.Attr) bool {
			if attr.Key == "count" {
				count = attr.Value.Int64()
			}
			return true
		})
		return h.write(fmt.Sprintf("%s\n", green(fmt.Sprintf("All %d icons generated", count))))
	}
	return nil
}

func (h *tickHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &tickHandler{handler: h.handler.WithAttrs(attrs), spinner: h.spinner, stdout: h.stdout}
}

func (h *tickHandler) WithGroup(name string) slog.Handler {
	return &tickHandler{handler: h.handler.WithGroup(name), spinner: h.spinner, stdout: h.stdout}
}

func (h *tickHandler) stopSpinner() {
	if h.spinner.Enabled() {
		h.spinner.Disable()
	}
}

func (h *tickHandler) write(s string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	_, err = h.stdout.Write([]byte(s))
	return err
}
