package iconset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	osexec "os/exec"
	"strconv"

	"github.com/k1LoW/exec"
	"github.com/nfnt/resize"
	"github.com/tgartner/iconset/template"
)

// Resizer resizes a source image to an exact square pixel size and writes
// the result as a PNG file. Implementations report failure either via a
// non-nil error or by not producing the destination file.
type Resizer interface {
	Name() string
	Resize(ctx context.Context, src string, width, height int, dst string) error
}

// sipsResizer shells out to the macOS sips tool.
type sipsResizer struct{}

func (sipsResizer) Name() string { return "sips" }

func (sipsResizer) Resize(ctx context.Context, src string, width, height int, dst string) error {
	// sips takes height before width
	cmd := exec.CommandContext(ctx, "sips",
		"-z", strconv.Itoa(height), strconv.Itoa(width),
		src,
		"--out", dst,
		"--setProperty", "format", "png",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run sips: %w\nstderr: %s", err, stderr.String())
	}
	// sips sometimes reports success on stderr-only failures
	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("sips produced no output file: %w", err)
	}
	return nil
}

// magickResizer shells out to ImageMagick.
type magickResizer struct {
	bin string
}

func (r magickResizer) Name() string { return r.bin }

func (r magickResizer) Resize(ctx context.Context, src string, width, height int, dst string) error {
	// "!" forces the exact geometry regardless of aspect ratio
	cmd := exec.CommandContext(ctx, r.bin, src, "-resize", fmt.Sprintf("%dx%d!", width, height), dst)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w\nstderr: %s", r.bin, err, stderr.String())
	}
	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("%s produced no output file: %w", r.bin, err)
	}
	return nil
}

// goResizer resizes in-process with Lanczos resampling. It is the fallback
// backend and is always available.
type goResizer struct{}

func (goResizer) Name() string { return "go" }

func (goResizer) Resize(ctx context.Context, src string, width, height int, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source image %s: %w", src, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode source image %s: %w", src, err)
	}
	scaled := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", dst, err)
	}
	defer out.Close()
	if err := png.Encode(out, scaled); err != nil {
		return fmt.Errorf("failed to encode %s: %w", dst, err)
	}
	return nil
}

// commandResizer runs a user-configured shell command. The command string
// supports template variables: {{src}}, {{width}}, {{height}}, {{dst}} and
// {{env.XXX}}.
type commandResizer struct {
	command string
}

func (commandResizer) Name() string { return "command" }

func (r commandResizer) Resize(ctx context.Context, src string, width, height int, dst string) error {
	store := map[string]any{
		"src":    src,
		"width":  width,
		"height": height,
		"dst":    dst,
		"env":    template.EnvironToMap(),
	}
	expanded, err := template.Expand(r.command, store)
	if err != nil {
		return fmt.Errorf("failed to expand resize command template: %w", err)
	}
	shell, args, err := buildCommand(expanded)
	if err != nil {
		return fmt.Errorf("failed to build resize command: %w", err)
	}
	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Env = os.Environ()
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run resize command: %w\nstderr: %s", err, stderr.String())
	}
	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("resize command produced no output file: %w", err)
	}
	return nil
}

// DetectResizer resolves a backend name to a Resizer. With backend "auto"
// (or empty) it prefers a configured custom command, then sips, then
// ImageMagick, then the built-in Go backend. Naming an external backend
// whose binary is not installed returns ErrResizerUnavailable.
func DetectResizer(backend, customCmd string) (Resizer, error) {
	switch backend {
	case "", "auto":
		if customCmd != "" {
			return commandResizer{command: customCmd}, nil
		}
		if _, err := osexec.LookPath("sips"); err == nil {
			return sipsResizer{}, nil
		}
		for _, bin := range []string{"magick", "convert"} {
			if _, err := osexec.LookPath(bin); err == nil {
				return magickResizer{bin: bin}, nil
			}
		}
		return goResizer{}, nil
	case "sips":
		if _, err := osexec.LookPath("sips"); err != nil {
			return nil, fmt.Errorf("%w: sips not found (macOS only)", ErrResizerUnavailable)
		}
		return sipsResizer{}, nil
	case "magick":
		for _, bin := range []string{"magick", "convert"} {
			if _, err := osexec.LookPath(bin); err == nil {
				return magickResizer{bin: bin}, nil
			}
		}
		return nil, fmt.Errorf("%w: ImageMagick not found", ErrResizerUnavailable)
	case "go":
		return goResizer{}, nil
	case "command":
		if customCmd == "" {
			return nil, fmt.Errorf("%w: no resize command configured", ErrResizerUnavailable)
		}
		return commandResizer{command: customCmd}, nil
	default:
		return nil, fmt.Errorf("unknown resize backend: %s", backend)
	}
}

// buildCommand parses a command string and returns the command and arguments.
func buildCommand(cmdStr string) (string, []string, error) {
	shell, err := detectShell()
	if err != nil {
		return "", nil, err
	}
	return shell, []string{"-c", cmdStr}, nil
}

// detectShell detects the current shell.
func detectShell() (string, error) {
	shells := []string{
		os.Getenv("SHELL"),
		"/bin/bash",
		"/bin/sh",
	}
	for _, shell := range shells {
		if shell == "" {
			continue
		}
		if _, err := os.Stat(shell); err == nil {
			return shell, nil
		}
	}
	return "", fmt.Errorf("failed to detect shell")
}
