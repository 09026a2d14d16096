/*
Copyright © 2025 Tobias Gartner

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"github.com/tgartner/iconset"
	"github.com/tgartner/iconset/config"
	"github.com/tgartner/iconset/logger/tick"
)

var (
	backend string
	watch   bool
)

var genCmd = &cobra.Command{
	Use:   "gen SOURCE OUT_DIR",
	Short: "generate the app icon set from a source image",
	Long:  `generate the app icon set from a source image.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		src := args[0]
		outDir := args[1]

		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		b := backend
		if b == "" {
			b = cfg.Backend
		}
		r, err := iconset.DetectResizer(b, cfg.ResizeCommand)
		if err != nil {
			return err
		}

		logger, closeLog, err := newGenLogger()
		if err != nil {
			return err
		}
		defer closeLog()

		specs := iconset.DefaultSpecs()
		for _, icon := range cfg.ExtraIcons {
			specs = append(specs, iconset.Spec{
				PointSize: icon.Size,
				Scale:     icon.Scale,
				Prefix:    icon.Prefix,
				Idiom:     icon.Idiom,
			})
		}
		g, err := iconset.New(
			iconset.WithResizer(r),
			iconset.WithLogger(logger),
			iconset.WithSpecs(specs),
		)
		if err != nil {
			return err
		}
		if err := g.Run(ctx, src, outDir); err != nil {
			return err
		}
		if !watch {
			return nil
		}
		return watchAndRegenerate(cmd, g, src, outDir)
	},
}

// newGenLogger fans records out to the console progress handler and to a
// JSON run log in the state directory.
func newGenLogger() (*slog.Logger, func(), error) {
	th, err := tick.New(slog.NewTextHandler(os.Stdout, nil))
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(config.StateHomePath(), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(config.StateHomePath(), "run.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slogmulti.Fanout(
		th,
		slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))
	return logger, func() { _ = f.Close() }, nil
}

// watchAndRegenerate reruns the whole generation whenever the source image
// changes. Failures are reported but do not stop watching.
func watchAndRegenerate(cmd *cobra.Command, g *iconset.Generator, src, outDir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory: editors replace files on save, which drops a
	// watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(src)); err != nil {
		return err
	}
	cmd.Println(color.CyanString("Watching %s for changes. Press Ctrl+C to stop.", src))
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(src) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := g.Run(ctx, src, outDir); err != nil {
				cmd.Println(color.RedString("regeneration failed: %v", err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().StringVarP(&backend, "backend", "b", "", "resize backend (auto|sips|magick|go|command)")
	genCmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when the source image changes")
}
