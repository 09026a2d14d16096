package cmd

import (
	"os/exec"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tgartner/iconset"
	"github.com/tgartner/iconset/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check iconset environment and configuration",
	Long:  `Check iconset environment and configuration to ensure everything is set up correctly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Color setup
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check external resize tools
		cmd.Print("🔍 Checking sips ... ")
		if path, err := exec.LookPath("sips"); err != nil {
			yellow.Println("⚠️ NOT FOUND")
			cmd.Println("   sips is only available on macOS")
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Found at: %s\n", path)
		}

		cmd.Print("🔍 Checking ImageMagick ... ")
		found := false
		for _, bin := range []string{"magick", "convert"} {
			if path, err := exec.LookPath(bin); err == nil {
				green.Println("✓ OK")
				cmd.Printf("   Found at: %s\n", path)
				found = true
				break
			}
		}
		if !found {
			yellow.Println("⚠️ NOT FOUND")
			cmd.Println("   Install ImageMagick for an external resize backend")
		}

		// 2. Check configuration file
		cmd.Print("🔧 Checking configuration file ... ")
		cfg, err := config.Load(profile)
		if err != nil {
			red.Println("✗ CONFIG ERROR")
			cmd.Printf("   Error loading config: %v\n", err)
			allOK = false
			cfg = &config.Config{}
		} else {
			green.Println("✓ OK")
			cmd.Println("   Configuration loaded successfully")
		}

		// 3. Check which backend a run would use
		cmd.Print("🎨 Checking resize backend ... ")
		r, err := iconset.DetectResizer(cfg.Backend, cfg.ResizeCommand)
		if err != nil {
			red.Println("✗ UNAVAILABLE")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Selected backend: %s\n", r.Name())
		}

		// Final message
		cmd.Println()
		if allOK {
			bold.Printf("🎉 ")
			green.Print("All checks passed! You are ready to use iconset")
			bold.Println(".")
			cmd.Println()
			cmd.Println("Try generating an icon set:")
			yellow.Println("  iconset gen icon.png AppIcon.appiconset")
		} else {
			red.Println("⚠️  Setup is incomplete.")
			cmd.Println("\nPlease fix the issues above to use iconset properly.")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
