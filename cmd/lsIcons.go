package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tgartner/iconset"
	"github.com/tgartner/iconset/config"
)

var lsIconsCmd = &cobra.Command{
	Use:   "ls-icons",
	Short: "list icon variants that would be generated",
	Long:  `list icon variants that would be generated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		specs := iconset.DefaultSpecs()
		for _, icon := range cfg.ExtraIcons {
			specs = append(specs, iconset.Spec{
				PointSize: icon.Size,
				Scale:     icon.Scale,
				Prefix:    icon.Prefix,
				Idiom:     icon.Idiom,
			})
		}
		for _, s := range specs {
			fmt.Printf("%s\t%dx%dpx\t%s\t%s\n", s.Filename(), s.PixelSize(), s.PixelSize(), s.ScaleString(), s.Idiom)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsIconsCmd)
}
