package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open OUT_DIR",
	Short: "open a generated icon set directory in the desktop shell",
	Long:  `open a generated icon set directory in the desktop shell.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		fi, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		return browser.OpenFile(dir)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
