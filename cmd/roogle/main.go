// Command roogle searches a rustdoc JSON index by function signature.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termfx/roogle/internal/rconfig"
)

var configPath string
var indexDir string

var rootCmd = &cobra.Command{
	Use:   "roogle",
	Short: "Type-directed search over rustdoc JSON indexes",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a roogle TOML config file")
	rootCmd.PersistentFlags().StringVarP(&indexDir, "index", "i", "", "index directory (default roogle-index)")
}

// applyIndexOverride layers the -i/--index flag, if given, over a loaded
// config's IndexDir. Highest precedence: flag, then env, then file,
// then default (see rconfig.Load).
func applyIndexOverride(cfg *rconfig.Config) {
	if indexDir != "" {
		cfg.IndexDir = indexDir
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
