package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/termfx/roogle/internal/rconfig"
	"github.com/termfx/roogle/internal/rlog"
	"github.com/termfx/roogle/internal/rustdoc"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "List the crates and sets available under the configured index",
	Args:  cobra.NoArgs,
	RunE:  runScopes,
}

func init() {
	rootCmd.AddCommand(scopesCmd)
}

func runScopes(cmd *cobra.Command, args []string) error {
	cfg, err := rconfig.Load(configPath)
	if err != nil {
		return err
	}
	applyIndexOverride(&cfg)
	log := rlog.New(rlog.ParseLevel(cfg.LogLevel), os.Stderr)

	idx, loadErrs := rustdoc.LoadIndex(cfg.IndexDir, log)
	for _, e := range loadErrs {
		log.Errorf("%v", e)
	}

	crates := make([]string, 0, len(idx.Crates))
	for name := range idx.Crates {
		crates = append(crates, name)
	}
	sort.Strings(crates)
	fmt.Println("crates:")
	for _, c := range crates {
		fmt.Printf("  crate:%s\n", c)
	}

	sets := make([]string, 0, len(idx.Sets))
	for name := range idx.Sets {
		sets = append(sets, name)
	}
	sort.Strings(sets)
	fmt.Println("sets:")
	for _, s := range sets {
		fmt.Printf("  set:%s\n", s)
	}
	return nil
}
