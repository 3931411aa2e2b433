package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/termfx/roogle/internal/query"
	"github.com/termfx/roogle/internal/rconfig"
	"github.com/termfx/roogle/internal/rlog"
	"github.com/termfx/roogle/internal/rustdoc"
	"github.com/termfx/roogle/internal/search"
)

var (
	searchScope           string
	searchThreshold       float64
	searchLimit           int
	searchSingleCrateFile string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one query, or drop into an interactive prompt with none given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchScope, "scope", "", "crate:name or set:name")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0, "override the configured similarity threshold")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum hits to print")
	searchCmd.Flags().StringVar(&searchSingleCrateFile, "single-crate-file", "", "load a single crate JSON file instead of the configured index directory")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := rconfig.Load(configPath)
	if err != nil {
		return err
	}
	applyIndexOverride(&cfg)
	log := rlog.New(rlog.ParseLevel(cfg.LogLevel), os.Stderr)

	idx, err := buildIndex(cfg, log)
	if err != nil {
		return err
	}

	threshold := cfg.Threshold
	if searchThreshold > 0 {
		threshold = searchThreshold
	}

	idx, scope := resolveScope(idx)

	if len(args) == 1 {
		return runOneQuery(idx, args[0], scope, float32(threshold))
	}
	return runREPL(idx, scope, float32(threshold))
}

func buildIndex(cfg rconfig.Config, log *rlog.Logger) (*rustdoc.Index, error) {
	if searchSingleCrateFile != "" {
		krate, err := rustdoc.LoadCrate(searchSingleCrateFile)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(searchSingleCrateFile), ".json")
		return &rustdoc.Index{
			Crates: map[string]*rustdoc.Crate{name: krate},
			Sets:   map[string][]string{},
			ADTs:   map[string][]string{},
		}, nil
	}

	idx, loadErrs := rustdoc.LoadIndex(cfg.IndexDir, log)
	for _, e := range loadErrs {
		log.Errorf("%v", e)
	}
	return idx, nil
}

func resolveScope(idx *rustdoc.Index) (*rustdoc.Index, search.Scope) {
	if scope, ok := search.ParseScope(searchScope); ok {
		return idx, scope
	}
	names := make([]string, 0, len(idx.Crates))
	for name := range idx.Crates {
		names = append(names, name)
	}
	sets := make(map[string][]string, len(idx.Sets)+1)
	for name, members := range idx.Sets {
		sets[name] = members
	}
	sets["__all__"] = names
	return &rustdoc.Index{Crates: idx.Crates, Sets: sets, ADTs: idx.ADTs}, search.Scope{Set: "__all__"}
}

func runOneQuery(idx *rustdoc.Index, text string, scope search.Scope, threshold float32) error {
	q, err := query.Parse(text)
	if err != nil {
		return err
	}
	hits, err := search.Search(idx, q, scope, threshold)
	if err != nil {
		return err
	}
	printHits(hits)
	return nil
}

// runREPL mirrors the original CLI's rustyline-driven read loop, minus
// line editing: read a query, search, print top hits, repeat until EOF.
func runREPL(idx *rustdoc.Index, scope search.Scope, threshold float32) error {
	fmt.Println("roogle> enter a query, Ctrl-D to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		q, err := query.Parse(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		hits, err := search.Search(idx, q, scope, threshold)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		printHits(hits)
	}
	return scanner.Err()
}

func printHits(hits []search.Hit) {
	limit := searchLimit
	if limit <= 0 || limit > len(hits) {
		limit = len(hits)
	}
	for _, h := range hits[:limit] {
		fmt.Printf("%s  (%.3f)\n", strings.Join(h.Path, "::"), h.Similarities.Score())
	}
}
