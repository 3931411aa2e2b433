package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/termfx/roogle/internal/httpapi"
	"github.com/termfx/roogle/internal/rconfig"
	"github.com/termfx/roogle/internal/rlog"
	"github.com/termfx/roogle/internal/rustdoc"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search engine over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "listen", "", "override the configured listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := rconfig.Load(configPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}
	applyIndexOverride(&cfg)

	log := rlog.New(rlog.ParseLevel(cfg.LogLevel), os.Stderr)

	idx, loadErrs := rustdoc.LoadIndex(cfg.IndexDir, log)
	for _, e := range loadErrs {
		log.Errorf("%v", e)
	}
	log.Infof("loaded %d crates from %s", len(idx.Crates), cfg.IndexDir)

	srv := httpapi.New(cfg.ListenAddr, idx, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}
