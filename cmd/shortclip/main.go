// Command shortclip uploads the clipboard to the companion server and
// replaces it with a short link. The daemon subcommand binds Ctrl+U and
// waits; oneshot performs a single pass and exits.
package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/shortclip/shortclip/internal/clipboard"
	"github.com/shortclip/shortclip/internal/config"
	"github.com/shortclip/shortclip/internal/hotkey"
	"github.com/shortclip/shortclip/internal/pipeline"
	"github.com/shortclip/shortclip/internal/uploader"
)

// Version is set at build time
var Version = "dev"

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	root := &cobra.Command{
		Use:           "shortclip",
		Short:         "Upload the clipboard and replace it with a short link",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDaemonCmd(), newOneshotCmd())

	if err := root.Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// setup loads the config and builds the pipeline. Failures here are fatal.
func setup() (*pipeline.Pipeline, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	adapter, err := clipboard.NewSystemAdapter()
	if err != nil {
		return nil, nil, err
	}

	up := uploader.New(cfg.Host, cfg.Token)
	return pipeline.New(adapter, up), cfg, nil
}

func newOneshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "oneshot",
		Short: "Upload the current clipboard once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := setup()
			if err != nil {
				return err
			}
			return p.Run(cmd.Context())
		},
	}
}

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Register the Ctrl+U hotkey and upload on each press",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := setup()
			if err != nil {
				return err
			}

			listener := hotkey.NewSystemListener()
			upload := func() error { return p.Run(context.Background()) }

			if cfg.Tray {
				return runWithTray(cmd.Context(), p, listener, upload)
			}

			return listener.Run(cmd.Context(), upload)
		},
	}
}
