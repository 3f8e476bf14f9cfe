// Command hgsctl loads a hierarchical graph visualization document, applies
// collapse/expand operations, and either prints the resulting visible state
// or serves it over HTTP for a layout engine and rendering bridge (§6).
//
// The core is in-memory only (no persistent store, no undo log beyond the
// natural collapse/expand inverse); hgsctl reflects that directly — every
// invocation loads fresh from a file rather than attaching to a running
// session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hypergraphstate/hypergraphstate/cliconfig"
)

// cli holds state shared across subcommands, mirroring the teacher pack's
// own CLI-struct-plus-PersistentPreRunE pattern.
type cli struct {
	logger *log.Logger
	cfg    *cliconfig.Config
}

func newCLI() *cli {
	return &cli{logger: log.Default()}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "hgsctl",
		Short:        "hgsctl inspects and serves hierarchical graph visualization state",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(cmd.Flags())
			if err != nil {
				return err
			}
			c.cfg = cfg
			if cfg.LogLevel == "debug" {
				c.logger.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}

	root.PersistentFlags().String("listen_addr", "", "address the serve command listens on")
	root.PersistentFlags().String("log_level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("strict_validation", true, "run invariant checks after every public mutation")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := newCLI()
	if err := c.rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
