package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/hypergraphstate/hypergraphstate/httpapi"
	"github.com/hypergraphstate/hypergraphstate/loader"
	"github.com/hypergraphstate/hypergraphstate/state"
)

func (c *cli) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve <graph.json>",
		Short: "load a graph document and serve it over HTTP for a layout engine and rendering bridge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("hgsctl: read graph file: %w", err)
			}
			s, _, err := loader.Load(data,
				state.WithStrictValidation(c.cfg.StrictValidation),
				state.WithLogger(c.logger),
			)
			if err != nil {
				return fmt.Errorf("hgsctl: load graph: %w", err)
			}

			httpServer := &http.Server{
				Addr:    c.cfg.ListenAddr,
				Handler: httpapi.New(s, c.logger),
			}

			errCh := make(chan error, 1)
			go func() { errCh <- httpServer.ListenAndServe() }()

			c.logger.Info("hgsctl: serving", "addr", c.cfg.ListenAddr)

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("hgsctl: serve: %w", err)
				}
				return nil
			case <-cmd.Context().Done():
				return httpServer.Shutdown(context.Background())
			}
		},
	}
}
