package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vitrina/app"
	"vitrina/config"
	"vitrina/logger"
)

// cli holds the command line state
type cli struct {
	envFile string
	cfg     *config.Config
	root    *cobra.Command
}

func newCLI() *cli {
	c := &cli{}
	c.root = &cobra.Command{
		Use:   "vitrina",
		Short: "Server-rendered storefront for a headless commerce backend",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.loadConfig()
		},
		SilenceUsage: true,
	}
	c.root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded outside production")

	c.root.AddCommand(c.serveCmd())
	c.root.AddCommand(c.exportCatalogCmd())
	return c
}

// Execute runs the command line
func (c *cli) Execute() error {
	defer logger.Sync()
	return c.root.Execute()
}

func (c *cli) loadConfig() error {
	config.LoadDotEnv(c.envFile)
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Set(logger.New(os.Stderr, cfg.LogLevel))
	c.cfg = cfg
	return nil
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.Initialize(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := &http.Server{
				Addr:              c.cfg.Addr(),
				Handler:           a.Handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.L().Infof("🚀 Server starting on %s (%s)", srv.Addr, c.cfg.BaseURL)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed to start: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.L().Infof("🛑 Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func (c *cli) exportCatalogCmd() *cobra.Command {
	var handle, out string
	cmd := &cobra.Command{
		Use:   "export-catalog",
		Short: "Render a collection catalog to a PDF file",
		Long: `Render a collection as a printable catalog and write it as PDF.

Example:
  vitrina export-catalog --handle winter-coats --out winter.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				out = fmt.Sprintf("catalog_%s.pdf", handle)
			}

			a, err := app.Initialize(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			pdf, err := a.Catalog.GeneratePDF(cmd.Context(), handle)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, pdf, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "collection handle")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default catalog_<handle>.pdf)")
	_ = cmd.MarkFlagRequired("handle")
	return cmd
}
