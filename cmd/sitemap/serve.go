package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grupomymce/sitemap-tools/internal/api"
	"github.com/grupomymce/sitemap-tools/internal/audit"
	"github.com/grupomymce/sitemap-tools/internal/sitemap"
	"github.com/grupomymce/sitemap-tools/internal/storage"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site with clean URLs and the sitemap API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		store, err := storage.NewStore(cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}

		gen := generatorCollector()
		server := api.NewServer(cfg.Server.Port, api.Site{
			Root:        cfg.Site.Root,
			SitemapPath: sitePath(cfg.Generator.Output),
			Generator:   newGenerator(),
			Verifier:    sitemap.NewVerifier(verifierCollector(), cfg.Domain()),
			Auditor:     audit.NewAuditor(gen, cfg.Domain()),
			Checker:     newChecker(cfg.Linkcheck.Parallel),
		}, store)

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Starting API server on port %d", cfg.Server.Port)
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		return waitForShutdown(server, errCh)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on")
}

func waitForShutdown(server *api.Server, errCh <-chan error) error {
	// Handle system signals for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errCh:
		return err
	case <-sigChan:
	}
	log.Println("Shutting down...")

	// Graceful server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
		return err
	}
	log.Println("Server shut down gracefully")
	return nil
}
