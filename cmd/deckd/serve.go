package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpadapter "github.com/transudeck/deckd/internal/adapters/primary/http"
	"github.com/transudeck/deckd/internal/adapters/secondary/config"
	"github.com/transudeck/deckd/internal/adapters/secondary/export"
	"github.com/transudeck/deckd/internal/adapters/secondary/genai"
	"github.com/transudeck/deckd/internal/adapters/secondary/renderer"
	"github.com/transudeck/deckd/internal/domain/ports"
	"github.com/transudeck/deckd/internal/domain/services"
)

var (
	// Serve command flags
	servePort int
	serveHost string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the deck service",
	Long: `Start the HTTP server exposing the deck API: translation and
summarization, text segmentation into slides, deck editing, preview
projection, and export.

Example:
  deckd serve
  deckd serve --port 8080 --host 0.0.0.0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	loader := config.NewTOMLLoader()
	merger := config.NewMerger()

	global, err := loader.LoadGlobal(ctx)
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	local, err := loader.LoadLocal(ctx, workingDir)
	if err != nil {
		return fmt.Errorf("loading local config: %w", err)
	}

	cfg := merger.Merge(global, local)

	// Flag overrides take precedence over any config file
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Verbose = true
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	md := renderer.NewGoldmarkRenderer()

	exporter, err := export.NewService(cfg.Export.OutputDir, cfg.Export.GetTheme(), md)
	if err != nil {
		return fmt.Errorf("initializing exporter: %w", err)
	}

	httpClient := ports.NewRealHTTPClient(ports.HTTPClientConfig{
		Timeout:    cfg.GenAI.GetRequestTimeout(),
		MaxRetries: cfg.GenAI.GetMaxRetries(),
		UserAgent:  "deckd/" + Version,
	})

	factory := func(apiKey, apiURL string) *httpadapter.GenAIServices {
		client := genai.NewClient(apiURL, apiKey, httpClient)
		return &httpadapter.GenAIServices{
			Translation: services.NewTranslationPipeline(
				genai.NewTranslator(client),
				genai.NewSummarizer(client),
			),
			Catalog: genai.NewModelCatalog(client),
		}
	}

	server := httpadapter.NewServer(httpadapter.ServerDeps{
		Deck:      services.NewDeckStore(),
		Projector: services.NewProjectorService(md),
		Exporter:  exporter,
		Validator: genai.NewValidator(httpClient),
		CredStore: loader,
		Factory:   factory,
	}, cfg)

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	fmt.Printf("deckd serving on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	if !cfg.GenAI.IsConfigured() {
		fmt.Println("GenAI API not configured; POST /api/config to set credentials")
	}

	<-ctx.Done()

	return server.Stop(context.Background())
}
