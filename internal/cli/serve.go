package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/codelens/internal/config"
	"github.com/dshills/codelens/internal/logger"
	"github.com/dshills/codelens/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the review HTTP API",
	Long: "Serve POST /api/review, GET /api/models and GET /health. Requests may carry their own " +
		"apiKey; otherwise GEMINI_API_KEY is used.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := buildOverrides()
		if flagAddr != "" {
			overrides["addr"] = flagAddr
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}

		log := logger.New(cfg.Log, os.Stderr)
		svc, err := newService(cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitConfigError
			return nil
		}
		if cfg.APIKey == "" {
			log.Warn("no fallback API key configured; requests must carry apiKey")
		}

		srv := server.NewServer(cfg.Server.Addr, svc, cfg.Server.MaxBodyBytes, log)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			log.Info("received shutdown signal", "signal", sig.String())
		case err := <-errCh:
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
			}
			return nil
		}

		if err := srv.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to stop server: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default: localhost:8080)")
	serveCmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "Override the generateContent API root")
}
