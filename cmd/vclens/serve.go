package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vclens/vclens/internal/config"
	"github.com/vclens/vclens/internal/home"
	"github.com/vclens/vclens/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the vclens server",
	Long: `Start the vclens HTTP server.

The server provides:
  - POST /extract          - Upload contracts and extract their details
  - GET  /files            - List uploaded contracts
  - POST /chat/{id}        - Ask a question about an uploaded contract
  - GET  /calls            - Recorded model calls
  - GET  /health, /status  - Health and status checks

Examples:
  vclens serve                   # Start on default port 8000
  vclens serve --port 3000       # Start on custom port
  vclens serve --host 127.0.0.1  # Bind to localhost only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Load configuration, preferring an explicit --config path
		cfgPath := cfgFile
		if cfgPath == "" && h.ConfigExists() {
			cfgPath = h.ConfigPath()
		}
		cm, err := config.NewManager(cfgPath)
		if err != nil {
			return err
		}
		cm.WatchConfig()

		// Create server
		srv, err := server.New(server.Config{
			Host:          serveHost,
			Port:          servePort,
			ConfigManager: cm,
			Logger:        logger,
			Home:          h,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
