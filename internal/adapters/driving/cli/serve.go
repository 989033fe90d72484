package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vondel-labs/begrip-cli/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the JSON HTTP API for local tooling and editor integrations.

Endpoints:
  GET /v1/lookup?term=...&context=...&sources=...&limit=...
  GET /v1/providers
  GET /healthz`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8710", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	server := httpapi.NewServer(lookupService)
	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on http://%s\n", serveAddr)
	return server.ListenAndServe(cmd.Context(), serveAddr)
}
