// Package cli provides the cobra command tree for the begrip binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/vondel-labs/begrip-cli/internal/core/ports/driving"
	"github.com/vondel-labs/begrip-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// lookupService is injected by the composition root before Execute.
var lookupService driving.LookupService

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "begrip",
	Short: "Federated definition lookup for Dutch legal and general terms",
	Long: `Begrip looks up definitional evidence for a term across Dutch legal
registers (wetten.overheid.nl, rechtspraak.nl), encyclopedias and web
search, then ranks and deduplicates the evidence into a single list.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging to stderr")
}

// SetLookupService injects the lookup service into the command tree.
func SetLookupService(svc driving.LookupService) {
	lookupService = svc
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
