package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var providersJSON bool

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured definition providers",
	RunE:  runProviders,
}

func init() {
	providersCmd.Flags().BoolVar(&providersJSON, "json", false, "output providers as JSON")
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	providers := lookupService.Providers()

	if providersJSON {
		data, err := json.MarshalIndent(providers, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal providers: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(providers) == 0 {
		cmd.Println("No providers configured.")
		return nil
	}

	cmd.Println("Providers:")
	cmd.Println()
	for _, p := range providers {
		state := "enabled"
		if !p.Enabled {
			state = "disabled"
		}
		marker := ""
		if p.Juridical {
			marker = " [juridisch]"
		}
		cmd.Printf("  %s (%s, weight %.2f, %s)%s\n", p.Name, p.Protocol, p.Weight, state, marker)
		if p.BaseURL != "" {
			cmd.Printf("      %s\n", p.BaseURL)
		}
	}

	return nil
}
