package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
)

var (
	lookupContext  string
	lookupSources  []string
	lookupLimit    int
	lookupJSON     bool
	lookupTimeout  time.Duration
	lookupAttempts bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [term]",
	Short: "Look up definitions for a term",
	Long: `Looks up definitional evidence for a term across the configured
providers and prints the ranked, deduplicated results.

Context tokens sharpen the lookup: pass organisational, legal-domain and
statute tokens separated by "|", for example:

  begrip lookup dwangsom --context "gemeente utrecht|bestuursrecht|awb"`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupContext, "context", "c", "",
		`pipe-delimited context tokens ("org|domein|wet")`)
	lookupCmd.Flags().StringSliceVarP(&lookupSources, "sources", "s", nil,
		"restrict the lookup to these provider names")
	lookupCmd.Flags().IntVarP(&lookupLimit, "limit", "n", domain.DefaultMaxResults,
		"maximum number of results")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output results as JSON")
	lookupCmd.Flags().DurationVar(&lookupTimeout, "timeout", domain.DefaultTimeout,
		"per-provider timeout")
	lookupCmd.Flags().BoolVar(&lookupAttempts, "attempts", false,
		"include the provider attempt log in the output")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	req := domain.LookupRequest{
		Term:       args[0],
		Context:    lookupContext,
		Sources:    lookupSources,
		MaxResults: lookupLimit,
		Timeout:    lookupTimeout,
	}

	report, err := lookupService.Lookup(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if lookupJSON {
		return outputLookupJSON(cmd, report)
	}
	return outputLookupTable(cmd, report)
}

func outputLookupJSON(cmd *cobra.Command, report *domain.LookupReport) error {
	out := report
	if !lookupAttempts {
		trimmed := *report
		trimmed.Attempts = nil
		out = &trimmed
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputLookupTable(cmd *cobra.Command, report *domain.LookupReport) error {
	if len(report.Results) == 0 {
		cmd.Println("No definitions found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range report.Results {
		r := &report.Results[i]

		title, _ := r.Metadata["title"].(string)
		if title == "" {
			title = r.Term
		}

		marker := ""
		if r.Source.Juridical {
			marker = " [juridisch]"
		}

		cmd.Printf("  [%d] %s (%.2f)%s\n", i+1, title, r.Source.Confidence, marker)
		cmd.Printf("      Source: %s\n", r.Source.Name)
		if r.Definition != "" {
			cmd.Printf("      %s\n", r.Definition)
		}
		if r.Source.URL != "" {
			cmd.Printf("      %s\n", r.Source.URL)
		}
		cmd.Println()
	}

	if lookupAttempts {
		cmd.Println("Attempts:")
		for _, a := range report.Attempts {
			status := "ok"
			if a.Err != "" {
				status = "error: " + a.Err
			} else if !a.Success {
				status = "empty"
			}
			if a.Stage != "" {
				cmd.Printf("  %s/%s %q: %s\n", a.Provider, a.Stage, a.Query, status)
			} else {
				cmd.Printf("  %s %q: %s\n", a.Provider, a.Query, status)
			}
		}
	}

	return nil
}
