package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/the-rolodex-must-flow/internal/analytics"
	"github.com/Veraticus/the-rolodex-must-flow/internal/classify"
	"github.com/Veraticus/the-rolodex-must-flow/internal/cli"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/Veraticus/the-rolodex-must-flow/internal/review"
	"github.com/Veraticus/the-rolodex-must-flow/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func cleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [files...]",
		Short: "Normalize and classify contact files",
		Long: `Import one or more CSV or vCard contact exports, normalize every record,
and report duplicates, invalid emails, incomplete entries and similar contacts.

Examples:
  # Clean a single export and print the summary
  rolodex clean ~/Downloads/contacts.csv

  # Clean, review interactively, and export the survivors
  rolodex clean contacts.csv --review --output cleaned.csv

  # Export with the fixed Outlook column set
  rolodex clean contacts.csv --output cleaned.csv --full-schema`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClean,
	}

	cmd.Flags().Bool("review", false, "Review anomalies interactively before exporting")
	cmd.Flags().StringP("output", "o", "", "Export the cleaned contacts to this file")
	cmd.Flags().StringP("format", "f", "", "Export format (csv, json, xlsx, vcf); inferred from --output when unset")
	cmd.Flags().Bool("full-schema", false, "Use the fixed Outlook-style CSV column set")
	cmd.Flags().Bool("analytics", false, "Submit raw records to the configured analytics endpoint (best effort)")
	cmd.Flags().Int("preview", 5, "Records shown per category in the summary")

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	interactive, _ := cmd.Flags().GetBool("review")
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	fullSchema, _ := cmd.Flags().GetBool("full-schema")
	submitAnalytics, _ := cmd.Flags().GetBool("analytics")
	previewCount, _ := cmd.Flags().GetInt("preview")

	raw, err := loadContacts(args)
	if err != nil {
		return err
	}

	// Best-effort submission of the raw records; never blocks cleaning.
	// The done channel is drained before the command returns so the POST
	// is not killed by process exit.
	var analyticsDone <-chan struct{}
	if submitAnalytics {
		endpoint := viper.GetString("analytics.endpoint")
		if endpoint == "" {
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("analytics.endpoint is not configured, skipping submission"))
		} else {
			analyticsDone = analytics.NewClient(endpoint).SubmitAsync(raw)
		}
	}

	engine := classify.New(newNormalizer())
	result := engine.Classify(cmd.Context(), raw)

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatTitle("Contact Cleaning"))
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCleaningSummary(result))
	for _, name := range model.SummaryCategories {
		if preview := cli.RenderCategoryPreview(name, result.Summary.Category(name), previewCount); preview != "" {
			fmt.Fprintln(cmd.OutOrStdout(), preview)
		}
	}

	session := review.NewSession(result)
	if interactive && !result.Summary.IsEmpty() {
		session, err = tui.Run(cmd.Context(), tui.Config{
			Session:    session,
			Normalizer: newNormalizer(),
		})
		if err != nil {
			return err
		}
	}

	if output != "" {
		if err := exportContacts(output, format, fullSchema, session.Active); err != nil {
			return err
		}
	}

	waitForAnalytics(cmd.Context(), analyticsDone)
	return nil
}

// waitForAnalytics blocks until the in-flight submission finishes, bounded
// by its own timeout and by command cancellation.
func waitForAnalytics(ctx context.Context, done <-chan struct{}) {
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(30 * time.Second):
	case <-ctx.Done():
	}
}
