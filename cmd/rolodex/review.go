package main

import (
	"fmt"

	"github.com/Veraticus/the-rolodex-must-flow/internal/classify"
	"github.com/Veraticus/the-rolodex-must-flow/internal/cli"
	"github.com/Veraticus/the-rolodex-must-flow/internal/review"
	"github.com/Veraticus/the-rolodex-must-flow/internal/tui"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review [file]",
		Short: "Clean a contact file and review the anomalies interactively",
		Long: `Import a contact export, classify it, and open the interactive review
screen. On quit the surviving contacts can be exported.

Examples:
  rolodex review contacts.csv
  rolodex review contacts.vcf --output cleaned.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runReview,
	}

	cmd.Flags().StringP("output", "o", "", "Export the reviewed contacts to this file on quit")
	cmd.Flags().StringP("format", "f", "", "Export format (csv, json, xlsx, vcf); inferred from --output when unset")
	cmd.Flags().Bool("full-schema", false, "Use the fixed Outlook-style CSV column set")

	return cmd
}

func runReview(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	fullSchema, _ := cmd.Flags().GetBool("full-schema")

	raw, err := loadContacts(args)
	if err != nil {
		return err
	}

	norm := newNormalizer()
	result := classify.New(norm).Classify(cmd.Context(), raw)

	session, err := tui.Run(cmd.Context(), tui.Config{
		Session:    review.NewSession(result),
		Normalizer: norm,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"Review finished: %d active, %d deleted, %d flagged",
		len(session.Active), len(session.Deleted), session.FlaggedCount())))

	if output == "" {
		return nil
	}
	return exportContacts(output, format, fullSchema, session.Active)
}
