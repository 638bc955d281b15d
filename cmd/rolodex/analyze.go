package main

import (
	"fmt"

	"github.com/Veraticus/the-rolodex-must-flow/internal/analytics"
	"github.com/Veraticus/the-rolodex-must-flow/internal/cli"
	"github.com/Veraticus/the-rolodex-must-flow/internal/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Submit a contact file to the analytics backend",
		Long: `Submit the raw records of a contact file to the configured analytics
endpoint and print the aggregate counts it returns: total contacts, missing
names, missing emails, missing phones and duplicates.

The endpoint comes from --endpoint, the ROLODEX_ANALYTICS_ENDPOINT
environment variable, or analytics.endpoint in the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().String("endpoint", "", "Analytics endpoint URL (overrides configuration)")
	_ = viper.BindPFlag("analytics.endpoint", cmd.Flags().Lookup("endpoint"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	endpoint := viper.GetString("analytics.endpoint")
	if endpoint == "" {
		return common.NewUserError("no analytics endpoint configured", common.ErrMissingConfig)
	}

	contacts, err := loadContacts(args)
	if err != nil {
		return err
	}

	summary, err := analytics.NewClient(endpoint).Analyze(cmd.Context(), contacts)
	if err != nil {
		return common.NewUserError("analytics request failed", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderAnalyticsSummary(summary))
	return nil
}
