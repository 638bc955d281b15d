package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/contactio"
	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a contact file to another format",
		Long: `Convert a CSV or vCard contact file to CSV, JSON, Excel or vCard without
cleaning it. The output defaults to converted_<name>.<ext> next to the input.

Examples:
  rolodex convert contacts.csv --to json
  rolodex convert contacts.csv --to xlsx --output contacts.xlsx
  rolodex convert contacts.vcf --to csv`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().String("to", "json", "Target format (csv, json, xlsx, vcf)")
	cmd.Flags().StringP("output", "o", "", "Output file (default: converted_<name>.<ext>)")
	cmd.Flags().Bool("full-schema", false, "Use the fixed Outlook-style CSV column set")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("to")
	output, _ := cmd.Flags().GetString("output")
	fullSchema, _ := cmd.Flags().GetBool("full-schema")

	format, err := contactio.ParseFormat(target)
	if err != nil {
		return err
	}

	contacts, err := loadContacts(args)
	if err != nil {
		return err
	}

	if output == "" {
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		output = filepath.Join(filepath.Dir(args[0]), fmt.Sprintf("converted_%s.%s", base, format.Extension()))
	}

	if err := contactio.WriteFile(output, contacts, contactio.ExportOptions{
		Format:     format,
		FullSchema: fullSchema,
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d contacts to %s\n", len(contacts), output)
	return nil
}
