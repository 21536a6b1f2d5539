package main

import (
	"os"

	"github.com/spf13/cobra"

	"payrecon/internal/config"
	"payrecon/internal/output"
)

func newSynonymsCmd() *cobra.Command {
	var file, format string

	cmd := &cobra.Command{
		Use:   "synonyms",
		Short: "Print the effective column synonym table",
		Long: `Print the column labels accepted for each source and role.

With --format yaml the output is a valid synonyms file that can be
edited and passed back with --synonyms or SYNONYMS_FILE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("synonyms") {
				file = os.Getenv("SYNONYMS_FILE")
			}
			synonyms, err := config.LoadSynonyms(file)
			if err != nil {
				return err
			}

			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			switch f {
			case output.FormatYAML:
				data, err := config.MarshalSynonyms(synonyms)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			case output.FormatJSON:
				return output.NewFormatter(f).Format(cmd.OutOrStdout(), synonyms)
			default:
				return output.NewFormatter(output.FormatTable).Format(cmd.OutOrStdout(), output.SynonymsTable(synonyms))
			}
		},
	}

	cmd.Flags().StringVar(&file, "synonyms", "", "YAML file with column synonyms")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	return cmd
}
