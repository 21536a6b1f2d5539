package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"payrecon/internal/testkit"
)

func newSampleCmd() *cobra.Command {
	cfg := testkit.DefaultPopulationConfig()

	cmd := &cobra.Command{
		Use:   "sample OUTPUT.xlsx",
		Short: "Write a synthetic workbook to try reconcile on",
		Long: `Write a workbook with FATURA and FOLHA sheets for a synthetic
population, including mismatched, invoice-only and payroll-only people.

Example: payrecon sample demo.xlsx --people 200 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.People <= 0 {
				return fmt.Errorf("--people must be positive")
			}
			pop := testkit.NewPopulationGenerator(cfg).Generate()
			if err := pop.Workbook.WriteFile(args[0]); err != nil {
				return err
			}

			nonZero := 0
			for _, diff := range pop.Expected {
				if !diff.IsZero() {
					nonZero++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d people, %d with a difference\n", args[0], len(pop.Keys), nonZero)
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.People, "people", cfg.People, "Number of people")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	cmd.Flags().Float64Var(&cfg.MismatchRate, "mismatch-rate", cfg.MismatchRate, "Share of people whose payroll amount differs")
	cmd.Flags().Float64Var(&cfg.GarbledRate, "garbled-rate", cfg.GarbledRate, "Share of invoice lines with an unreadable amount")
	cmd.Flags().IntVar(&cfg.TitleRows, "title-rows", cfg.TitleRows, "Title rows above the invoice header")
	return cmd
}
