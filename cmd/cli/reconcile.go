package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"payrecon/app"
	"payrecon/internal"
	"payrecon/internal/config"
	"payrecon/internal/output"
	"payrecon/internal/schema"
)

type reconcileFlags struct {
	out          string
	keepZero     bool
	synonyms     string
	invoiceSheet string
	payrollSheet string
	skipRows     int
	scanRows     int
	contains     bool
	format       string
	aggregates   bool
}

func newReconcileCmd() *cobra.Command {
	var flags reconcileFlags

	cmd := &cobra.Command{
		Use:   "reconcile WORKBOOK",
		Short: "Reconcile the FATURA and FOLHA sheets of a workbook",
		Long: `Reconcile the invoice (FATURA) and payroll (FOLHA) sheets of an xlsx
workbook and print the per-CPF differences.

Settings come from the environment (see .env) and can be overridden
with flags.

Example: payrecon reconcile marco.xlsx --out diferencas.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Write the three-sheet export workbook to this path")
	cmd.Flags().BoolVar(&flags.keepZero, "keep-zero", false, "Keep keys whose difference is zero")
	cmd.Flags().StringVar(&flags.synonyms, "synonyms", "", "YAML file with column synonyms")
	cmd.Flags().StringVar(&flags.invoiceSheet, "invoice-sheet", "", "Invoice sheet name")
	cmd.Flags().StringVar(&flags.payrollSheet, "payroll-sheet", "", "Payroll sheet name")
	cmd.Flags().IntVar(&flags.skipRows, "skip-rows", -1, "Rows above the invoice header, tried before scanning")
	cmd.Flags().IntVar(&flags.scanRows, "scan-rows", 0, "Leading rows searched for a header")
	cmd.Flags().BoolVar(&flags.contains, "contains", false, "Accept header cells that contain a key label")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&flags.aggregates, "aggregates", false, "Also print both aggregates (table format)")

	return cmd
}

func runReconcile(cmd *cobra.Command, path string, flags reconcileFlags) error {
	format, err := output.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	if format == "" {
		format = output.DetectFormat("")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg.Recon, cmd, flags); err != nil {
		return err
	}
	settings, err := app.SettingsFromConfig(cfg.Recon)
	if err != nil {
		return err
	}

	logger := internal.NewLoggerWithWriter(internal.ParseLogLevel(cfg.Log.Level), cfg.Log.Format, cmd.ErrOrStderr())
	svc := app.NewReconciliationService(settings, logger)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	result, err := svc.ReconcileWorkbook(cmd.Context(), file)
	if err != nil {
		return err
	}

	if flags.out != "" {
		if err := writeExport(svc, result, flags.out); err != nil {
			return err
		}
		logger.Info("export written to %s", flags.out)
	}

	var data any = result
	if format == output.FormatTable {
		tables := []output.Data{}
		if flags.aggregates {
			tables = append(tables,
				output.AggregateTable(result.Invoice.Kind, result.Invoice.Aggregate),
				output.AggregateTable(result.Payroll.Kind, result.Payroll.Aggregate))
		}
		data = append(tables, output.DifferencesTable(result.Differences), output.SummaryTable(result.Summary))
	}
	return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
}

// applyFlags overrides environment settings with the flags the user set
func applyFlags(rc *config.ReconConfig, cmd *cobra.Command, flags reconcileFlags) error {
	changed := cmd.Flags().Changed

	if changed("keep-zero") {
		rc.DropZeroDifference = !flags.keepZero
	}
	if changed("synonyms") {
		synonyms, err := config.LoadSynonyms(flags.synonyms)
		if err != nil {
			return err
		}
		rc.SynonymsFile = flags.synonyms
		rc.Synonyms = synonyms
	}
	if changed("invoice-sheet") {
		rc.InvoiceSheet = flags.invoiceSheet
	}
	if changed("payroll-sheet") {
		rc.PayrollSheet = flags.payrollSheet
	}
	if changed("skip-rows") {
		rc.InvoiceSkipRows = flags.skipRows
	}
	if changed("scan-rows") {
		if flags.scanRows <= 0 {
			return fmt.Errorf("--scan-rows must be positive")
		}
		rc.HeaderScanRows = flags.scanRows
	}
	if changed("contains") {
		mode := schema.MatchExact
		if flags.contains {
			mode = schema.MatchContains
		}
		rc.HeaderMatch = mode.String()
	}
	return nil
}

func writeExport(svc *app.ReconciliationService, result *app.Result, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}
	if err := svc.Export(file, result); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
