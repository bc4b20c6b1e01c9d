// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/agreemint/internal/records"
	"github.com/pdiddy/agreemint/internal/report"
	"github.com/pdiddy/agreemint/pkg/types"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect analysis records stored by the HTTP API",
	Long: `Records reads the SQLite database under store.data_dir. Use subcommands to
list, show, delete, or export analyses.`,
}

// --- list subcommand ---

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List analysis records in upload order",
	RunE:  runRecordsList,
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(context.Background(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(out, "No analyses found.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILENAME\tSTATUS\tUPLOADED")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Filename, r.Status, r.UploadTime.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

// --- get subcommand ---

var recordsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one analysis record as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsGet,
}

func runRecordsGet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// --- report subcommand ---

var recordsReportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Render the result of one analysis as text or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsReport,
}

func runRecordsReport(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	out, err := report.Export(rec.Results, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// --- delete subcommand ---

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one analysis record",
	Long: `Delete removes the record from the database. The stored upload is left in
place; delete through the HTTP API to remove both.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordsDelete,
}

func runRecordsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

// --- export subcommand ---

var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export analysis records to YAML or JSON under the data directory",
	RunE:  runRecordsExport,
}

func runRecordsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	var path string
	switch format {
	case "yaml", "yml":
		path, err = store.ExportYAML(ctx, opts)
	case "json":
		path, err = store.ExportJSON(ctx, opts)
	default:
		return fmt.Errorf("unsupported export format %q (use yaml or json)", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

func openStore() (*records.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return records.NewStore(cfg.Store)
}

func listOptsFromFlags(cmd *cobra.Command) (records.ListOptions, error) {
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := records.ListOptions{Status: types.RecordStatus(status), Limit: limit}
	if status != "" && !opts.Status.Valid() {
		return records.ListOptions{}, fmt.Errorf("invalid status %q (use pending, completed, or failed)", status)
	}
	return opts, nil
}

func init() {
	recordsCmd.PersistentFlags().String("data-dir", "", "directory holding agreemint.db (default from store.data_dir)")
	viper.BindPFlag("store.data_dir", recordsCmd.PersistentFlags().Lookup("data-dir"))

	recordsListCmd.Flags().String("status", "", "filter by status: pending, completed, failed")
	recordsListCmd.Flags().Int("limit", 0, "maximum records (0 = all)")
	recordsListCmd.Flags().Bool("json", false, "output records as JSON")

	recordsReportCmd.Flags().String("format", "text", "report format: json or text")

	recordsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	recordsExportCmd.Flags().String("status", "", "export only records with this status")
	recordsExportCmd.Flags().Int("limit", 0, "maximum records to export (0 = all)")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsGetCmd)
	recordsCmd.AddCommand(recordsReportCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
	recordsCmd.AddCommand(recordsExportCmd)

	rootCmd.AddCommand(recordsCmd)
}
