package lapse

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lapsekit/lapse-cli/internal/service"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all records as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.Export(sqldb)
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("encode export: %w", err)
			}
			encoded = append(encoded, '\n')
			if exportOut == "" {
				_, err = cmd.OutOrStdout().Write(encoded)
				return err
			}
			if err := os.WriteFile(exportOut, encoded, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
			return nil
		})
	},
}

var importMode string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import records from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		var data service.ExportData
		if err := json.Unmarshal(content, &data); err != nil {
			return fmt.Errorf("decode import file: %w", err)
		}
		return withDB(func(sqldb *sql.DB) error {
			summary, err := service.Import(sqldb, &data, service.ImportMode(importMode))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d categories, %d photos, %d entries, %d notes, %d guidelines\n",
				summary.Categories, summary.Photos, summary.WeightEntries, summary.Notes, summary.Guidelines)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write to file instead of stdout")
	importCmd.Flags().StringVar(&importMode, "mode", string(service.ImportModeMerge), "Import mode: merge or replace")
}
