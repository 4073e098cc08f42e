package lapse

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lapsekit/lapse-cli/internal/service"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage photo categories (poses/angles)",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			c, err := service.CreateCustomCategory(sqldb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (%s)\n", c.Name, c.ID)
			return nil
		})
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active categories in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			premium, err := service.PremiumEntitled(sqldb)
			if err != nil {
				return err
			}
			categories, err := service.ActiveCategories(sqldb, premium)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tORDER\tDEFAULT")
			for _, c := range categories {
				def := ""
				if c.IsDefault {
					def = "yes"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n", c.ID, c.Name, c.Order, def)
			}
			return nil
		})
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a custom category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RenameCategory(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %s\n", args[0])
			return nil
		})
	},
}

var categoryArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Deactivate a custom category (photos are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeactivateCategory(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived category %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd, categoryRenameCmd, categoryArchiveCmd)
}
