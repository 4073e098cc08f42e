package lapse

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lapsekit/lapse-cli/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage lapse local configuration",
}

var (
	cfgWeightUnit string
	cfgPremium    string
	cfgPhotoRoot  string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			if cmd.Flags().Changed("unit") {
				if err := service.SetConfig(sqldb, service.ConfigWeightUnit, cfgWeightUnit); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("premium") {
				if err := service.SetConfig(sqldb, service.ConfigPremium, cfgPremium); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("photo-root") {
				if err := service.SetConfig(sqldb, service.ConfigPhotoRoot, cfgPhotoRoot); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			values, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(values))
			for key := range values {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, values[key])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configListCmd)

	configSetCmd.Flags().StringVar(&cfgWeightUnit, "unit", "", "Display weight unit: kg or lbs")
	configSetCmd.Flags().StringVar(&cfgPremium, "premium", "", "Premium entitlement signal: true or false")
	configSetCmd.Flags().StringVar(&cfgPhotoRoot, "photo-root", "", "Photo storage root directory")
}
