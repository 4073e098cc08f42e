package lapse

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lapsekit/lapse-cli/internal/service"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Manage weight and body-fat entries",
}

var (
	weightValue    float64
	weightUnit     string
	weightFat      float64
	weightDate     string
	weightCategory string
)

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a weight entry for a day",
	Long:  "Logs the day's weight in canonical kilograms. Logging a day that already has an entry updates it in place. With --link-category the entry is linked to that category's photo for the day and the photo's cache is refreshed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDayOrNow(weightDate)
		if err != nil {
			return err
		}
		kg, err := service.ParseWeight(weightValue, weightUnit)
		if err != nil {
			return err
		}
		bodyFat := optionalFloat(weightFat)

		return withDB(func(sqldb *sql.DB) error {
			in := service.MeasurementInput{WeightKg: kg, BodyFatPct: bodyFat, Date: date}
			if weightCategory != "" {
				p, found, err := service.PhotoForDay(sqldb, date, weightCategory)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no photo for %s/%s to link", date.Format("2006-01-02"), weightCategory)
				}
				in.LinkedPhotoID = &p.ID
				if err := service.AttachMeasurement(sqldb, p.ID, &kg, bodyFat); err != nil {
					return err
				}
			}
			entry, err := service.AddMeasurement(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.2f kg for %s\n", entry.WeightKg, entry.Day)
			return nil
		})
	},
}

var (
	weightShowDate string
	weightOutUnit  string
)

var weightShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the entry for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDayOrNow(weightShowDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			unit, err := displayUnit(sqldb, weightOutUnit)
			if err != nil {
				return err
			}
			entry, found, err := service.GetEntry(sqldb, date)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry for %s\n", date.Format("2006-01-02"))
				return nil
			}
			w, err := service.DisplayWeight(entry.WeightKg, unit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f %s\t%s\n", entry.Day, w, unit, formatOptionalPct(entry.BodyFatPct))
			return nil
		})
	},
}

var weightListWindow int

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries in a relative window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			unit, err := displayUnit(sqldb, weightOutUnit)
			if err != nil {
				return err
			}
			entries, err := service.FilteredEntries(sqldb, weightListWindow)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tWEIGHT\tUNIT\tBODY_FAT%\tPHOTO")
			for _, entry := range entries {
				w, err := service.DisplayWeight(entry.WeightKg, unit)
				if err != nil {
					return err
				}
				linked := ""
				if entry.LinkedPhotoID != nil {
					linked = *entry.LinkedPhotoID
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f\t%s\t%s\t%s\n", entry.Day, w, unit, formatOptionalPct(entry.BodyFatPct), linked)
			}
			return nil
		})
	},
}

// displayUnit resolves the output unit: an explicit flag wins, then the
// stored preference, then kg.
func displayUnit(sqldb *sql.DB, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return service.WeightUnit(sqldb)
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightShowCmd, weightListCmd)

	weightAddCmd.Flags().Float64Var(&weightValue, "weight", 0, "Weight value")
	weightAddCmd.Flags().StringVar(&weightUnit, "unit", "kg", "Input unit: kg or lbs")
	weightAddCmd.Flags().Float64Var(&weightFat, "body-fat", -1, "Body fat percentage (optional)")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	weightAddCmd.Flags().StringVar(&weightCategory, "link-category", "", "Link to this category's photo for the day")
	_ = weightAddCmd.MarkFlagRequired("weight")

	weightShowCmd.Flags().StringVar(&weightShowDate, "date", "", "Date YYYY-MM-DD (default today)")
	weightShowCmd.Flags().StringVar(&weightOutUnit, "unit", "", "Output unit: kg or lbs (default from config)")

	weightListCmd.Flags().IntVar(&weightListWindow, "window", 30, "Window in days (0 = all)")
	weightListCmd.Flags().StringVar(&weightOutUnit, "unit", "", "Output unit: kg or lbs (default from config)")
}
