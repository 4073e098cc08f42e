package lapse

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lapsekit/lapse-cli/internal/service"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Resolve chart and date-slider selections over the weight series",
}

var (
	chartWindow  int
	chartOutUnit string
)

var chartFraction float64

var chartSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Resolve a pointer fraction on the date axis",
	Long:  "Maps a pointer fraction (0-1 across the visible date range) to a date, snapping onto the nearest entry within tolerance. An unsnapped selection has no data for that day.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if chartFraction < 0 || chartFraction > 1 {
			return fmt.Errorf("--fraction must be between 0 and 1")
		}
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.FilteredEntries(sqldb, chartWindow)
			if err != nil {
				return err
			}
			unit, err := displayUnit(sqldb, chartOutUnit)
			if err != nil {
				return err
			}

			selector := service.NewSelector(entries, service.SelectorConfig{})
			selection := selector.Select(chartFraction)
			if selection.Entry == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tno data\n", selection.Date.Format("2006-01-02"))
				return nil
			}
			w, err := service.DisplayWeight(selection.Entry.WeightKg, unit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f %s\t%s\n", selection.Date.Format("2006-01-02"), w, unit, formatOptionalPct(selection.Entry.BodyFatPct))
			return nil
		})
	},
}

var (
	chartPageDate    string
	chartPageForward bool
	chartPageBack    bool
)

var chartPageCmd = &cobra.Command{
	Use:   "page",
	Short: "Move the date-slider selection by one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		if chartPageForward == chartPageBack {
			return fmt.Errorf("pass exactly one of --forward or --back")
		}
		current, err := parseDayOrNow(chartPageDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.FilteredEntries(sqldb, chartWindow)
			if err != nil {
				return err
			}
			selector := service.NewSelector(entries, service.SelectorConfig{})
			next, moved := selector.PageDay(current, chartPageForward)
			if !moved {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t(at range edge)\n", next.Format("2006-01-02"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", next.Format("2006-01-02"))
			return nil
		})
	},
}

var chartTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Summarize the weight series in a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.FilteredEntries(sqldb, chartWindow)
			if err != nil {
				return err
			}
			unit, err := displayUnit(sqldb, chartOutUnit)
			if err != nil {
				return err
			}
			trend := service.Trend(entries)
			if trend.Count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries in window")
				return nil
			}

			display := func(kg float64) float64 {
				w, convErr := service.DisplayWeight(kg, unit)
				if convErr != nil {
					err = convErr
				}
				return w
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entries: %d (%s to %s)\n", trend.Count, trend.FirstDay, trend.LastDay)
			fmt.Fprintf(cmd.OutOrStdout(), "Weight %s: first=%.2f last=%.2f min=%.2f max=%.2f avg=%.2f delta=%+.2f\n",
				unit, display(trend.FirstKg), display(trend.LastKg), display(trend.MinKg), display(trend.MaxKg), display(trend.AverageKg), display(trend.DeltaKg))
			if trend.AvgBodyFat != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Body fat avg: %.2f%%\n", *trend.AvgBodyFat)
			}
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.AddCommand(chartSelectCmd, chartPageCmd, chartTrendCmd)

	for _, c := range []*cobra.Command{chartSelectCmd, chartPageCmd, chartTrendCmd} {
		c.Flags().IntVar(&chartWindow, "window", 30, "Window in days (0 = all)")
	}
	for _, c := range []*cobra.Command{chartSelectCmd, chartTrendCmd} {
		c.Flags().StringVar(&chartOutUnit, "unit", "", "Output unit: kg or lbs (default from config)")
	}

	chartSelectCmd.Flags().Float64Var(&chartFraction, "fraction", 0, "Pointer position 0-1 across the date axis")
	_ = chartSelectCmd.MarkFlagRequired("fraction")

	chartPageCmd.Flags().StringVar(&chartPageDate, "date", "", "Current date YYYY-MM-DD (default today)")
	chartPageCmd.Flags().BoolVar(&chartPageForward, "forward", false, "Page to the next day")
	chartPageCmd.Flags().BoolVar(&chartPageBack, "back", false, "Page to the previous day")
}
