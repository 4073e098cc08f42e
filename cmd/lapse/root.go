package lapse

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath        string
	photoRootFlag string
)

var rootCmd = &cobra.Command{
	Use:   "lapse",
	Short: "lapse tracks daily progress photos and body measurements from your terminal",
	Long:  "lapse is a local-first daily self-portrait and weight tracking CLI with photo categories, pose-alignment guidelines, and weight/body-fat trend charts.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&photoRootFlag, "photo-root", "", "Path to photo storage root")
}
