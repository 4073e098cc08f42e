package lapse

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lapsekit/lapse-cli/internal/service"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage daily notes",
}

var noteDate string

var noteSetCmd = &cobra.Command{
	Use:   "set <content>...",
	Short: "Set the note for a day",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDayOrNow(noteDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			note, err := service.SetNote(sqldb, date, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved note for %s\n", note.Day)
			return nil
		})
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the note for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDayOrNow(noteDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			note, found, err := service.GetNote(sqldb, date)
			if err != nil {
				return err
			}
			if !found || service.NoteIsEmpty(note) {
				fmt.Fprintf(cmd.OutOrStdout(), "No note for %s\n", date.Format("2006-01-02"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (modified %s)\n%s\n", note.Day, note.LastModifiedAt.Local().Format("2006-01-02 15:04"), note.Content)
			return nil
		})
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the note for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDayOrNow(noteDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteNote(sqldb, date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note for %s\n", date.Format("2006-01-02"))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteSetCmd, noteShowCmd, noteDeleteCmd)

	for _, c := range []*cobra.Command{noteSetCmd, noteShowCmd, noteDeleteCmd} {
		c.Flags().StringVar(&noteDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
}
