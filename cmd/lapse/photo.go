package lapse

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lapsekit/lapse-cli/internal/service"
	"github.com/lapsekit/lapse-cli/internal/storage"
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage daily progress photos",
}

var (
	photoCategory    string
	photoDate        string
	photoFaceBlurred bool
	photoConfidence  float64
)

var photoAddCmd = &cobra.Command{
	Use:   "add <image-file>",
	Short: "Add today's photo for a category",
	Long:  "Adds a photo for one calendar day and category. Without --date the EXIF capture timestamp is used when present, otherwise now. A day that already has a photo requires 'photo replace'.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readPhotoInput(args[0])
		if err != nil {
			return err
		}
		return withStore(func(sqldb *sql.DB, store *storage.FileStore) error {
			p, err := service.SavePhoto(sqldb, store, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added photo %s for %s/%s\n", p.ID, p.Day, p.CategoryID)
			return nil
		})
	},
}

var photoReplaceCmd = &cobra.Command{
	Use:   "replace <image-file>",
	Short: "Replace a day's photo",
	Long:  "Deletes the existing photo bytes and record for the day and category, then stores a fresh photo with a new id. This is the only way to overwrite a capture.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readPhotoInput(args[0])
		if err != nil {
			return err
		}
		date, err := parseDayOrNow(photoDate)
		if err != nil {
			return err
		}
		return withStore(func(sqldb *sql.DB, store *storage.FileStore) error {
			p, err := service.ReplacePhoto(sqldb, store, date, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Replaced photo for %s/%s (new id %s)\n", p.Day, p.CategoryID, p.ID)
			return nil
		})
	},
}

var (
	photoListCategory string
	photoListLimit    int
)

var photoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List photos in a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			photos, err := service.ListPhotos(sqldb, photoListCategory, photoListLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DAY\tID\tBLURRED\tWEIGHT_KG\tBODY_FAT%")
			for _, p := range photos {
				blurred := ""
				if p.IsFaceBlurred {
					blurred = "yes"
				}
				weight := ""
				if p.WeightKg != nil {
					weight = fmt.Sprintf("%.2f", *p.WeightKg)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", p.Day, p.ID, blurred, weight, formatOptionalPct(p.BodyFatPct))
			}
			return nil
		})
	},
}

var (
	photoAttachWeight float64
	photoAttachUnit   string
	photoAttachFat    float64
	photoAttachLog    bool
)

var photoAttachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach weight/body-fat to a day's photo",
	Long:  "Updates the measurement cache on the photo record. With --log-entry the canonical weight entry for the day is written as well and linked to the photo.",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDayOrNow(photoDate)
		if err != nil {
			return err
		}
		var weightKg *float64
		if photoAttachWeight > 0 {
			kg, err := service.ParseWeight(photoAttachWeight, photoAttachUnit)
			if err != nil {
				return err
			}
			weightKg = &kg
		}
		bodyFat := optionalFloat(photoAttachFat)

		return withDB(func(sqldb *sql.DB) error {
			p, found, err := service.PhotoForDay(sqldb, date, photoCategory)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no photo for %s/%s", date.Format("2006-01-02"), photoCategory)
			}
			if err := service.AttachMeasurement(sqldb, p.ID, weightKg, bodyFat); err != nil {
				return err
			}
			if photoAttachLog {
				if weightKg == nil {
					return fmt.Errorf("--log-entry requires --weight")
				}
				if _, err := service.AddMeasurement(sqldb, service.MeasurementInput{
					WeightKg:      *weightKg,
					BodyFatPct:    bodyFat,
					Date:          date,
					LinkedPhotoID: &p.ID,
				}); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attached measurement to photo %s\n", p.ID)
			return nil
		})
	},
}

var photoDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a day's photo",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDayOrNow(photoDate)
		if err != nil {
			return err
		}
		return withStore(func(sqldb *sql.DB, store *storage.FileStore) error {
			if err := service.DeletePhoto(sqldb, store, date, photoCategory); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted photo for %s/%s\n", date.Format("2006-01-02"), photoCategory)
			return nil
		})
	},
}

func readPhotoInput(path string) (service.PhotoInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return service.PhotoInput{}, fmt.Errorf("read image file %s: %w", path, err)
	}
	in := service.PhotoInput{
		Content:        content,
		Ext:            strings.ToLower(filepath.Ext(path)),
		CategoryID:     photoCategory,
		IsFaceBlurred:  photoFaceBlurred,
		BodyConfidence: optionalFloat(photoConfidence),
	}
	if strings.TrimSpace(photoDate) != "" {
		date, err := parseDayOrNow(photoDate)
		if err != nil {
			return service.PhotoInput{}, err
		}
		in.CapturedAt = date
	} else if taken, ok := storage.CaptureTime(content); ok {
		in.CapturedAt = taken
	}
	return in, nil
}

func init() {
	rootCmd.AddCommand(photoCmd)
	photoCmd.AddCommand(photoAddCmd, photoReplaceCmd, photoListCmd, photoAttachCmd, photoDeleteCmd)

	for _, c := range []*cobra.Command{photoAddCmd, photoReplaceCmd, photoAttachCmd, photoDeleteCmd} {
		c.Flags().StringVar(&photoCategory, "category", service.DefaultCategoryID, "Category id")
		c.Flags().StringVar(&photoDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
	for _, c := range []*cobra.Command{photoAddCmd, photoReplaceCmd} {
		c.Flags().BoolVar(&photoFaceBlurred, "face-blurred", false, "Mark the image as face-blurred")
		c.Flags().Float64Var(&photoConfidence, "confidence", -1, "Body detection confidence 0-1 (optional)")
	}

	photoListCmd.Flags().StringVar(&photoListCategory, "category", service.DefaultCategoryID, "Category id")
	photoListCmd.Flags().IntVar(&photoListLimit, "limit", 50, "Result limit")

	photoAttachCmd.Flags().Float64Var(&photoAttachWeight, "weight", 0, "Weight value")
	photoAttachCmd.Flags().StringVar(&photoAttachUnit, "unit", "kg", "Weight unit: kg or lbs")
	photoAttachCmd.Flags().Float64Var(&photoAttachFat, "body-fat", -1, "Body fat percentage (optional)")
	photoAttachCmd.Flags().BoolVar(&photoAttachLog, "log-entry", false, "Also log the canonical weight entry for the day")
}
