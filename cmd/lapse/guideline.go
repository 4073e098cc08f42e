package lapse

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lapsekit/lapse-cli/internal/geometry"
	"github.com/lapsekit/lapse-cli/internal/service"
)

var guidelineCmd = &cobra.Command{
	Use:   "guideline",
	Short: "Manage body-contour alignment guidelines",
}

var (
	guidelineCategory string
	guidelinePoints   string
	guidelineWidth    float64
	guidelineHeight   float64
	guidelineFrontCam bool
)

var guidelineSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the contour for a category",
	Long:  "Stores a closed contour in the pixel space of the reference image, replacing any previous guideline for the category wholesale.",
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := parsePoints(guidelinePoints)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			g, err := service.SetGuideline(sqldb, guidelineCategory, points,
				geometry.Size{Width: guidelineWidth, Height: guidelineHeight}, guidelineFrontCam)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored guideline for %s (%d points)\n", g.CategoryID, len(g.Points))
			return nil
		})
	},
}

var (
	guidelineViewWidth  float64
	guidelineViewHeight float64
)

var guidelineShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a category's guideline, optionally fitted to a viewport",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			g, found, err := service.GetGuideline(sqldb, guidelineCategory)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No guideline for %s\n", guidelineCategory)
				return nil
			}

			points := g.Points
			if guidelineViewWidth > 0 && guidelineViewHeight > 0 {
				points = service.OverlayPoints(g, geometry.Size{Width: guidelineViewWidth, Height: guidelineViewHeight})
				if points == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Guideline for %s is not renderable\n", guidelineCategory)
					return nil
				}
			}

			camera := "back"
			if g.IsFrontCamera {
				camera = "front"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category: %s\tImage: %.0fx%.0f\tCamera: %s\n", g.CategoryID, g.ImageSize.Width, g.ImageSize.Height, camera)
			for _, p := range points {
				fmt.Fprintf(cmd.OutOrStdout(), "%.2f,%.2f\n", p.X, p.Y)
			}
			return nil
		})
	},
}

var guidelineClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove a category's guideline",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ClearGuideline(sqldb, guidelineCategory); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared guideline for %s\n", guidelineCategory)
			return nil
		})
	},
}

// parsePoints reads "x1,y1;x2,y2;..." in reference-image pixels.
func parsePoints(raw string) ([]geometry.Point, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("--points is required (format: x1,y1;x2,y2;...)")
	}
	pairs := strings.Split(raw, ";")
	points := make([]geometry.Point, 0, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid point %q (expected x,y)", pair)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x in point %q", pair)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y in point %q", pair)
		}
		points = append(points, geometry.Point{X: x, Y: y})
	}
	return points, nil
}

func init() {
	rootCmd.AddCommand(guidelineCmd)
	guidelineCmd.AddCommand(guidelineSetCmd, guidelineShowCmd, guidelineClearCmd)

	for _, c := range []*cobra.Command{guidelineSetCmd, guidelineShowCmd, guidelineClearCmd} {
		c.Flags().StringVar(&guidelineCategory, "category", service.DefaultCategoryID, "Category id")
	}

	guidelineSetCmd.Flags().StringVar(&guidelinePoints, "points", "", "Contour points x1,y1;x2,y2;... in image pixels")
	guidelineSetCmd.Flags().Float64Var(&guidelineWidth, "width", 0, "Reference image width in pixels")
	guidelineSetCmd.Flags().Float64Var(&guidelineHeight, "height", 0, "Reference image height in pixels")
	guidelineSetCmd.Flags().BoolVar(&guidelineFrontCam, "front-camera", false, "Reference image came from the front camera")
	_ = guidelineSetCmd.MarkFlagRequired("points")
	_ = guidelineSetCmd.MarkFlagRequired("width")
	_ = guidelineSetCmd.MarkFlagRequired("height")

	guidelineShowCmd.Flags().Float64Var(&guidelineViewWidth, "view-width", 0, "Viewport width to fit the contour into")
	guidelineShowCmd.Flags().Float64Var(&guidelineViewHeight, "view-height", 0, "Viewport height to fit the contour into")
}
