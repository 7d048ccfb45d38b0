package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rosterlens/internal/geo"
)

var (
	mapSelect     int
	mapGeoJSON    bool
	mapOutputPath string
)

var mapCmd = &cobra.Command{
	Use:   "map <file>",
	Short: "Compute the map viewport and markers for the roster",
	Long: `Extract a marker for every record with valid coordinates and print the
viewport: centered on all markers, or zoomed on --select (a record index).
--geojson emits the markers as a GeoJSON FeatureCollection instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		cols := geo.Columns{Lat: cfg.LatColumn, Lon: cfg.LonColumn}
		if ds.Has(cfg.NameColumn) {
			cols.Name = cfg.NameColumn
		}
		if ds.Has(cfg.CityColumn) {
			cols.City = cfg.CityColumn
		}
		points, err := geo.Points(ds.Records, cols)
		if err != nil {
			return err
		}
		if skipped := ds.Len() - len(points); skipped > 0 {
			logger.Info("records without usable coordinates", "count", skipped)
		}

		vp := geo.Overview(points)
		if cmd.Flags().Changed("select") {
			vp, err = geo.Focus(points, mapSelect)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if mapGeoJSON {
			b, err := geo.FeatureCollection(points, vp.Selected)
			if err != nil {
				return err
			}
			if mapOutputPath != "" {
				return writeOutput(cmd, mapOutputPath, b, "GeoJSON")
			}
			_, err = fmt.Fprintln(out, string(b))
			return err
		}

		fmt.Fprintf(out, "Center: %.4f, %.4f (zoom %d)\n", vp.Lat, vp.Lon, vp.Zoom)
		if vp.Selected != nil {
			fmt.Fprintf(out, "Selected: [%d] %s\n", vp.Selected.Index, vp.Selected.Label)
		}
		fmt.Fprintf(out, "Markers: %d of %d records\n", len(points), ds.Len())
		for _, p := range points {
			mark := " "
			if vp.Selected != nil && vp.Selected.Index == p.Index {
				mark = "*"
			}
			fmt.Fprintf(out, "%s [%d] %s @ %.4f, %.4f\n", mark, p.Index, p.Label, p.Lat, p.Lon)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.Flags().IntVar(&mapSelect, "select", -1, "record index to focus")
	mapCmd.Flags().BoolVar(&mapGeoJSON, "geojson", false, "print markers as GeoJSON")
	mapCmd.Flags().StringVarP(&mapOutputPath, "output", "o", "", "with --geojson: write to this path")
}
