// Package geo derives map markers and viewports from record coordinates.
package geo

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
	"github.com/KaramelBytes/rosterlens/internal/utils"
)

const (
	// OverviewZoom frames every marker.
	OverviewZoom = 3
	// FocusZoom frames a single selected marker.
	FocusZoom = 10
)

// Point is a plottable record. Index is the record's position in the input.
type Point struct {
	Index int     `json:"index"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// Viewport is a map center and zoom level.
type Viewport struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Zoom     int     `json:"zoom"`
	Selected *Point  `json:"selected,omitempty"`
}

// Columns names the coordinate and label columns.
type Columns struct {
	Lat  string
	Lon  string
	Name string
	City string
}

// Points extracts markers from records. Rows whose coordinates do not parse or
// fall outside valid lat/lon ranges are skipped.
func Points(records []dataset.Record, cols Columns) ([]Point, error) {
	need := []string{cols.Lat, cols.Lon}
	for _, c := range []string{cols.Name, cols.City} {
		if c != "" {
			need = append(need, c)
		}
	}
	if err := dataset.CheckColumns(records, need...); err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(records))
	for i, rec := range records {
		lat, okLat := rec.Float(cols.Lat)
		lon, okLon := rec.Float(cols.Lon)
		if !okLat || !okLon || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			continue
		}
		out = append(out, Point{Index: i, Lat: lat, Lon: lon, Label: label(rec, cols)})
	}
	return out, nil
}

// label renders "Name (City)", degrading to whichever part exists.
func label(rec dataset.Record, cols Columns) string {
	name := strings.TrimSpace(rec[cols.Name])
	city := strings.TrimSpace(rec[cols.City])
	switch {
	case name != "" && city != "":
		return fmt.Sprintf("%s (%s)", name, city)
	case name != "":
		return name
	default:
		return city
	}
}

// Overview centers the map on the mean marker position.
func Overview(points []Point) Viewport {
	if len(points) == 0 {
		return Viewport{Zoom: OverviewZoom}
	}
	lats := make([]float64, len(points))
	lons := make([]float64, len(points))
	for i, p := range points {
		lats[i], lons[i] = p.Lat, p.Lon
	}
	return Viewport{Lat: stat.Mean(lats, nil), Lon: stat.Mean(lons, nil), Zoom: OverviewZoom}
}

// Focus centers the map on the marker of the record at index.
func Focus(points []Point, index int) (Viewport, error) {
	for i := range points {
		if points[i].Index == index {
			p := points[i]
			return Viewport{Lat: p.Lat, Lon: p.Lon, Zoom: FocusZoom, Selected: &p}, nil
		}
	}
	return Viewport{}, fmt.Errorf("record %d has no valid coordinates", index)
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	Geometry   geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// FeatureCollection encodes the markers as GeoJSON. The selected record, if
// any, is flagged in its properties.
func FeatureCollection(points []Point, selected *Point) ([]byte, error) {
	fc := featureCollection{Type: "FeatureCollection", Features: make([]feature, 0, len(points))}
	for _, p := range points {
		props := map[string]any{"label": p.Label, "index": p.Index}
		if selected != nil && selected.Index == p.Index {
			props["selected"] = true
		}
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "Point", Coordinates: []float64{p.Lon, p.Lat}},
			Properties: props,
		})
	}
	b, err := utils.PrettyJSON(fc)
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}
	return b, nil
}
