package http

import (
	"github.com/couchcryptid/seismic-map-service/internal/domain"
)

// GeoJSON export of the bound records. Coordinates follow the USGS order
// [lng, lat, depth] and time is epoch milliseconds, so the output can be
// fed back through the normalizer.

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Geometry   geometry          `json:"geometry"`
	Properties featureProperties `json:"properties"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type featureProperties struct {
	Mag      float64 `json:"mag"`
	Place    string  `json:"place"`
	Time     *int64  `json:"time"`
	URL      string  `json:"url,omitempty"`
	Severity string  `json:"severity"`
	Color    string  `json:"color"`
}

func newFeatureCollection(records []domain.EventRecord) featureCollection {
	fc := featureCollection{Type: "FeatureCollection", Features: make([]feature, 0, len(records))}
	for i := range records {
		fc.Features = append(fc.Features, newFeature(records[i]))
	}
	return fc
}

func newFeature(rec domain.EventRecord) feature {
	coords := []float64{rec.Coordinates.Lng, rec.Coordinates.Lat}
	if rec.Coordinates.Depth != nil {
		coords = append(coords, *rec.Coordinates.Depth)
	}

	var ms *int64
	if !rec.OccurredAt.IsZero() {
		v := rec.OccurredAt.UnixMilli()
		ms = &v
	}

	sev := domain.Classify(rec.Magnitude)
	return feature{
		Type:     "Feature",
		ID:       rec.ID,
		Geometry: geometry{Type: "Point", Coordinates: coords},
		Properties: featureProperties{
			Mag:      rec.Magnitude,
			Place:    rec.Place,
			Time:     ms,
			URL:      rec.DetailURL,
			Severity: string(sev.Tier),
			Color:    sev.Color,
		},
	}
}
