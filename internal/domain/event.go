package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// UnknownPlace is shown when the feed omits a place description.
const UnknownPlace = "Unknown location"

var (
	// ErrMalformedRecord marks a single feature that failed normalization.
	// Callers skip the feature and keep processing the batch.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrFeedUnavailable marks a failed feed fetch: transport error, non-2xx
	// status, or an unparsable response body.
	ErrFeedUnavailable = errors.New("feed unavailable")
)

// Coordinates is a WGS-84 position with optional hypocenter depth.
type Coordinates struct {
	Lat   float64  `json:"lat"`
	Lng   float64  `json:"lng"`
	Depth *float64 `json:"depth_km,omitempty"`
}

// EventRecord is the normalized form of one feed feature. Values are
// created by Normalize and not mutated afterwards.
type EventRecord struct {
	ID          string      `json:"id"`
	Coordinates Coordinates `json:"coordinates"`
	Magnitude   float64     `json:"magnitude"`
	Place       string      `json:"place"`
	OccurredAt  time.Time   `json:"occurred_at"`
	DetailURL   string      `json:"detail_url,omitempty"`
}

// HasKnownPlace reports whether the feed supplied a place description.
func (r EventRecord) HasKnownPlace() bool {
	return r.Place != UnknownPlace
}

// WithPlace returns a copy of the record with a different place.
func (r EventRecord) WithPlace(place string) EventRecord {
	r.Place = place
	return r
}

// rawFeature mirrors a GeoJSON feature from the USGS feed.
type rawFeature struct {
	ID         string        `json:"id"`
	Geometry   *rawGeometry  `json:"geometry"`
	Properties rawProperties `json:"properties"`
}

type rawGeometry struct {
	Coordinates []*float64 `json:"coordinates"`
}

// rawProperties keeps the optional fields undecoded so a bad value there
// falls back instead of rejecting the feature.
type rawProperties struct {
	Mag   *float64        `json:"mag"`
	Place json.RawMessage `json:"place"`
	Time  json.RawMessage `json:"time"`
	URL   json.RawMessage `json:"url"`
}
