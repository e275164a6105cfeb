package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Normalize converts one raw feed feature into an EventRecord.
// Any failure wraps ErrMalformedRecord.
func Normalize(raw json.RawMessage) (EventRecord, error) {
	var f rawFeature
	if err := json.Unmarshal(raw, &f); err != nil {
		return EventRecord{}, fmt.Errorf("%w: decode feature: %v", ErrMalformedRecord, err)
	}

	id := strings.TrimSpace(f.ID)
	if id == "" {
		return EventRecord{}, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}

	coords, err := parseCoordinates(f.Geometry)
	if err != nil {
		return EventRecord{}, fmt.Errorf("%w: feature %s: %v", ErrMalformedRecord, id, err)
	}

	if f.Properties.Mag == nil {
		return EventRecord{}, fmt.Errorf("%w: feature %s: missing properties.mag", ErrMalformedRecord, id)
	}

	return EventRecord{
		ID:          id,
		Coordinates: coords,
		Magnitude:   *f.Properties.Mag,
		Place:       placeOrUnknown(f.Properties.Place),
		OccurredAt:  epochMillis(f.Properties.Time),
		DetailURL:   optionalString(f.Properties.URL),
	}, nil
}

// parseCoordinates reads GeoJSON [lng, lat, depth?].
func parseCoordinates(g *rawGeometry) (Coordinates, error) {
	if g == nil {
		return Coordinates{}, fmt.Errorf("missing geometry")
	}
	if len(g.Coordinates) < 2 {
		return Coordinates{}, fmt.Errorf("geometry.coordinates has %d elements, want at least 2", len(g.Coordinates))
	}

	lng, lat := g.Coordinates[0], g.Coordinates[1]
	if lng == nil || lat == nil {
		return Coordinates{}, fmt.Errorf("geometry.coordinates has a null longitude or latitude")
	}

	c := Coordinates{Lng: *lng, Lat: *lat}
	if len(g.Coordinates) > 2 && g.Coordinates[2] != nil {
		depth := *g.Coordinates[2]
		c.Depth = &depth
	}
	return c, nil
}

func placeOrUnknown(raw json.RawMessage) string {
	if p := strings.TrimSpace(optionalString(raw)); p != "" {
		return p
	}
	return UnknownPlace
}

// maxEpochMillis bounds timestamps to what time.UnixMilli can hold.
const maxEpochMillis = 9e15

// epochMillis converts a feed timestamp in milliseconds. Returns zero time
// when the value is absent or not a number.
func epochMillis(raw json.RawMessage) time.Time {
	var ms *float64
	if len(raw) == 0 || json.Unmarshal(raw, &ms) != nil || ms == nil {
		return time.Time{}
	}
	if math.IsNaN(*ms) || math.Abs(*ms) > maxEpochMillis {
		return time.Time{}
	}
	return time.UnixMilli(int64(math.Round(*ms))).UTC()
}

// optionalString decodes a string field as-is. Null, absent or non-string
// values yield "".
func optionalString(raw json.RawMessage) string {
	var s *string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil || s == nil {
		return ""
	}
	return *s
}

// Rejected describes a feature dropped from a batch.
type Rejected struct {
	Index int
	ID    string
	Err   error
}

// BatchResult is the outcome of normalizing a whole feed response.
type BatchResult struct {
	Records  []EventRecord
	Rejected []Rejected
}

// NormalizeBatch normalizes every feature, keeping survivors in feed order.
// A feature that repeats an already accepted id is rejected so that each id
// appears once.
func NormalizeBatch(raws []json.RawMessage) BatchResult {
	res := BatchResult{Records: make([]EventRecord, 0, len(raws))}
	seen := make(map[string]struct{}, len(raws))

	for i, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejected{Index: i, ID: peekID(raw), Err: err})
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			res.Rejected = append(res.Rejected, Rejected{
				Index: i,
				ID:    rec.ID,
				Err:   fmt.Errorf("%w: duplicate id %s", ErrMalformedRecord, rec.ID),
			})
			continue
		}
		seen[rec.ID] = struct{}{}
		res.Records = append(res.Records, rec)
	}

	return res
}

// peekID extracts the feature id for log context, if there is one.
func peekID(raw json.RawMessage) string {
	var f struct {
		ID string `json:"id"`
	}
	if json.Unmarshal(raw, &f) != nil {
		return ""
	}
	return f.ID
}
