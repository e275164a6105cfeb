package domain

import (
	"context"
	"log/slog"
)

// ResolvePlace fills in the place of a record the feed left unnamed by
// reverse geocoding its epicenter. Records that already have a place, a nil
// geocoder, a failed lookup, or an empty result all return the record
// unchanged (graceful degradation).
func ResolvePlace(ctx context.Context, rec EventRecord, geocoder Geocoder, logger *slog.Logger) EventRecord {
	if geocoder == nil || rec.HasKnownPlace() {
		return rec
	}

	result, err := geocoder.ReverseGeocode(ctx, rec.Coordinates.Lat, rec.Coordinates.Lng)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"event_id", rec.ID,
			"lat", rec.Coordinates.Lat,
			"lng", rec.Coordinates.Lng,
			"error", err,
		)
		return rec
	}
	if result.FormattedAddress == "" {
		return rec
	}
	return rec.WithPlace(result.FormattedAddress)
}

// ResolvePlaces applies ResolvePlace to every record, preserving order.
func ResolvePlaces(ctx context.Context, records []EventRecord, geocoder Geocoder, logger *slog.Logger) []EventRecord {
	if geocoder == nil {
		return records
	}
	out := make([]EventRecord, len(records))
	for i := range records {
		out[i] = ResolvePlace(ctx, records[i], geocoder, logger)
	}
	return out
}
