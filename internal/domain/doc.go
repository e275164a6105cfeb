// Package domain models USGS earthquake catalog data for the map service.
//
// # Data Source
//
// Events come from the USGS FDSN event web service
// (https://earthquake.usgs.gov/fdsnws/event/1/), queried as GeoJSON with a
// start date and a minimum magnitude. The response is a FeatureCollection
// whose features look like:
//
//	{
//	  "id": "us7000abcd",
//	  "geometry": {"type": "Point", "coordinates": [142.37, 38.29, 29.0]},
//	  "properties": {"mag": 6.1, "place": "90 km E of Ishinomaki, Japan",
//	                 "time": 1710460800000, "url": "https://earthquake.usgs.gov/..."}
//	}
//
// # Feed Conventions
//
// Coordinates:
//
//	GeoJSON order is [longitude, latitude, depth]. Depth is in kilometers and
//	is optional; a missing third element leaves Depth nil.
//
// Time:
//
//	Epoch milliseconds (UTC). Converted to time.Time at normalization and
//	formatted for display in the configured time zone at render time.
//
// Required fields:
//
//	id, geometry.coordinates (at least two numbers) and properties.mag.
//	A feature missing any of them is rejected with [ErrMalformedRecord] and
//	skipped; the rest of the batch is unaffected.
//
// Optional fields:
//
//	properties.place falls back to [UnknownPlace]; properties.url is passed
//	through and omitted from rendering when empty.
//
// # Severity
//
// Three ordered tiers derived from magnitude with closed-open bands:
//
//	low: m < 5.0 | medium: 5.0 ≤ m < 6.0 | high: m ≥ 6.0
//
// Marker radius is max(5, 2m) so small events stay visible.
//
// # Time Windows
//
// The feed query starts at "now minus period" where period is day, week or
// month, expressed as a UTC calendar date (YYYY-MM-DD). See [StartDate].
package domain
