package view

import (
	"testing"
	"time"

	"github.com/couchcryptid/seismic-map-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPopupHTML(t *testing.T) {
	f := domain.NewFormatter("en-US", time.UTC)
	depth := 29.5
	rec := domain.EventRecord{
		ID:          "us1",
		Coordinates: domain.Coordinates{Lat: 38.29, Lng: 142.37, Depth: &depth},
		Magnitude:   6.1,
		Place:       "90 km E of Ishinomaki, Japan",
		OccurredAt:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		DetailURL:   "https://earthquake.usgs.gov/earthquakes/eventpage/us1",
	}

	html := PopupHTML(rec, f)

	assert.Contains(t, html, "<h3>Earthquake M6.1</h3>")
	assert.Contains(t, html, "90 km E of Ishinomaki, Japan")
	assert.Contains(t, html, "29.5 km")
	assert.Contains(t, html, "2024-03-15 00:00:00 UTC")
	assert.Contains(t, html, `href="https://earthquake.usgs.gov/earthquakes/eventpage/us1"`)
}

func TestPopupHTML_OmitsMissingOptionalFields(t *testing.T) {
	f := domain.NewFormatter("en-US", time.UTC)
	rec := domain.EventRecord{ID: "us2", Magnitude: 4.6, Place: domain.UnknownPlace}

	html := PopupHTML(rec, f)

	assert.Contains(t, html, domain.UnknownPlace)
	assert.Contains(t, html, domain.UnknownTime)
	assert.NotContains(t, html, "Depth")
	assert.NotContains(t, html, "<a ")
}

func TestPopupHTML_EscapesFeedText(t *testing.T) {
	f := domain.NewFormatter("en-US", time.UTC)
	rec := domain.EventRecord{ID: "x", Magnitude: 5, Place: `<script>alert(1)</script>`}

	html := PopupHTML(rec, f)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
