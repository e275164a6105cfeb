package view

import (
	"bytes"
	"html/template"

	"github.com/couchcryptid/seismic-map-service/internal/domain"
)

var popupTemplate = template.Must(template.New("popup").Parse(
	`<div class="popup-content">` +
		`<h3>Earthquake M{{.Magnitude}}</h3>` +
		`<p><strong>Location:</strong> {{.Place}}</p>` +
		`{{if .Depth}}<p><strong>Depth:</strong> {{.Depth}}</p>{{end}}` +
		`<p><strong>Time:</strong> {{.Time}}</p>` +
		`{{if .URL}}<p><a href="{{.URL}}" target="_blank" rel="noopener">Details on USGS</a></p>{{end}}` +
		`</div>`))

type popupData struct {
	Magnitude string
	Place     string
	Depth     string
	Time      string
	URL       string
}

// PopupHTML renders the marker popup for a record. Feed text is escaped.
func PopupHTML(rec domain.EventRecord, f *domain.Formatter) string {
	var buf bytes.Buffer
	data := popupData{
		Magnitude: f.Magnitude(rec.Magnitude),
		Place:     rec.Place,
		Depth:     f.Depth(rec.Coordinates.Depth),
		Time:      f.Time(rec.OccurredAt),
		URL:       rec.DetailURL,
	}
	if err := popupTemplate.Execute(&buf, data); err != nil {
		// Only reachable on a writer error, which bytes.Buffer never returns.
		return template.HTMLEscapeString(rec.Place)
	}
	return buf.String()
}
