// Package view keeps a map view and a list view of seismic events in step.
//
// The map and list are consumed as capabilities: anything that can place a
// styled circle marker, attach and open a popup, and pan to a point can serve
// as a MapView; anything that can hold ordered rows with click handlers can
// serve as a ListView. The Synchronizer owns both and the id-keyed binding
// table that links a marker to its row.
package view

// LatLng is a map position.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MarkerStyle describes how a circle marker is drawn.
type MarkerStyle struct {
	Radius      float64 `json:"radius"`
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
}

// Row is the content of one list entry.
type Row struct {
	Magnitude      string `json:"magnitude"`
	MagnitudeClass string `json:"magnitudeClass"`
	Place          string `json:"place"`
	Time           string `json:"time"`
}

// MapView is the map capability.
type MapView interface {
	AddCircleMarker(at LatLng, style MarkerStyle) MarkerHandle
	SetView(center LatLng, zoom int)
	ClearMarkers()
}

// MarkerHandle is a marker placed on a MapView.
type MarkerHandle interface {
	BindPopup(html string)
	OpenPopup()
	OnClick(fn func())
}

// ListView is the list capability.
type ListView interface {
	AppendRow(row Row) RowHandle
	// ShowPlaceholder replaces all rows with a single message row.
	ShowPlaceholder(text string)
	Clear()
}

// RowHandle is a row appended to a ListView.
type RowHandle interface {
	SetActive(active bool)
	OnClick(fn func())
}
