// Package scene is an in-memory implementation of the map and list view
// capabilities. It holds what a browser would draw: markers with popups, the
// map viewport, and list rows, and dispatches clicks to registered handlers.
package scene

import (
	"errors"
	"sync"

	"github.com/couchcryptid/seismic-map-service/internal/view"
)

// ErrNoSuchElement is returned when a click targets an index that is not rendered.
var ErrNoSuchElement = errors.New("no such element")

// Initial viewport: whole world.
var (
	InitialCenter = view.LatLng{Lat: 20, Lng: 0}
	InitialZoom   = 2
)

// TileLayer is the base map layer.
type TileLayer struct {
	URLTemplate string `json:"urlTemplate"`
	Attribution string `json:"attribution"`
}

// Map implements view.MapView.
type Map struct {
	mu      sync.Mutex
	tiles   TileLayer
	center  view.LatLng
	zoom    int
	markers []*Marker
}

// NewMap creates a map showing the whole world with the given tile layer.
func NewMap(tiles TileLayer) *Map {
	return &Map{tiles: tiles, center: InitialCenter, zoom: InitialZoom}
}

// AddCircleMarker places a marker and returns its handle.
func (m *Map) AddCircleMarker(at view.LatLng, style view.MarkerStyle) view.MarkerHandle {
	m.mu.Lock()
	defer m.mu.Unlock()

	mk := &Marker{owner: m, at: at, style: style}
	m.markers = append(m.markers, mk)
	return mk
}

// SetView pans and zooms the viewport.
func (m *Map) SetView(center view.LatLng, zoom int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = center
	m.zoom = zoom
}

// ClearMarkers removes every marker. Handles from before the clear keep
// working but no longer affect the map.
func (m *Map) ClearMarkers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mk := range m.markers {
		mk.detached = true
	}
	m.markers = nil
}

// ClickMarker runs the click handler of the marker at index i.
func (m *Map) ClickMarker(i int) error {
	m.mu.Lock()
	if i < 0 || i >= len(m.markers) {
		m.mu.Unlock()
		return ErrNoSuchElement
	}
	fn := m.markers[i].onClick
	m.mu.Unlock()

	// Handlers may call back into the map; run them unlocked.
	if fn != nil {
		fn()
	}
	return nil
}

// Marker implements view.MarkerHandle.
type Marker struct {
	owner    *Map
	at       view.LatLng
	style    view.MarkerStyle
	popup    string
	open     bool
	detached bool
	onClick  func()
}

// BindPopup sets the popup HTML.
func (mk *Marker) BindPopup(html string) {
	mk.owner.mu.Lock()
	defer mk.owner.mu.Unlock()
	mk.popup = html
}

// OpenPopup opens this marker's popup and closes any other.
func (mk *Marker) OpenPopup() {
	mk.owner.mu.Lock()
	defer mk.owner.mu.Unlock()
	if mk.detached || mk.popup == "" {
		return
	}
	for _, other := range mk.owner.markers {
		other.open = false
	}
	mk.open = true
}

// OnClick registers the click handler.
func (mk *Marker) OnClick(fn func()) {
	mk.owner.mu.Lock()
	defer mk.owner.mu.Unlock()
	mk.onClick = fn
}

// MarkerState is the snapshot form of a marker.
type MarkerState struct {
	Index     int              `json:"index"`
	Position  view.LatLng      `json:"position"`
	Style     view.MarkerStyle `json:"style"`
	Popup     string           `json:"popup"`
	PopupOpen bool             `json:"popupOpen"`
}

// MapState is the snapshot form of the map.
type MapState struct {
	Tiles   TileLayer     `json:"tiles"`
	Center  view.LatLng   `json:"center"`
	Zoom    int           `json:"zoom"`
	Markers []MarkerState `json:"markers"`
}

// State returns a snapshot of the map.
func (m *Map) State() MapState {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := MapState{
		Tiles:   m.tiles,
		Center:  m.center,
		Zoom:    m.zoom,
		Markers: make([]MarkerState, len(m.markers)),
	}
	for i, mk := range m.markers {
		st.Markers[i] = MarkerState{
			Index:     i,
			Position:  mk.at,
			Style:     mk.style,
			Popup:     mk.popup,
			PopupOpen: mk.open,
		}
	}
	return st
}
