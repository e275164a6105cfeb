package view

import (
	"log/slog"
	"sync"

	"github.com/couchcryptid/seismic-map-service/internal/domain"
	"github.com/couchcryptid/seismic-map-service/internal/observability"
)

// DefaultFocusZoom is the zoom level used when a list row is activated.
const DefaultFocusZoom = 6

// Fixed parts of the marker style; radius and fill come from the record.
const (
	markerStroke      = "#fff"
	markerWeight      = 1
	markerOpacity     = 1
	markerFillOpacity = 0.7
)

// Binding ties a rendered record to its marker and list row.
type Binding struct {
	ID     string
	Record domain.EventRecord
	Marker MarkerHandle
	Row    RowHandle
}

// Synchronizer renders records into a MapView and a ListView and keeps them
// linked by record id. Renders and activations are serialized, so a click
// never observes a partially rendered batch.
type Synchronizer struct {
	mapView   MapView
	list      ListView
	format    *domain.Formatter
	focusZoom int
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu       sync.Mutex
	bindings map[string]*Binding
	order    []string
	activeID string
}

// NewSynchronizer creates a Synchronizer over the given views. A focusZoom
// of zero or less uses DefaultFocusZoom.
func NewSynchronizer(mapView MapView, list ListView, format *domain.Formatter, focusZoom int, logger *slog.Logger, metrics *observability.Metrics) *Synchronizer {
	if focusZoom <= 0 {
		focusZoom = DefaultFocusZoom
	}
	return &Synchronizer{
		mapView:   mapView,
		list:      list,
		format:    format,
		focusZoom: focusZoom,
		logger:    logger,
		metrics:   metrics,
		bindings:  make(map[string]*Binding),
	}
}

// RenderAll replaces both views with records, in the order given. The feed
// order is kept as-is; nothing is re-sorted. Records repeating an id that is
// already bound are skipped. Returns the number of bindings.
func (s *Synchronizer) RenderAll(records []domain.EventRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()

	for i := range records {
		rec := records[i]
		if _, dup := s.bindings[rec.ID]; dup {
			s.logger.Warn("duplicate event id, skipping render", "event_id", rec.ID)
			continue
		}
		s.bindings[rec.ID] = s.renderLocked(rec)
		s.order = append(s.order, rec.ID)
	}

	s.metrics.RecordsRendered.Set(float64(len(s.order)))
	return len(s.order)
}

// RenderFailure clears both views and shows message as the only list entry.
// The map is left without markers.
func (s *Synchronizer) RenderFailure(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	s.list.ShowPlaceholder(message)
	s.metrics.RecordsRendered.Set(0)
}

func (s *Synchronizer) resetLocked() {
	s.mapView.ClearMarkers()
	s.list.Clear()
	s.bindings = make(map[string]*Binding)
	s.order = nil
	s.activeID = ""
}

func (s *Synchronizer) renderLocked(rec domain.EventRecord) *Binding {
	severity := domain.Classify(rec.Magnitude)
	id := rec.ID

	marker := s.mapView.AddCircleMarker(
		LatLng{Lat: rec.Coordinates.Lat, Lng: rec.Coordinates.Lng},
		MarkerStyle{
			Radius:      domain.MarkerRadius(rec.Magnitude),
			FillColor:   severity.Color,
			Color:       markerStroke,
			Weight:      markerWeight,
			Opacity:     markerOpacity,
			FillOpacity: markerFillOpacity,
		},
	)
	marker.BindPopup(PopupHTML(rec, s.format))
	marker.OnClick(func() { s.OnMarkerActivated(id) })

	row := s.list.AppendRow(Row{
		Magnitude:      s.format.Magnitude(rec.Magnitude),
		MagnitudeClass: severity.Class,
		Place:          rec.Place,
		Time:           s.format.Time(rec.OccurredAt),
	})
	row.OnClick(func() { s.OnListItemActivated(id) })

	return &Binding{ID: id, Record: rec, Marker: marker, Row: row}
}

// OnListItemActivated focuses the map on the record with the given id at
// the focus zoom, opens its popup and highlights its row. An unknown id,
// for example from a handler left over from an earlier render, is ignored.
// Reports whether the id was bound.
func (s *Synchronizer) OnListItemActivated(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bindings[id]
	if !ok {
		s.lookupMissLocked("list", id)
		return false
	}

	s.mapView.SetView(LatLng{Lat: b.Record.Coordinates.Lat, Lng: b.Record.Coordinates.Lng}, s.focusZoom)
	b.Marker.OpenPopup()
	s.highlightLocked(b)
	s.metrics.Activations.WithLabelValues("list", "hit").Inc()
	return true
}

// OnMarkerActivated opens the popup of the record with the given id and
// highlights its list row without moving the map. Unknown ids are ignored.
func (s *Synchronizer) OnMarkerActivated(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bindings[id]
	if !ok {
		s.lookupMissLocked("map", id)
		return false
	}

	b.Marker.OpenPopup()
	s.highlightLocked(b)
	s.metrics.Activations.WithLabelValues("map", "hit").Inc()
	return true
}

func (s *Synchronizer) lookupMissLocked(source, id string) {
	s.logger.Debug("activation for unbound event id ignored", "source", source, "event_id", id)
	s.metrics.Activations.WithLabelValues(source, "miss").Inc()
}

func (s *Synchronizer) highlightLocked(b *Binding) {
	if prev, ok := s.bindings[s.activeID]; ok && prev != b {
		prev.Row.SetActive(false)
	}
	b.Row.SetActive(true)
	s.activeID = b.ID
}

// Len returns the number of bindings.
func (s *Synchronizer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Lookup returns the binding for id.
func (s *Synchronizer) Lookup(id string) (Binding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bindings[id]
	if !ok {
		return Binding{}, false
	}
	return *b, true
}

// ActiveID returns the id of the highlighted record, or "" if none.
func (s *Synchronizer) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Records returns the bound records in render order.
func (s *Synchronizer) Records() []domain.EventRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.EventRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.bindings[id].Record)
	}
	return out
}

// Inspect runs fn while no render or activation is in progress. fn must not
// call back into the Synchronizer.
func (s *Synchronizer) Inspect(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}
