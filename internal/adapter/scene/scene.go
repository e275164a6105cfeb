package scene

// Scene pairs a map and a list.
type Scene struct {
	Map  *Map
	List *List
}

// New creates an empty scene.
func New(tiles TileLayer) *Scene {
	return &Scene{Map: NewMap(tiles), List: NewList()}
}

// State is a snapshot of both views.
type State struct {
	Map  MapState  `json:"map"`
	List ListState `json:"list"`
}

// State returns a snapshot of the scene.
func (s *Scene) State() State {
	return State{Map: s.Map.State(), List: s.List.State()}
}
