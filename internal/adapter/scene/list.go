package scene

import (
	"sync"

	"github.com/couchcryptid/seismic-map-service/internal/view"
)

// List implements view.ListView.
type List struct {
	mu          sync.Mutex
	rows        []*ListRow
	placeholder string
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// AppendRow adds a row at the end of the list. Any placeholder is removed.
func (l *List) AppendRow(row view.Row) view.RowHandle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.placeholder = ""
	r := &ListRow{owner: l, row: row}
	l.rows = append(l.rows, r)
	return r
}

// ShowPlaceholder replaces all rows with a single message.
func (l *List) ShowPlaceholder(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.detachLocked()
	l.placeholder = text
}

// Clear removes all rows and any placeholder.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.detachLocked()
	l.placeholder = ""
}

func (l *List) detachLocked() {
	for _, r := range l.rows {
		r.detached = true
	}
	l.rows = nil
}

// ClickRow runs the click handler of the row at index i.
func (l *List) ClickRow(i int) error {
	l.mu.Lock()
	if i < 0 || i >= len(l.rows) {
		l.mu.Unlock()
		return ErrNoSuchElement
	}
	fn := l.rows[i].onClick
	l.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

// ListRow implements view.RowHandle.
type ListRow struct {
	owner    *List
	row      view.Row
	active   bool
	detached bool
	onClick  func()
}

// SetActive toggles the row highlight.
func (r *ListRow) SetActive(active bool) {
	r.owner.mu.Lock()
	defer r.owner.mu.Unlock()
	if r.detached {
		return
	}
	r.active = active
}

// OnClick registers the click handler.
func (r *ListRow) OnClick(fn func()) {
	r.owner.mu.Lock()
	defer r.owner.mu.Unlock()
	r.onClick = fn
}

// RowState is the snapshot form of a row.
type RowState struct {
	view.Row
	Index  int  `json:"index"`
	Active bool `json:"active"`
}

// ListState is the snapshot form of the list. Placeholder is set only when
// the list shows a message instead of rows.
type ListState struct {
	Rows        []RowState `json:"rows"`
	Placeholder string     `json:"placeholder,omitempty"`
}

// State returns a snapshot of the list.
func (l *List) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := ListState{
		Rows:        make([]RowState, len(l.rows)),
		Placeholder: l.placeholder,
	}
	for i, r := range l.rows {
		st.Rows[i] = RowState{Row: r.row, Index: i, Active: r.active}
	}
	return st
}
