package browse

import "dbexplorer/internal/record"

type Mode int

const (
	ModeList Mode = iota
	ModeDetail
)

func (m Mode) String() string {
	if m == ModeDetail {
		return "detail"
	}
	return "list"
}

// DefaultTerminalHeight is assumed until the first resize arrives.
const DefaultTerminalHeight = 24

// Event is one keyboard or terminal notification.
type Event interface{ isEvent() }

type (
	Up          struct{}
	Down        struct{}
	Enter       struct{}
	LineUpdated struct{ Line string }
	Resize      struct{ Width, Height int }
)

func (Up) isEvent()          {}
func (Down) isEvent()        {}
func (Enter) isEvent()       {}
func (LineUpdated) isEvent() {}
func (Resize) isEvent()      {}

// State is the whole navigation state. Records and feeds are shared
// read-only; every other field is replaced by Reduce.
type State struct {
	records []record.Record
	feeds   record.Feeds
	list    List

	mode     Mode
	filter   string
	filtered []Item
	// selected indexes filtered and is -1 while filtered is empty.
	// selectedID is NoIdentity while nothing is selected.
	selected   int
	selectedID record.Identity
	detail     record.Identity

	width, height int
	offset        int
}

// New builds the initial list-mode state over a loaded record collection.
func New(records []record.Record, feeds record.Feeds) State {
	return NewWithList(records, feeds, BuildList(records))
}

// NewWithList is New with a caller-supplied list, for a custom matcher.
func NewWithList(records []record.Record, feeds record.Feeds, l List) State {
	s := State{
		records:    records,
		feeds:      feeds,
		list:       l,
		mode:       ModeList,
		filtered:   l.All(),
		selected:   -1,
		selectedID: NoIdentity,
		detail:     NoIdentity,
		height:     DefaultTerminalHeight,
	}
	if len(s.filtered) > 0 {
		s.selected = 0
		s.selectedID = s.filtered[0].ID
	}
	return s
}

func (s State) Mode() Mode       { return s.mode }
func (s State) Filter() string   { return s.filter }
func (s State) Filtered() []Item { return s.filtered }
func (s State) Offset() int      { return s.offset }
func (s State) Width() int       { return s.width }

// SelectedIndex is the selected position in Filtered, or -1.
func (s State) SelectedIndex() int { return s.selected }

func (s State) Selected() (Item, bool) {
	if s.selected < 0 || s.selected >= len(s.filtered) {
		return Item{}, false
	}
	return s.filtered[s.selected], true
}

// DetailID is the record shown in detail mode, NoIdentity otherwise.
func (s State) DetailID() record.Identity { return s.detail }

// VisibleHeight is the number of list rows; one line is kept for the footer.
func (s State) VisibleHeight() int {
	if s.height-1 < 1 {
		return 1
	}
	return s.height - 1
}

// Reduce applies ev and reports whether anything changed. Unchanged
// results are the guarded no-ops that need no redraw.
func Reduce(s State, ev Event) (State, bool) {
	switch ev := ev.(type) {
	case Up:
		if s.mode != ModeList || s.selected <= 0 {
			return s, false
		}
		s.selectItem(s.selected - 1)
		return s, true
	case Down:
		if s.mode != ModeList || s.selected < 0 || s.selected >= len(s.filtered)-1 {
			return s, false
		}
		s.selectItem(s.selected + 1)
		return s, true
	case LineUpdated:
		if ev.Line == s.filter {
			return s, false
		}
		s.filter = ev.Line
		s.filtered = s.list.ApplyFilter(s.filter)
		s.reconcile()
		return s, true
	case Enter:
		switch s.mode {
		case ModeList:
			it, ok := s.Selected()
			if !ok {
				return s, false
			}
			s.mode = ModeDetail
			s.detail = it.ID
		case ModeDetail:
			s.mode = ModeList
			s.detail = NoIdentity
			s.reconcile()
		}
		return s, true
	case Resize:
		if ev.Width == s.width && ev.Height == s.height {
			return s, false
		}
		s.width, s.height = ev.Width, ev.Height
		s.offset = scrollOffset(s.offset, s.selected, s.VisibleHeight(), len(s.filtered))
		return s, true
	}
	return s, false
}

func (s *State) selectItem(i int) {
	s.selected = i
	s.selectedID = s.filtered[i].ID
	s.offset = scrollOffset(s.offset, s.selected, s.VisibleHeight(), len(s.filtered))
}

func (s *State) reconcile() {
	s.selected = Reconcile(s.selectedID, s.filtered)
	if s.selected < 0 {
		s.selectedID = NoIdentity
	} else {
		s.selectedID = s.filtered[s.selected].ID
	}
	s.offset = scrollOffset(s.offset, s.selected, s.VisibleHeight(), len(s.filtered))
}

// scrollOffset moves offset as little as possible so selected stays within
// [offset, offset+height).
func scrollOffset(offset, selected, height, n int) int {
	if n <= height || selected < 0 {
		return 0
	}
	if selected < offset {
		offset = selected
	}
	if selected >= offset+height {
		offset = selected - height + 1
	}
	if offset > n-height {
		offset = n - height
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
