// Package browse holds the list/filter/detail engine: list state, a pure
// reducer over keyboard events and the frame renderer.
package browse

import (
	"sort"

	"dbexplorer/internal/prefix"
	"dbexplorer/internal/record"
)

// NoIdentity marks the absence of a selected or detail record.
const NoIdentity record.Identity = -1

// Item is the list projection of a Record.
type Item struct {
	ID        record.Identity
	Key       string
	Conflicts int
}

// Matcher is the prefix index contract: positions into the item slice it
// was built from, for every item matching query.
type Matcher interface {
	Match(query string) []int
}

// Initialize projects records to items and sorts them by key. Ties keep
// record order.
func Initialize(records []record.Record) []Item {
	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = Item{ID: record.Identity(i), Key: r.Key, Conflicts: r.Conflicts()}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items
}

// List is the full sorted item collection plus the index over it.
type List struct {
	items []Item
	index Matcher
}

func NewList(items []Item, index Matcher) List {
	return List{items: items, index: index}
}

// BuildList initializes items from records and indexes their keys.
func BuildList(records []record.Record) List {
	items := Initialize(records)
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return NewList(items, prefix.New(keys))
}

func (l List) All() []Item { return l.items }

// ApplyFilter returns the full list for an empty filter, otherwise the
// matcher's result in the order it returned it.
func (l List) ApplyFilter(filter string) []Item {
	if filter == "" || l.index == nil {
		return l.items
	}
	pos := l.index.Match(filter)
	out := make([]Item, 0, len(pos))
	for _, p := range pos {
		if p >= 0 && p < len(l.items) {
			out = append(out, l.items[p])
		}
	}
	return out
}

// Reconcile finds prev in items. It falls back to 0 when prev is absent or
// NoIdentity, and returns -1 when items is empty.
func Reconcile(prev record.Identity, items []Item) int {
	if len(items) == 0 {
		return -1
	}
	if prev == NoIdentity {
		return 0
	}
	for i, it := range items {
		if it.ID == prev {
			return i
		}
	}
	return 0
}
