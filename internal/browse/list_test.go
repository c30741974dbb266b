package browse

import (
	"reflect"
	"testing"

	"dbexplorer/internal/record"
)

func recs(keys ...string) []record.Record {
	out := make([]record.Record, len(keys))
	for i, k := range keys {
		out[i] = record.Record{Key: k, Versions: []record.Version{{Value: []byte(k)}}}
	}
	return out
}

func keysOf(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key
	}
	return out
}

func TestInitializeSortsByKey(t *testing.T) {
	in := recs("pear", "apple", "Zebra", "fig", "apple")
	items := Initialize(in)
	want := []string{"Zebra", "apple", "apple", "fig", "pear"}
	if got := keysOf(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	// duplicates keep record order
	if items[1].ID != 1 || items[2].ID != 4 {
		t.Fatalf("unstable tie order: %+v", items)
	}
	seen := map[record.Identity]bool{}
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("identity %d repeated", it.ID)
		}
		seen[it.ID] = true
		if in[it.ID].Key != it.Key {
			t.Fatalf("identity %d points at %q, item says %q", it.ID, in[it.ID].Key, it.Key)
		}
	}
	if len(seen) != len(in) {
		t.Fatalf("got %d items for %d records", len(seen), len(in))
	}
}

func TestInitializeEmpty(t *testing.T) {
	if items := Initialize(nil); len(items) != 0 {
		t.Fatalf("expected empty list, got %v", items)
	}
}

func TestInitializeConflicts(t *testing.T) {
	in := []record.Record{
		{Key: "one", Versions: make([]record.Version, 1)},
		{Key: "three", Versions: make([]record.Version, 3)},
	}
	items := Initialize(in)
	if items[0].Conflicts != 0 || items[1].Conflicts != 2 {
		t.Fatalf("conflicts mismatch: %+v", items)
	}
}

type reversed struct{ n int }

func (r reversed) Match(string) []int {
	out := make([]int, r.n)
	for i := range out {
		out[i] = r.n - 1 - i
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	l := BuildList(recs("b", "a", "ab", "c"))
	if got := keysOf(l.ApplyFilter("")); !reflect.DeepEqual(got, []string{"a", "ab", "b", "c"}) {
		t.Fatalf("empty filter = %v", got)
	}
	if got := keysOf(l.ApplyFilter("a")); !reflect.DeepEqual(got, []string{"a", "ab"}) {
		t.Fatalf("filter a = %v", got)
	}
	if got := l.ApplyFilter("zz"); len(got) != 0 {
		t.Fatalf("filter zz = %v", got)
	}
}

func TestApplyFilterKeepsMatcherOrder(t *testing.T) {
	items := Initialize(recs("a", "b", "c"))
	l := NewList(items, reversed{n: 3})
	if got := keysOf(l.ApplyFilter("x")); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Fatalf("matcher order not preserved: %v", got)
	}
}

func TestApplyFilterIsSubset(t *testing.T) {
	l := BuildList(recs("users/a", "users/b", "config", "cache", "u"))
	all := map[record.Identity]bool{}
	for _, it := range l.ApplyFilter("") {
		all[it.ID] = true
	}
	for _, q := range []string{"u", "us", "users/", "c", "ca", "x"} {
		for _, it := range l.ApplyFilter(q) {
			if !all[it.ID] {
				t.Fatalf("filter %q returned %q outside the full list", q, it.Key)
			}
		}
	}
}

func TestReconcile(t *testing.T) {
	items := []Item{{ID: 4, Key: "a"}, {ID: 2, Key: "b"}, {ID: 7, Key: "c"}}
	cases := []struct {
		name  string
		prev  record.Identity
		items []Item
		want  int
	}{
		{"present", 7, items, 2},
		{"absent", 9, items, 0},
		{"no previous", NoIdentity, items, 0},
		{"empty list", 2, nil, -1},
	}
	for _, c := range cases {
		if got := Reconcile(c.prev, c.items); got != c.want {
			t.Errorf("%s: Reconcile = %d, want %d", c.name, got, c.want)
		}
	}
}
