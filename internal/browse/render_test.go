package browse

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"dbexplorer/internal/record"
)

var plain = PlainStyles()

func TestRenderListAnnotations(t *testing.T) {
	in := []record.Record{
		{Key: "one", Versions: make([]record.Version, 1)},
		{Key: "three", Versions: make([]record.Version, 3)},
	}
	out := Render(New(in, nil), plain)
	lines := strings.Split(out, "\n")
	if lines[0] != "> one" {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if lines[1] != "  three 3 conflicting nodes" {
		t.Fatalf("line 1 = %q", lines[1])
	}
	if lines[2] != ListHint {
		t.Fatalf("footer = %q", lines[2])
	}
}

func TestRenderListEmpty(t *testing.T) {
	out := Render(New(nil, nil), plain)
	if out != Placeholder+"\n"+ListHint {
		t.Fatalf("unexpected empty frame %q", out)
	}
	s, _ := Reduce(New(recs("a"), nil), LineUpdated{Line: "q"})
	out = Render(s, plain)
	if out != Placeholder+"\n"+ListHint+"q" {
		t.Fatalf("unexpected no-match frame %q", out)
	}
}

func TestRenderListWindow(t *testing.T) {
	s := New(manyRecs(10), nil)
	s, _ = Reduce(s, Resize{Height: 4})
	for i := 0; i < 5; i++ {
		s, _ = Reduce(s, Down{})
	}
	lines := strings.Split(Render(s, plain), "\n")
	if len(lines) != 4 {
		t.Fatalf("frame has %d lines, want 4:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	want := []string{"  ad", "  ae", "> af"}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestRenderListTruncatesToWidth(t *testing.T) {
	in := []record.Record{
		{Key: "a-very-long-key-name", Versions: make([]record.Version, 2)},
	}
	s, _ := Reduce(New(in, nil), Resize{Width: 30, Height: 10})
	first := strings.Split(Render(s, plain), "\n")[0]
	if first != "> a-very-… 2 conflicting nodes" {
		t.Fatalf("expected truncated key with label, got %q", first)
	}

	s, _ = Reduce(s, Resize{Width: 10, Height: 10})
	first = strings.Split(Render(s, plain), "\n")[0]
	if strings.Contains(first, "conflicting") || len([]rune(first)) > 10 {
		t.Fatalf("narrow row should drop the label and fit: %q", first)
	}
}

func TestRenderListFooterFitsWidth(t *testing.T) {
	s, _ := Reduce(New(recs("a", "ab"), nil), Resize{Width: 40, Height: 4})
	s, _ = Reduce(s, LineUpdated{Line: "a"})
	lines := strings.Split(Render(s, plain), "\n")
	if len(lines) > 4 {
		t.Fatalf("frame has %d lines, terminal has 4", len(lines))
	}
	last := lines[len(lines)-1]
	if w := runewidth.StringWidth(last); w > 40 {
		t.Fatalf("footer width %d exceeds 40: %q", w, last)
	}
	if !strings.HasSuffix(last, "…a") {
		t.Fatalf("footer should keep the filter visible: %q", last)
	}

	long := strings.Repeat("x", 50) + "yz"
	s, _ = Reduce(s, LineUpdated{Line: long})
	lines = strings.Split(Render(s, plain), "\n")
	last = lines[len(lines)-1]
	if w := runewidth.StringWidth(last); w != 40 || !strings.HasPrefix(last, "…") || !strings.HasSuffix(last, "yz") {
		t.Fatalf("long filter should keep its tail within 40 columns: %q", last)
	}
}

func TestConflictLabel(t *testing.T) {
	if got := ConflictLabel(Item{Conflicts: 0}); got != "" {
		t.Fatalf("no conflicts should have no label, got %q", got)
	}
	if got := ConflictLabel(Item{Conflicts: 2}); got != "3 conflicting nodes" {
		t.Fatalf("label = %q", got)
	}
}

func TestRenderDetail(t *testing.T) {
	feeds := record.Feeds{{Key: []byte{0xab}, DiscoveryKey: []byte{0xcd}, Length: 3, ByteLength: 2048}}
	rec := record.Record{Key: "k", Versions: []record.Version{
		{Value: []byte("hello"), FeedIndex: 0},
		{Deleted: true, FeedIndex: 5},
	}}
	want := strings.Join([]string{
		"k",
		"",
		"Node #0",
		"",
		"value",
		"hello",
		"",
		"feed",
		"key: ab",
		"discovery key: cd",
		"length: 3",
		"byte length: 2048 (2.0 kB)",
		"",
		"Node #1",
		"",
		"deleted",
		"value",
		"",
		"",
		"feed",
		"feed #5 unavailable",
		"",
		DetailHint,
	}, "\n")
	if got := RenderDetail(rec, feeds, plain); got != want {
		t.Fatalf("detail mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatValueHexDump(t *testing.T) {
	got := formatValue([]byte{0xff, 'A', 0x00})
	want := "00000000  ff 41 00 " + strings.Repeat("   ", 5) + " " + strings.Repeat("   ", 8) + " |.A.|"
	if got != want {
		t.Fatalf("hex dump mismatch:\n got: %q\nwant: %q", got, want)
	}
	if got := formatValue([]byte("plain text")); got != "plain text" {
		t.Fatalf("text value altered: %q", got)
	}
}

func TestEndToEndScenario(t *testing.T) {
	in := []record.Record{
		{Key: "a", Versions: []record.Version{{Value: []byte("v1")}}},
		{Key: "b", Versions: []record.Version{{Value: []byte("v1")}, {Value: []byte("v2")}}},
		{Key: "c", Versions: []record.Version{{Value: []byte("v1")}}},
	}
	s := New(in, nil)

	lines := strings.Split(Render(s, plain), "\n")
	want := []string{"> a", "  b 2 conflicting nodes", "  c"}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("initial line %d = %q, want %q", i, lines[i], w)
		}
	}

	s, _ = Reduce(s, LineUpdated{Line: "b"})
	lines = strings.Split(Render(s, plain), "\n")
	if len(lines) != 2 || lines[0] != "> b 2 conflicting nodes" || lines[1] != ListHint+"b" {
		t.Fatalf("filtered frame = %q", lines)
	}

	s, _ = Reduce(s, Enter{})
	detail := Render(s, plain)
	if !strings.HasPrefix(detail, "b\n") || strings.Count(detail, "Node #") != 2 {
		t.Fatalf("detail frame = %q", detail)
	}

	s, _ = Reduce(s, Enter{})
	if s.Mode() != ModeList || s.Filter() != "b" {
		t.Fatalf("back in list: mode=%v filter=%q", s.Mode(), s.Filter())
	}
	if it, ok := s.Selected(); !ok || it.Key != "b" {
		t.Fatalf("b should still be selected")
	}
	if Render(s, plain) != "> b 2 conflicting nodes\n"+ListHint+"b" {
		t.Fatalf("list frame after detail = %q", Render(s, plain))
	}
}
