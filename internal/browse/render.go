package browse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"dbexplorer/internal/record"
)

const (
	Placeholder = "No keys found."
	ListHint    = "Press enter to select a key. Start typing to filter keys: "
	DetailHint  = "Press enter to go back."

	hexDumpWidth = 16
)

// Render produces the frame for the current mode.
func Render(s State, st Styles) string {
	if s.mode == ModeDetail && s.detail >= 0 && int(s.detail) < len(s.records) {
		return RenderDetail(s.records[s.detail], s.feeds, st)
	}
	return RenderList(s, st)
}

// RenderList draws the visible window of the filtered list and the footer.
func RenderList(s State, st Styles) string {
	var b strings.Builder
	if len(s.filtered) == 0 {
		b.WriteString(Placeholder)
		b.WriteString("\n")
	} else {
		end := s.offset + s.VisibleHeight()
		if end > len(s.filtered) {
			end = len(s.filtered)
		}
		for i := s.offset; i < end; i++ {
			b.WriteString(renderItem(s.filtered[i], i == s.selected, s.width, st))
			b.WriteString("\n")
		}
	}
	hint, filter := footer(s.filter, s.width)
	b.WriteString(st.Hint.Render(hint))
	if filter != "" {
		b.WriteString(st.Emphasis.Render(filter))
	}
	return b.String()
}

// footer fits the hint and filter into width, cutting the hint first. A
// filter wider than the terminal keeps its tail so the cursor end stays
// visible.
func footer(filter string, width int) (string, string) {
	if width <= 0 {
		return ListHint, filter
	}
	fw := runewidth.StringWidth(filter)
	if fw >= width {
		return "", runewidth.TruncateLeft(filter, fw-width+1, "…")
	}
	room := width - fw
	if runewidth.StringWidth(ListHint) <= room {
		return ListHint, filter
	}
	return runewidth.Truncate(ListHint, room, "…"), filter
}

// ConflictLabel is the annotation for an item, empty without conflicts. The
// count shown is the total number of versions.
func ConflictLabel(it Item) string {
	if it.Conflicts <= 0 {
		return ""
	}
	return fmt.Sprintf("%d conflicting nodes", it.Conflicts+1)
}

func renderItem(it Item, selected bool, width int, st Styles) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	key, label := it.Key, ConflictLabel(it)
	if width > 0 {
		room := width - runewidth.StringWidth(cursor)
		if label != "" && runewidth.StringWidth(label)+2 > room {
			label = ""
		}
		if label != "" {
			room -= runewidth.StringWidth(label) + 1
		}
		key = runewidth.Truncate(key, room, "…")
	}
	line := key
	if label != "" {
		line += " " + st.Emphasis.Render(label)
	}
	if selected {
		return st.Selected.Render(cursor + line)
	}
	return cursor + line
}

// RenderDetail lays out every version of rec with its feed counters.
func RenderDetail(rec record.Record, feeds record.Feeds, st Styles) string {
	lines := []string{st.Emphasis.Render(rec.Key)}
	for i, v := range rec.Versions {
		lines = append(lines, "\nNode #"+strconv.Itoa(i))
		lines = append(lines, "\n"+renderVersion(v, feeds, st))
	}
	lines = append(lines, "\n"+st.Hint.Render(DetailHint))
	return strings.Join(lines, "\n")
}

func renderVersion(v record.Version, feeds record.Feeds, st Styles) string {
	var lines []string
	if v.Deleted {
		lines = append(lines, st.Emphasis.Render("deleted"))
	}
	lines = append(lines,
		st.Emphasis.Render("value"),
		formatValue(v.Value),
		"",
		st.Emphasis.Render("feed"),
		renderFeed(v.FeedIndex, feeds),
	)
	return strings.Join(lines, "\n")
}

func renderFeed(i int, feeds record.Feeds) string {
	f, ok := feeds.Lookup(i)
	if !ok {
		return fmt.Sprintf("feed #%d unavailable", i)
	}
	byteLen := strconv.FormatInt(f.ByteLength, 10)
	if f.ByteLength >= 1000 {
		byteLen += " (" + humanize.Bytes(uint64(f.ByteLength)) + ")"
	}
	return strings.Join([]string{
		"key: " + f.KeyHex(),
		"discovery key: " + f.DiscoveryKeyHex(),
		"length: " + strconv.FormatInt(f.Length, 10),
		"byte length: " + byteLen,
	}, "\n")
}

// formatValue shows text as is and anything else as a hex dump.
func formatValue(v []byte) string {
	if utf8.Valid(v) {
		return string(v)
	}
	lines := make([]string, 0, len(v)/hexDumpWidth+1)
	for off := 0; off < len(v); off += hexDumpWidth {
		end := off + hexDumpWidth
		if end > len(v) {
			end = len(v)
		}
		lines = append(lines, hexLine(off, v[off:end]))
	}
	return strings.Join(lines, "\n")
}

func hexLine(offset int, chunk []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%08x  ", offset)
	for i := 0; i < hexDumpWidth; i++ {
		if i < len(chunk) {
			fmt.Fprintf(&b, "%02x ", chunk[i])
		} else {
			b.WriteString("   ")
		}
		if i == 7 {
			b.WriteString(" ")
		}
	}
	b.WriteString(" |")
	for _, c := range chunk {
		if c >= 32 && c <= 126 {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	b.WriteString("|")
	return b.String()
}
