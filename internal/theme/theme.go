package theme

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

const (
	darkAccent  = "#89b4fa"
	lightAccent = "#1e66f5"
)

type Theme struct {
	Mode   string // auto|dark|light (requested)
	Dark   bool
	Colors Palette
}

// Detect resolves a dark/light theme: explicit mode wins, then the Omarchy
// current theme, then pywal; otherwise dark.
func Detect(mode string) Theme {
	t := Theme{Mode: mode, Dark: true}
	if mode == "dark" {
		return t
	}
	if mode == "light" {
		t.Dark = false
		return t
	}
	if pal, ok := loadFromOmarchy(); ok {
		t.Colors = pal
		if r, g, b, ok := hexToRGB(pal.PrimaryBackground); ok {
			t.Dark = luminance(r, g, b) < 0.5
		}
		return t
	}
	if dark, ok := darkFromPywal(); ok {
		t.Dark = dark
	}
	return t
}

// Accent is the colour for the emphasised row.
func (t Theme) Accent() string {
	for _, name := range []string{"cyan", "blue", "magenta"} {
		if c := t.Colors.Normal[name]; c != "" {
			return c
		}
	}
	if t.Dark {
		return darkAccent
	}
	return lightAccent
}

// pywalColors is a subset of pywal colors.json
type pywalColors struct {
	Special struct {
		Background string `json:"background"`
	} `json:"special"`
}

func darkFromPywal() (bool, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return false, false
	}
	b, err := os.ReadFile(filepath.Join(home, ".cache", "wal", "colors.json"))
	if err != nil {
		return false, false
	}
	var c pywalColors
	if err := json.Unmarshal(b, &c); err != nil {
		return false, false
	}
	r, g, bl, ok := hexToRGB(c.Special.Background)
	if !ok {
		return false, false
	}
	return luminance(r, g, bl) < 0.5, true
}

// luminance is the perceived brightness in [0,1].
func luminance(r, g, b int) float64 {
	return 0.2126*float64(r)/255 + 0.7152*float64(g)/255 + 0.0722*float64(b)/255
}

func hexToRGB(s string) (int, int, int, bool) {
	// Accept formats like #rrggbb
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	r64, err := strconv.ParseUint(s[1:3], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	g64, err := strconv.ParseUint(s[3:5], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	b64, err := strconv.ParseUint(s[5:7], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(r64), int(g64), int(b64), true
}
