package theme

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Palette contains the subset of terminal theme colours we care about.
type Palette struct {
	PrimaryBackground string
	PrimaryForeground string
	Normal            map[string]string
}

func configBase() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return base
}

// OmarchyPaths lists the directories and file whose changes mean the
// Omarchy theme was switched. The last entry is the palette file.
func OmarchyPaths() []string {
	base := configBase()
	if base == "" {
		return nil
	}
	current := filepath.Join(base, "omarchy", "current")
	themeDir := filepath.Join(current, "theme")
	return []string{current, themeDir, filepath.Join(themeDir, "alacritty.toml")}
}

// loadFromOmarchy parses the alacritty.toml of the current Omarchy theme.
func loadFromOmarchy() (Palette, bool) {
	var pal Palette
	paths := OmarchyPaths()
	if len(paths) == 0 {
		return pal, false
	}
	b, err := os.ReadFile(paths[len(paths)-1])
	if err != nil {
		return pal, false
	}
	var root map[string]any
	if err := toml.Unmarshal(b, &root); err != nil {
		return pal, false
	}
	pal = extractPalette(root)
	if pal.PrimaryBackground == "" && pal.PrimaryForeground == "" {
		return pal, false
	}
	return pal, true
}

func extractPalette(root map[string]any) Palette {
	pal := Palette{Normal: map[string]string{}}
	colors, _ := root["colors"].(map[string]any)
	if colors == nil {
		return pal
	}
	if prim, ok := colors["primary"].(map[string]any); ok {
		if bg, ok := prim["background"].(string); ok {
			pal.PrimaryBackground = normalizeHex(bg)
		}
		if fg, ok := prim["foreground"].(string); ok {
			pal.PrimaryForeground = normalizeHex(fg)
		}
	}
	if norm, ok := colors["normal"].(map[string]any); ok {
		for k, v := range norm {
			if s, ok := v.(string); ok {
				pal.Normal[k] = normalizeHex(s)
			}
		}
	}
	return pal
}

// normalizeHex converts Alacritty-style hex like "0x1d2021" into "#1d2021".
func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if strings.HasPrefix(s, "0x") && len(s) == 8 {
		return "#" + s[2:]
	}
	if s[0] == '#' && len(s) == 7 {
		return s
	}
	// Some themes omit prefix; try to coerce 6-hex
	if len(s) == 6 {
		return "#" + s
	}
	return s
}
