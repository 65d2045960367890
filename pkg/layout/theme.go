package layout

// ThemeInfo is the display form of a stub key.
type ThemeInfo struct {
	Name string
	// Color is an index into the 256-colour terminal palette.
	Color int
}

var themes = map[string]ThemeInfo{
	"PineMountains": {"Pine Mountains", 28},
	"Volcano":       {"Glowing Gorge", 202},
	"Savanna":       {"Tranquil Oasis", 214},
	"Western":       {"Sanguine Gulch", 220},
	"ZenGardens":    {"Serenity Valley", 163},
	"Steampunk":     {"Steamtown", 94},
}

var invalidTheme = ThemeInfo{"INVALID", 196}

// Theme returns the in-game world name for stubKey.
func Theme(stubKey string) ThemeInfo {
	if t, ok := themes[stubKey]; ok {
		return t
	}
	return invalidTheme
}
