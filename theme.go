package seri

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	Accent  int // Day headings, links
	Time    int // Session time ranges
	Speaker int // Speaker names
	Error   int // Diagnostics
	Muted   int // Source snippets, status bar
	Kind    int // Session kind tags
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Accent:  5,
		Time:    6,
		Speaker: 4,
		Error:   1,
		Muted:   8,
		Kind:    3,
	}
}
