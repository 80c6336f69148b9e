package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme matches the theme written by `well config init`.
const DefaultTheme = "dracula"

// ThemeProvider tracks the active bubbletint theme and builds Styles from it.
type ThemeProvider struct {
	registry *tint.Registry
	ids      []string
}

// NewThemeProvider creates a ThemeProvider showing initialTheme, or
// DefaultTheme when initialTheme is empty or unknown.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	all := tint.DefaultTints()

	var fallback tint.Tint
	for _, t := range all {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}
	if fallback == nil && len(all) > 0 {
		fallback = all[0]
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, all...)}
	tp.ids = tp.registry.TintIDs()
	sort.Strings(tp.ids)

	if initialTheme != "" {
		tp.registry.SetTintID(initialTheme)
	}
	return tp
}

// SetTheme switches to name and reports whether it exists. Unknown names
// leave the current theme in place.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// Has reports whether name is a known theme ID.
func (tp *ThemeProvider) Has(name string) bool {
	i := sort.SearchStrings(tp.ids, name)
	return i < len(tp.ids) && tp.ids[i] == name
}

// CurrentName returns the ID of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the human-readable name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns every theme ID, sorted.
func (tp *ThemeProvider) AvailableThemes() []string {
	return append([]string(nil), tp.ids...)
}

// Styles returns a Styles struct configured for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
