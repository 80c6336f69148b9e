package ui

// ThemeChangeRequestMsg asks the root model to switch and persist a theme.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// ThemeSavedMsg reports the outcome of writing the theme to the config file.
type ThemeSavedMsg struct {
	ThemeName string
	Err       error
}
