package docsystem

import "time"

// Theme values accepted by the shell.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Preferences holds the editor settings persisted between sessions.
type Preferences struct {
	Theme     string    `json:"theme"`
	FontSize  int       `json:"font_size"`
	AutoSave  bool      `json:"auto_save"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPreferences returns the settings used before anything is saved.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Theme:    ThemeSystem,
		FontSize: 14,
		AutoSave: false,
	}
}
