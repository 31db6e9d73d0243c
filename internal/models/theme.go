package models

// Theme is the single process-wide appearance record. Background color and
// background image are mutually exclusive; setting one clears the other.
type Theme struct {
	DarkMode        bool   `json:"darkMode"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// DefaultTheme returns the appearance used before any preference is saved.
func DefaultTheme() Theme {
	return Theme{
		DarkMode:        false,
		BackgroundColor: "#f0f4f8",
	}
}
