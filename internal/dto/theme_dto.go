package dto

// ThemeRequest merges into the global appearance record. Color and image are
// mutually exclusive; supplying one clears the other.
type ThemeRequest struct {
	DarkMode        *bool   `json:"darkMode,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty" validate:"omitempty,hexcolor"`
	BackgroundImage *string `json:"backgroundImage,omitempty"`
}
