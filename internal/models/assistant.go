package models

import "time"

// Assistant message senders.
const (
	AssistantSenderUser      = "user"
	AssistantSenderAssistant = "assistant"
)

// AssistantMessage is one entry of the per-identity assistant transcript.
type AssistantMessage struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// AssistantTheme holds the cosmetic settings of the assistant widget,
// independent of the global theme.
type AssistantTheme struct {
	PrimaryColor string `json:"primaryColor"`
	AccentColor  string `json:"accentColor"`
	AvatarStyle  string `json:"avatarStyle"`
	BubbleStyle  string `json:"bubbleStyle"`
	FontStyle    string `json:"fontStyle"`
}

// DefaultAssistantTheme returns the widget settings applied before the user
// customises anything.
func DefaultAssistantTheme() AssistantTheme {
	return AssistantTheme{
		PrimaryColor: "#4f46e5",
		AccentColor:  "#7c3aed",
		AvatarStyle:  "gradient",
		BubbleStyle:  "rounded",
		FontStyle:    "default",
	}
}
