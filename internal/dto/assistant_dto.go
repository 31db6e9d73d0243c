package dto

// AssistantSendRequest appends a user message to the assistant transcript and
// schedules the scripted reply.
type AssistantSendRequest struct {
	Text string `json:"text" validate:"required"`
}

// AssistantThemeRequest merges into the per-identity widget settings. Nil
// fields are left unchanged.
type AssistantThemeRequest struct {
	PrimaryColor *string `json:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	AccentColor  *string `json:"accentColor,omitempty" validate:"omitempty,hexcolor"`
	AvatarStyle  *string `json:"avatarStyle,omitempty" validate:"omitempty,oneof=gradient solid outline"`
	BubbleStyle  *string `json:"bubbleStyle,omitempty" validate:"omitempty,oneof=rounded modern classic"`
	FontStyle    *string `json:"fontStyle,omitempty" validate:"omitempty,oneof=default playful formal"`
}
