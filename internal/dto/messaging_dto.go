package dto

// EnsureConversationRequest looks up or lazily creates the thread with the
// given recipient.
type EnsureConversationRequest struct {
	RecipientID string `json:"recipientId" validate:"required"`
}

// SendPrivateMessageRequest appends a message to an existing thread.
type SendPrivateMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// ReceiveMessageRequest simulates inbound delivery from another identity.
type ReceiveMessageRequest struct {
	SenderID       string `json:"senderId" validate:"required"`
	ConversationID string `json:"conversationId,omitempty"`
	Content        string `json:"content" validate:"required"`
}
