package dto

// AttachmentPayload is a single feed attachment, base64-encoded by the
// client. The service sniffs the real content type; the name is only kept for
// logging.
type AttachmentPayload struct {
	Name string `json:"name,omitempty"`
	Data string `json:"data" validate:"required,base64"`
}

// SendMessageRequest posts to the public feed. Text and attachment may not
// both be empty.
type SendMessageRequest struct {
	Text       string             `json:"text"`
	Attachment *AttachmentPayload `json:"attachment,omitempty"`
}

// BlockRequest adds or removes a username from the caller's personal feed
// filter.
type BlockRequest struct {
	Username string `json:"username" validate:"required"`
}
