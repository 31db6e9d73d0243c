package models

import "time"

// AttachmentKind is the media category of a feed attachment.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentVideo AttachmentKind = "video"
)

// CommunityMessage is one entry in the public feed. Messages are never edited
// in place; the attachment, when present, is a fully inlined data URL.
type CommunityMessage struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Text        string         `json:"text"`
	Media       string         `json:"media,omitempty"`
	MediaType   AttachmentKind `json:"mediaType,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	TaggedUsers []string       `json:"taggedUsers"`
}
