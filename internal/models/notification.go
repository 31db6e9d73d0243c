package models

import "time"

// Notification types published by the services.
const (
	NotificationMention = "mention"
	NotificationMessage = "message"
	NotificationPoll    = "poll"
)

// Notification is an in-process event targeted at one identity. Nothing is
// persisted or fanned out across processes.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
