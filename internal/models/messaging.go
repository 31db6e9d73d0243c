package models

import "time"

// Participant is the embedded identity stub stored on a conversation.
type Participant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PrivateMessage is one message inside a conversation. Only the read flag is
// ever mutated after creation.
type PrivateMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	SenderID  string    `json:"senderId"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Conversation is a two-party private thread. Each identity stores its own
// copy; the two sides are independent documents and are not reconciled.
type Conversation struct {
	ID              string           `json:"id"`
	Participants    []Participant    `json:"participants"`
	Messages        []PrivateMessage `json:"messages"`
	LastMessage     string           `json:"lastMessage"`
	LastMessageDate time.Time        `json:"lastMessageDate"`
	UnreadCount     int              `json:"unreadCount"`
}

// HasParticipant reports whether the given identity id is part of the thread.
func (c Conversation) HasParticipant(userID string) bool {
	for _, participant := range c.Participants {
		if participant.ID == userID {
			return true
		}
	}
	return false
}
