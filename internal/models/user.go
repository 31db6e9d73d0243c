package models

import "time"

// User is a registered identity. The first identity ever created receives
// admin rights. Passwords are stored as-is: the application is a
// single-profile community demo and makes no security promises.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	RealName     string    `json:"realName,omitempty"`
	Password     string    `json:"password"`
	IsAdmin      bool      `json:"isAdmin"`
	IsBlocked    bool      `json:"isBlocked"`
	CreatedAt    time.Time `json:"createdAt"`
	BlockedUsers []string  `json:"blockedUsers"`
}

// HasBlocked reports whether the user has blocked the given username. Blocks
// are a private feed filter, not a moderation action.
func (u User) HasBlocked(username string) bool {
	for _, blocked := range u.BlockedUsers {
		if blocked == username {
			return true
		}
	}
	return false
}

// NotificationPreferences controls which notification types reach the user.
type NotificationPreferences struct {
	MessagingNotifications bool `json:"messagingNotifications"`
	CommunityNotifications bool `json:"communityNotifications"`
	PollNotifications      bool `json:"pollNotifications"`
	EmailNotifications     bool `json:"emailNotifications"`
	SoundEnabled           bool `json:"soundEnabled"`
}

// DefaultNotificationPreferences returns the preferences applied before the
// user has saved any.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		MessagingNotifications: true,
		CommunityNotifications: true,
		PollNotifications:      true,
		EmailNotifications:     false,
		SoundEnabled:           true,
	}
}
