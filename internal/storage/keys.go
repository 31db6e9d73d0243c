package storage

import "fmt"

// Well-known keys for the application's persistent documents. Values are
// UTF-8 JSON; a missing or malformed key always degrades to the caller's
// default, never to a failure.
const (
	KeyCurrentUser             = "konexa_user"
	KeyUsers                   = "konexa_users"
	KeyNotificationPreferences = "konexa_notification_preferences"
	KeyMessages                = "konexa_messages"
	KeyCommunityEnabled        = "konexa_community_enabled"
	KeyCurrentPoll             = "konexa_current_poll"
	KeyPollHistory             = "konexa_poll_history"
	KeyTheme                   = "konexa_theme"
	KeyComments                = "konexa_comments"
)

// ConversationsKey returns the per-identity conversation list key. Each
// identity owns its own list; the two sides of a conversation are never
// reconciled automatically.
func ConversationsKey(userID string) string {
	return fmt.Sprintf("konexa_conversations_%s", userID)
}

// AssistantHistoryKey returns the per-identity assistant transcript key.
func AssistantHistoryKey(username string) string {
	return fmt.Sprintf("konexa_assistant_%s", username)
}

// AssistantThemeKey returns the per-identity assistant theme key.
func AssistantThemeKey(username string) string {
	return fmt.Sprintf("konexa_assistant_theme_%s", username)
}

func appDataKeys() []string {
	return []string{
		KeyCurrentUser,
		KeyUsers,
		KeyNotificationPreferences,
		KeyMessages,
		KeyCommunityEnabled,
		KeyCurrentPoll,
		KeyPollHistory,
		KeyTheme,
		KeyComments,
	}
}
