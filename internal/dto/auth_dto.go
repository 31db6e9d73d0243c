package dto

import (
	"time"

	"github.com/rooby-labs/konexa-go-api/internal/models"
)

// RegisterRequest creates a new identity.
type RegisterRequest struct {
	RealName string `json:"realName"`
	Username string `json:"username" validate:"required,min=2,max=32"`
	Password string `json:"password" validate:"required,min=4"`
}

// LoginRequest authenticates an existing identity.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the identity shape returned to clients. The stored password
// never leaves the service layer.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	RealName     string    `json:"realName,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	IsBlocked    bool      `json:"isBlocked"`
	CreatedAt    time.Time `json:"createdAt"`
	BlockedUsers []string  `json:"blockedUsers"`
}

// AuthResponse carries the session token and the authenticated identity.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUsernameRequest renames the calling identity.
type UpdateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=2,max=32"`
}

// UpdatePasswordRequest changes the calling identity's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=4"`
}

// UpdateRoleRequest grants or revokes admin rights (admin only).
type UpdateRoleRequest struct {
	Username string `json:"username" validate:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

// BlockUserRequest blocks or unblocks an identity globally (admin only).
type BlockUserRequest struct {
	Username string `json:"username" validate:"required"`
	Blocked  bool   `json:"blocked"`
}

// EditUserRequest updates another identity's profile (admin only). Nil fields
// are left unchanged.
type EditUserRequest struct {
	RealName *string `json:"realName,omitempty"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=2,max=32"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=4"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
}

// NotificationPreferencesRequest merges into the persisted preferences
// record. Nil fields are left unchanged.
type NotificationPreferencesRequest struct {
	MessagingNotifications *bool `json:"messagingNotifications,omitempty"`
	CommunityNotifications *bool `json:"communityNotifications,omitempty"`
	PollNotifications      *bool `json:"pollNotifications,omitempty"`
	EmailNotifications     *bool `json:"emailNotifications,omitempty"`
	SoundEnabled           *bool `json:"soundEnabled,omitempty"`
}

// NewUserResponse maps an identity to its client-facing shape.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		RealName:     user.RealName,
		IsAdmin:      user.IsAdmin,
		IsBlocked:    user.IsBlocked,
		CreatedAt:    user.CreatedAt,
		BlockedUsers: user.BlockedUsers,
	}
}

// NewUserResponseSlice maps a directory snapshot to client-facing shapes.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
