package service

import "errors"

// Failure taxonomy shared by the state services. Handlers translate these to
// HTTP statuses; anything else is an internal error.
var (
	// ErrValidation covers empty required fields and bad attachment type or
	// size.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateUsername is returned when a registration or rename collides
	// with an existing identity.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredential is returned on a login or password-change with a
	// wrong password.
	ErrInvalidCredential = errors.New("invalid credentials")

	// ErrAccountBlocked is returned when the matched identity has been
	// blocked by an admin.
	ErrAccountBlocked = errors.New("account is blocked")

	// ErrPermissionDenied is returned when a non-admin attempts an admin
	// action, or a caller touches a record it does not own.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned for a missing conversation, comment, message
	// or poll item.
	ErrNotFound = errors.New("not found")

	// ErrSelfDeletion is returned when an admin tries to delete their own
	// identity.
	ErrSelfDeletion = errors.New("cannot delete own account")

	// ErrSelfConversation is returned when an identity opens a thread with
	// itself.
	ErrSelfConversation = errors.New("cannot start a conversation with yourself")

	// ErrEmptyMessage is returned when a private message has no content.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrCommunityDisabled is returned when posting while the feed is turned
	// off.
	ErrCommunityDisabled = errors.New("community feed is disabled")

	// ErrNoSession is returned when an operation requires an authenticated
	// identity and none is present.
	ErrNoSession = errors.New("not authenticated")
)
