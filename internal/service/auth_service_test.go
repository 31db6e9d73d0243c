package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
)

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	first, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.True(t, first.IsAdmin)

	second, err := svc.Register(ctx, dto.RegisterRequest{Username: "bob", Password: "secret"})
	require.NoError(t, err)
	require.False(t, second.IsAdmin)

	session, ok := svc.CurrentUser(ctx)
	require.True(t, ok)
	require.Equal(t, "bob", session.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "other"})
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestLoginRejectsBadCredentialsAndBlockedAccounts(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	admin, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "bob", Password: "hunter2"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "bob", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "bob", Password: "hunter2"})
	require.NoError(t, err)

	require.NoError(t, svc.SetUserBlocked(ctx, admin.ID, "bob", true))

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "bob", Password: "hunter2"})
	require.ErrorIs(t, err, ErrAccountBlocked)
}

func TestBlockingActiveUserForcesLogout(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	admin, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "bob", Password: "hunter2"})
	require.NoError(t, err)

	// bob registered last, so the session snapshot points at him.
	require.NoError(t, svc.SetUserBlocked(ctx, admin.ID, "bob", true))

	_, ok := svc.CurrentUser(ctx)
	require.False(t, ok)
}

func TestUpdateUsernameKeepsSessionInSync(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	user, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	updated, err := svc.UpdateUsername(ctx, user.ID, "alicia")
	require.NoError(t, err)
	require.Equal(t, "alicia", updated.Username)

	session, ok := svc.CurrentUser(ctx)
	require.True(t, ok)
	require.Equal(t, "alicia", session.Username)
}

func TestUpdateUsernameRejectsTakenName(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	bob, err := svc.Register(ctx, dto.RegisterRequest{Username: "bob", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.UpdateUsername(ctx, bob.ID, "alice")
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUpdatePassword(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	user, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.UpdatePassword(ctx, user.ID, "wrong", "newpass"), ErrInvalidCredential)
	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "secret", "newpass"))

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "newpass"})
	require.NoError(t, err)
}

func TestAdminGatesOnUserManagement(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	bob, err := svc.Register(ctx, dto.RegisterRequest{Username: "bob", Password: "secret"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.UpdateUserRole(ctx, bob.ID, "alice", false), ErrPermissionDenied)
	require.ErrorIs(t, svc.SetUserBlocked(ctx, bob.ID, "alice", true), ErrPermissionDenied)
	require.ErrorIs(t, svc.DeleteUser(ctx, bob.ID, bob.ID), ErrPermissionDenied)
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	admin, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteUser(ctx, admin.ID, admin.ID), ErrSelfDeletion)
}

func TestDeleteUserRemovesDirectoryEntry(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	admin, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	bob, err := svc.Register(ctx, dto.RegisterRequest{Username: "bob", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, admin.ID, bob.ID))

	_, ok := svc.UserByID(ctx, bob.ID)
	require.False(t, ok)
	require.Len(t, svc.Users(ctx), 1)
}

func TestRegisterRejectsUsernameThatTrimsTooShort(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "  a  ", Password: "secret"})
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, svc.Users(ctx))
}

func TestEditUserTrimsUsernameBeforeUniquenessCheck(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	admin, err := svc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "bob", Password: "secret"})
	require.NoError(t, err)
	carol, err := svc.Register(ctx, dto.RegisterRequest{Username: "carol", Password: "secret"})
	require.NoError(t, err)

	padded := " bob "
	_, err = svc.EditUser(ctx, admin.ID, carol.ID, dto.EditUserRequest{Username: &padded})
	require.ErrorIs(t, err, ErrDuplicateUsername)

	short := " a "
	_, err = svc.EditUser(ctx, admin.ID, carol.ID, dto.EditUserRequest{Username: &short})
	require.ErrorIs(t, err, ErrValidation)

	current, ok := svc.UserByID(ctx, carol.ID)
	require.True(t, ok)
	require.Equal(t, "carol", current.Username)

	renamed := " dora "
	updated, err := svc.EditUser(ctx, admin.ID, carol.ID, dto.EditUserRequest{Username: &renamed})
	require.NoError(t, err)
	require.Equal(t, "dora", updated.Username)
}

func TestNotificationPreferencesDefaultsAndMerge(t *testing.T) {
	svc := NewAuthService(newTestStore(t), testValidator(), testLogger())
	ctx := context.Background()

	defaults := svc.NotificationPreferences(ctx)
	require.True(t, defaults.MessagingNotifications)
	require.True(t, defaults.SoundEnabled)
	require.False(t, defaults.EmailNotifications)

	off := false
	updated := svc.UpdateNotificationPreferences(ctx, dto.NotificationPreferencesRequest{
		MessagingNotifications: &off,
	})
	require.False(t, updated.MessagingNotifications)
	require.True(t, updated.PollNotifications)

	reloaded := svc.NotificationPreferences(ctx)
	require.False(t, reloaded.MessagingNotifications)
}
