package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rooby-labs/konexa-go-api/internal/dto"
	"github.com/rooby-labs/konexa-go-api/internal/models"
)

func newCommunityFixture(t *testing.T) (CommunityService, AuthService, context.Context) {
	t.Helper()

	store := newTestStore(t)
	auth := NewAuthService(store, testValidator(), testLogger())
	svc := NewCommunityService(store, auth, nil, testValidator(), 10, testLogger())

	return svc, auth, context.Background()
}

func registerUser(t *testing.T, auth AuthService, username string) models.User {
	t.Helper()

	user, err := auth.Register(context.Background(), dto.RegisterRequest{Username: username, Password: "secret"})
	require.NoError(t, err)
	return user
}

func TestSendMessageExtractsMentions(t *testing.T) {
	svc, auth, ctx := newCommunityFixture(t)
	alice := registerUser(t, auth, "alice")

	message, err := svc.SendMessage(ctx, alice, dto.SendMessageRequest{
		Text: "hello @bob and @carol, and again @bob",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"bob", "carol"}, message.TaggedUsers)
	require.Equal(t, "alice", message.Username)
}

func TestSendMessageRejectsEmptyPayload(t *testing.T) {
	svc, auth, ctx := newCommunityFixture(t)
	alice := registerUser(t, auth, "alice")

	_, err := svc.SendMessage(ctx, alice, dto.SendMessageRequest{Text: "   "})
	require.ErrorIs(t, err, ErrValidation)
}

func TestSendMessageWhenCommunityDisabled(t *testing.T) {
	svc, auth, ctx := newCommunityFixture(t)
	alice := registerUser(t, auth, "alice")

	enabled, err := svc.ToggleCommunityStatus(ctx, alice)
	require.NoError(t, err)
	require.False(t, enabled)

	_, err = svc.SendMessage(ctx, alice, dto.SendMessageRequest{Text: "hello"})
	require.ErrorIs(t, err, ErrCommunityDisabled)
}

func TestSendMessageInlinesImageAttachment(t *testing.T) {
	svc, auth, ctx := newCommunityFixture(t)
	alice := registerUser(t, auth, "alice")

	// Minimal PNG header so content sniffing identifies an image.
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 32)...)

	message, err := svc.SendMessage(ctx, alice, dto.SendMessageRequest{
		Text: "look at this",
		Attachment: &dto.AttachmentPayload{
			Name: "pic.png",
			Data: base64.StdEncoding.EncodeToString(png),
		},
	})
	require.NoError(t, err)
	require.Equal(t, models.AttachmentImage, message.MediaType)
	require.True(t, strings.HasPrefix(message.Media, "data:image/png;base64,"))
}

func TestSendMessageRejectsUnsupportedAttachment(t *testing.T) {
	svc, auth, ctx := newCommunityFixture(t)
	alice := registerUser(t, auth, "alice")

	_, err := svc.SendMessage(ctx, alice, dto.SendMessageRequest{
		Text: "a pdf",
		Attachment: &dto.AttachmentPayload{
			Name: "doc.pdf",
			Data: base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 something")),
		},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestVisibleMessagesHonorsViewerBlockList(t *testing.T) {
	svc, auth, ctx := newCommunityFixture(t)
	alice := registerUser(t, auth, "alice")
	bob := registerUser(t, auth, "bob")
	carol := registerUser(t, auth, "carol")

	_, err := svc.SendMessage(ctx, bob, dto.SendMessageRequest{Text: "from bob"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, carol, dto.SendMessageRequest{Text: "from carol"})
	require.NoError(t, err)

	alice, err = svc.BlockUser(ctx, alice, "bob")
	require.NoError(t, err)

	visible := svc.VisibleMessages(ctx, alice)
	require.Len(t, visible, 1)
	require.Equal(t, "carol", visible[0].Username)

	// The block only affects alice's own view.
	require.Len(t, svc.VisibleMessages(ctx, carol), 2)
}

func TestBlockUserIsIdempotentAndIgnoresSelf(t *testing.T) {
	svc, auth, ctx := newCommunityFixture(t)
	alice := registerUser(t, auth, "alice")
	registerUser(t, auth, "bob")

	alice, err := svc.BlockUser(ctx, alice, "bob")
	require.NoError(t, err)
	alice, err = svc.BlockUser(ctx, alice, "bob")
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, alice.BlockedUsers)

	alice, err = svc.BlockUser(ctx, alice, "alice")
	require.NoError(t, err)
	require.NotContains(t, alice.BlockedUsers, "alice")
}

func TestUnblockUserRestoresVisibility(t *testing.T) {
	svc, auth, ctx := newCommunityFixture(t)
	alice := registerUser(t, auth, "alice")
	bob := registerUser(t, auth, "bob")

	_, err := svc.SendMessage(ctx, bob, dto.SendMessageRequest{Text: "from bob"})
	require.NoError(t, err)

	alice, err = svc.BlockUser(ctx, alice, "bob")
	require.NoError(t, err)
	require.Empty(t, svc.VisibleMessages(ctx, alice))

	alice, err = svc.UnblockUser(ctx, alice, "bob")
	require.NoError(t, err)
	require.Len(t, svc.VisibleMessages(ctx, alice), 1)
}

func TestDeleteMessageAuthorization(t *testing.T) {
	svc, auth, ctx := newCommunityFixture(t)
	admin := registerUser(t, auth, "alice")
	bob := registerUser(t, auth, "bob")
	carol := registerUser(t, auth, "carol")

	message, err := svc.SendMessage(ctx, bob, dto.SendMessageRequest{Text: "mine"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteMessage(ctx, carol, message.ID), ErrPermissionDenied)
	require.NoError(t, svc.DeleteMessage(ctx, admin, message.ID))
	require.ErrorIs(t, svc.DeleteMessage(ctx, bob, message.ID), ErrNotFound)
}

func TestClearAllMessagesRequiresAdmin(t *testing.T) {
	svc, auth, ctx := newCommunityFixture(t)
	admin := registerUser(t, auth, "alice")
	bob := registerUser(t, auth, "bob")

	_, err := svc.SendMessage(ctx, bob, dto.SendMessageRequest{Text: "hello"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.ClearAllMessages(ctx, bob), ErrPermissionDenied)
	require.NoError(t, svc.ClearAllMessages(ctx, admin))
	require.Empty(t, svc.Messages(ctx))
}
