package voiceService

import (
	"VoiceERP/internal/api/voice"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuickCommandLifecycle(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{})
	ctx := context.Background()

	created, err := f.svc.CreateQuickCommand(ctx, testUserID, voice.QuickCommandRequest{
		CommandText: "check inventory for product Plate",
		Icon:        "package",
		SortOrder:   1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, testUserID, created.UserID)
	assert.False(t, created.CreatedAt.IsZero())

	updated, err := f.svc.UpdateQuickCommand(ctx, testUserID, created.ID, voice.QuickCommandRequest{
		CommandText: "show open orders",
		Icon:        "list",
		SortOrder:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, "show open orders", updated.CommandText)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "update must keep the original creation time")

	require.NoError(t, f.svc.DeleteQuickCommand(ctx, testUserID, created.ID))

	remaining, err := f.svc.ListQuickCommands(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestUpdateQuickCommandUnknownID(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{})

	_, err := f.svc.UpdateQuickCommand(context.Background(), testUserID, "01MISSING", voice.QuickCommandRequest{
		CommandText: "show contacts",
	})
	assert.ErrorIs(t, err, voice.ErrQuickCommandNotFound)
}

func TestQuickCommandMutationsScopedToOwner(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{})
	ctx := context.Background()

	created, err := f.svc.CreateQuickCommand(ctx, testUserID, voice.QuickCommandRequest{
		CommandText: "show suppliers",
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateQuickCommand(ctx, "01INTRUDER", created.ID, voice.QuickCommandRequest{
		CommandText: "create invoice for customer Mallory",
	})
	assert.ErrorIs(t, err, voice.ErrQuickCommandNotFound)

	err = f.svc.DeleteQuickCommand(ctx, "01INTRUDER", created.ID)
	assert.ErrorIs(t, err, voice.ErrQuickCommandNotFound)

	remaining, err := f.svc.ListQuickCommands(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "show suppliers", remaining[0].CommandText)
}
