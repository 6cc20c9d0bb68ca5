package chat

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

func newTestService(t *testing.T) (*MockMessageRepository, *common.MockPublisher, ChatService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := NewMockMessageRepository(ctrl)
	publisher := common.NewMockPublisher(ctrl)
	return repo, publisher, NewChatService(repo, publisher)
}

func TestChatService_SendMessage(t *testing.T) {
	ctx := context.Background()
	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	t.Run("success notifies receiver", func(t *testing.T) {
		repo, publisher, svc := newTestService(t)

		repo.EXPECT().UserExists(ctx, receiver).Return(true, nil)
		repo.EXPECT().InsertMessage(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, m *dbmongo.Message) error {
				assert.Equal(t, sender, m.Sender)
				assert.Equal(t, receiver, m.Receiver)
				assert.Equal(t, "salut", m.Text)
				m.ID = primitive.NewObjectID()
				return nil
			})
		publisher.EXPECT().NotifyAsync(gomock.Any()).Do(func(event common.NotificationEvent) {
			assert.Equal(t, common.MessageType, event.Type)
			assert.Equal(t, receiver.Hex(), event.UserID)
			assert.Equal(t, sender.Hex(), event.TriggerUserID)
		})

		message, err := svc.SendMessage(ctx, sender, receiver, "  salut  ")
		require.NoError(t, err)
		assert.False(t, message.ID.IsZero())
	})

	t.Run("empty text rejected", func(t *testing.T) {
		_, _, svc := newTestService(t)

		_, err := svc.SendMessage(ctx, sender, receiver, "   ")
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})

	t.Run("self-message rejected", func(t *testing.T) {
		_, _, svc := newTestService(t)

		_, err := svc.SendMessage(ctx, sender, sender, "hi me")
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})

	t.Run("unknown receiver is 404", func(t *testing.T) {
		repo, _, svc := newTestService(t)

		repo.EXPECT().UserExists(ctx, receiver).Return(false, nil)

		_, err := svc.SendMessage(ctx, sender, receiver, "hello?")
		require.Error(t, err)
		assert.Equal(t, 404, common.StatusCode(err))
	})
}

func TestChatService_GetConversation(t *testing.T) {
	ctx := context.Background()
	me := primitive.NewObjectID()
	other := primitive.NewObjectID()

	t.Run("returns history and marks counterpart messages read", func(t *testing.T) {
		repo, _, svc := newTestService(t)

		history := []dbmongo.Message{
			{Sender: other, Receiver: me, Text: "first", CreatedAt: time.Now().Add(-time.Hour)},
			{Sender: me, Receiver: other, Text: "second", CreatedAt: time.Now()},
		}
		repo.EXPECT().ListBetween(ctx, me, other).Return(history, nil)
		repo.EXPECT().MarkRead(ctx, other, me).Return(nil)

		messages, err := svc.GetConversation(ctx, me, other)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "first", messages[0].Text)
	})

	t.Run("empty thread still marks read", func(t *testing.T) {
		repo, _, svc := newTestService(t)

		repo.EXPECT().ListBetween(ctx, me, other).Return([]dbmongo.Message{}, nil)
		repo.EXPECT().MarkRead(ctx, other, me).Return(nil)

		messages, err := svc.GetConversation(ctx, me, other)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}

func TestChatService_GetConversations(t *testing.T) {
	ctx := context.Background()
	me := primitive.NewObjectID()

	repo, _, svc := newTestService(t)

	summaries := []Conversation{
		{LastMessage: "latest", LastMessageCreatedAt: time.Now()},
		{LastMessage: "older", LastMessageCreatedAt: time.Now().Add(-time.Hour)},
	}
	repo.EXPECT().ListConversations(ctx, me).Return(summaries, nil)

	conversations, err := svc.GetConversations(ctx, me)
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	assert.Equal(t, "latest", conversations[0].LastMessage)
}
