package notif

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studelie/internal/common"
	"studelie/internal/config"
	"studelie/internal/dbmysql"
)

func newTestNotificationService(t *testing.T) (*MockNotificationRepository, *NotificationService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := NewMockNotificationRepository(ctrl)
	cfg := &config.Config{
		Notification: config.NotificationConfig{Workers: 1, ChannelBufferSize: 10, ListLimit: 50},
	}
	svc := NewNotificationService(cfg, repo)
	t.Cleanup(svc.Shutdown)
	return repo, svc
}

func TestNotificationService_PublisherPersistsThroughObserver(t *testing.T) {
	repo, svc := newTestNotificationService(t)

	done := make(chan *dbmysql.Notification, 1)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, n *dbmysql.Notification) error {
			done <- n
			return nil
		})

	svc.Publisher().NotifyAsync(common.NotificationEvent{
		Type:    common.MessageType,
		UserID:  "user-1",
		Header:  "New message",
		Content: "hi",
	})

	select {
	case n := <-done:
		assert.Equal(t, "user-1", n.UserID)
		assert.Equal(t, string(common.MessageType), n.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("event was never persisted")
	}
}

func TestNotificationService_ListNotifications(t *testing.T) {
	ctx := context.Background()
	repo, svc := newTestNotificationService(t)

	now := time.Now()
	repo.EXPECT().ByUserID(ctx, "user-1", 50, 0).Return([]*dbmysql.Notification{
		{
			ID:        "n1",
			UserID:    "user-1",
			Header:    "New reaction",
			Type:      string(common.PostReactionType),
			Status:    string(common.StatusPending),
			Metadata:  `{"postId":"abc"}`,
			CreatedAt: now,
		},
		{
			ID:        "n2",
			UserID:    "user-1",
			Header:    "New message",
			Type:      string(common.MessageType),
			Status:    string(common.StatusRead),
			CreatedAt: now.Add(-time.Hour),
		},
	}, nil)

	notifications, err := svc.ListNotifications(ctx, "user-1", 50, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "abc", notifications[0].Metadata["postId"])
	assert.Nil(t, notifications[1].Metadata)
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, svc := newTestNotificationService(t)

		repo.EXPECT().MarkAsRead(ctx, "n1", "user-1").Return(nil)

		require.NoError(t, svc.MarkAsRead(ctx, "n1", "user-1"))
	})

	t.Run("someone else's notification is 404", func(t *testing.T) {
		repo, svc := newTestNotificationService(t)

		repo.EXPECT().MarkAsRead(ctx, "n1", "user-2").
			Return(common.NewNotFoundError("notification not found"))

		err := svc.MarkAsRead(ctx, "n1", "user-2")
		require.Error(t, err)
		assert.Equal(t, 404, common.StatusCode(err))
	})
}

func TestNotificationService_UnreadCount(t *testing.T) {
	ctx := context.Background()
	repo, svc := newTestNotificationService(t)

	repo.EXPECT().UnreadCount(ctx, "user-1").Return(int64(3), nil)

	count, err := svc.UnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
