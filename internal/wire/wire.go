//go:build wireinject
// +build wireinject

// Package wire assembles the application graph. Run `wire` in this
// directory after changing providers to regenerate wire_gen.go.
package wire

import (
	"github.com/google/wire"

	"studelie/internal/chat"
	"studelie/internal/config"
	"studelie/internal/course"
	"studelie/internal/dbmongo"
	"studelie/internal/dbmysql"
	"studelie/internal/event"
	"studelie/internal/feed"
	"studelie/internal/friend"
	"studelie/internal/notif"
	"studelie/internal/user"
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		config.LoadConfig,
		dbmongo.NewMongoConnection,
		dbmysql.NewConnection,
		dbmysql.NewNotificationRepository,
		dbmongo.NewMediaStorage,
		notif.NewNotificationService,
		ProvidePublisher,
		ProvideTokenManager,
		user.NewUserRepository,
		ProvideUserService,
		user.NewHandler,
		friend.NewFriendRepository,
		friend.NewFriendService,
		friend.NewHandler,
		feed.NewPostRepository,
		ProvideFeedService,
		ProvideFeedHandler,
		chat.NewMessageRepository,
		chat.NewChatService,
		chat.NewHandler,
		course.NewCourseRepository,
		course.NewCourseService,
		course.NewHandler,
		event.NewEventRepository,
		event.NewEventService,
		event.NewHandler,
		ProvideNotificationHandler,
		ProvideMediaHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
