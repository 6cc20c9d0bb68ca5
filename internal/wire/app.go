package wire

import (
	"gorm.io/gorm"

	"studelie/internal/chat"
	"studelie/internal/common"
	"studelie/internal/config"
	"studelie/internal/course"
	"studelie/internal/dbmongo"
	"studelie/internal/event"
	"studelie/internal/feed"
	"studelie/internal/friend"
	"studelie/internal/media"
	"studelie/internal/notif"
	"studelie/internal/user"
)

// Application is everything main needs: the shared infrastructure for
// lifecycle management plus one handler per HTTP surface.
type Application struct {
	Config        *config.Config
	Mongo         *dbmongo.MongoClient
	DB            *gorm.DB
	Tokens        *common.TokenManager
	Users         user.UserService
	Notifications *notif.NotificationService

	UserHandler   *user.Handler
	FriendHandler *friend.Handler
	FeedHandler   *feed.Handler
	ChatHandler   *chat.Handler
	CourseHandler *course.Handler
	EventHandler  *event.Handler
	NotifHandler  *notif.Handler
	MediaHandler  *media.Handler
}

// ProvideTokenManager builds the JWT signer from configuration.
func ProvideTokenManager(cfg *config.Config) *common.TokenManager {
	return common.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryDays)
}

// ProvidePublisher exposes the notification manager behind the
// broadcast interface the domain services depend on.
func ProvidePublisher(notifications *notif.NotificationService) common.Publisher {
	return notifications.Publisher()
}

func ProvideUserService(repo user.UserRepository, tokens *common.TokenManager, storage *dbmongo.MediaStorage, cfg *config.Config) user.UserService {
	return user.NewUserService(repo, tokens, storage, cfg.Upload.MediaBaseURL)
}

func ProvideFeedService(repo feed.PostRepository, friends friend.FriendService, storage *dbmongo.MediaStorage, publisher common.Publisher, cfg *config.Config) feed.FeedService {
	return feed.NewFeedService(repo, friends, storage, publisher, cfg.Upload.MediaBaseURL)
}

func ProvideFeedHandler(service feed.FeedService, cfg *config.Config) *feed.Handler {
	return feed.NewHandler(service, cfg.Upload.MaxFileSize)
}

func ProvideNotificationHandler(service *notif.NotificationService, cfg *config.Config) *notif.Handler {
	return notif.NewHandler(service, cfg.Notification.ListLimit)
}

func ProvideMediaHandler(storage *dbmongo.MediaStorage) *media.Handler {
	return media.NewHandler(storage)
}
