package chat

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

type ChatService interface {
	GetConversations(ctx context.Context, userID primitive.ObjectID) ([]Conversation, error)
	GetConversation(ctx context.Context, userID, otherID primitive.ObjectID) ([]dbmongo.Message, error)
	SendMessage(ctx context.Context, senderID, receiverID primitive.ObjectID, text string) (*dbmongo.Message, error)
}

type chatService struct {
	repo      MessageRepository
	publisher common.Publisher
}

func NewChatService(repo MessageRepository, publisher common.Publisher) ChatService {
	return &chatService{repo: repo, publisher: publisher}
}

func (s *chatService) GetConversations(ctx context.Context, userID primitive.ObjectID) ([]Conversation, error) {
	return s.repo.ListConversations(ctx, userID)
}

// GetConversation loads the history with otherID oldest-first, then
// marks the counterpart's unread messages to the caller as read.
func (s *chatService) GetConversation(ctx context.Context, userID, otherID primitive.ObjectID) ([]dbmongo.Message, error) {
	messages, err := s.repo.ListBetween(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkRead(ctx, otherID, userID); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *chatService) SendMessage(ctx context.Context, senderID, receiverID primitive.ObjectID, text string) (*dbmongo.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.NewValidationError("message text is required")
	}
	if senderID == receiverID {
		return nil, common.NewValidationError("cannot message yourself")
	}

	exists, err := s.repo.UserExists(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.NewNotFoundError("receiver not found")
	}

	message := &dbmongo.Message{
		Sender:   senderID,
		Receiver: receiverID,
		Text:     text,
	}
	if err := s.repo.InsertMessage(ctx, message); err != nil {
		return nil, err
	}

	s.publisher.NotifyAsync(common.NotificationEvent{
		Type:          common.MessageType,
		UserID:        receiverID.Hex(),
		TriggerUserID: senderID.Hex(),
		Header:        "New message",
		Content:       text,
		Metadata:      common.NotificationMetadata{"messageId": message.ID.Hex()},
	})
	return message, nil
}
