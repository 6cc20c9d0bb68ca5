package friend

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

// Suggestion is one non-friend user annotated with the mutual-friend
// count against the requesting user's current friends.
type Suggestion struct {
	ID                primitive.ObjectID `json:"id"`
	Name              string             `json:"name"`
	Email             string             `json:"email,omitempty"`
	ProfilePictureURL string             `json:"profilePictureUrl,omitempty"`
	MutualFriends     int64              `json:"mutualFriends"`
}

type FriendService interface {
	GetFriends(ctx context.Context, userID primitive.ObjectID) ([]dbmongo.PublicProfile, error)
	GetSuggestions(ctx context.Context, userID primitive.ObjectID) ([]Suggestion, error)
	AddFriend(ctx context.Context, userID, otherID primitive.ObjectID) error
	RemoveFriend(ctx context.Context, userID, otherID primitive.ObjectID) error
	FriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

type friendService struct {
	repo FriendRepository
}

func NewFriendService(repo FriendRepository) FriendService {
	return &friendService{repo: repo}
}

// friendIDs projects the edges down to "the other participant".
func friendIDs(userID primitive.ObjectID, edges []dbmongo.Friend) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(edges))
	for _, edge := range edges {
		if edge.User1 == userID {
			ids = append(ids, edge.User2)
		} else {
			ids = append(ids, edge.User1)
		}
	}
	return ids
}

// FriendIDs returns the ids of the user's current friends. The feed
// uses it to restrict privacy=friends listings.
func (s *friendService) FriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	edges, err := s.repo.ListEdges(ctx, userID)
	if err != nil {
		return nil, err
	}
	return friendIDs(userID, edges), nil
}

func (s *friendService) GetFriends(ctx context.Context, userID primitive.ObjectID) ([]dbmongo.PublicProfile, error) {
	edges, err := s.repo.ListEdges(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListProfiles(ctx, friendIDs(userID, edges))
}

// GetSuggestions returns every user outside {self}∪{friends}, each with
// its mutual-friend count.
func (s *friendService) GetSuggestions(ctx context.Context, userID primitive.ObjectID) ([]Suggestion, error) {
	edges, err := s.repo.ListEdges(ctx, userID)
	if err != nil {
		return nil, err
	}
	friends := friendIDs(userID, edges)

	exclude := append([]primitive.ObjectID{userID}, friends...)
	candidates, err := s.repo.ListProfilesExcluding(ctx, exclude)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		mutual, err := s.repo.CountEdgesToAny(ctx, candidate.ID, friends)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, Suggestion{
			ID:                candidate.ID,
			Name:              candidate.Name,
			Email:             candidate.Email,
			ProfilePictureURL: candidate.ProfilePictureURL,
			MutualFriends:     mutual,
		})
	}
	return suggestions, nil
}

func (s *friendService) AddFriend(ctx context.Context, userID, otherID primitive.ObjectID) error {
	if userID == otherID {
		return common.NewValidationError("cannot add yourself as a friend")
	}

	exists, err := s.repo.UserExists(ctx, otherID)
	if err != nil {
		return err
	}
	if !exists {
		return common.NewNotFoundError("user not found")
	}

	already, err := s.repo.EdgeExists(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if already {
		return common.NewConflictError("already friends")
	}

	// No request/accept workflow: edges are accepted on creation.
	return s.repo.CreateEdge(ctx, &dbmongo.Friend{
		User1:  userID,
		User2:  otherID,
		Status: "accepted",
	})
}

func (s *friendService) RemoveFriend(ctx context.Context, userID, otherID primitive.ObjectID) error {
	return s.repo.DeleteEdge(ctx, userID, otherID)
}
