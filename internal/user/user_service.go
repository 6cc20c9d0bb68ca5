package user

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

// MediaUploader is the slice of the media storage the profile update
// path needs for profile pictures.
type MediaUploader interface {
	UploadFile(ctx context.Context, filename, mimeType, uploaderID string, content io.Reader) (*dbmongo.MediaFile, error)
}

type RegisterInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	University string `json:"university"`
	Country    string `json:"country"`
}

type UpdateProfileInput struct {
	Name           string
	Email          string
	Bio            string
	University     string
	Major          string
	GraduationYear int
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*dbmongo.User, string, error)
	Login(ctx context.Context, email, password string) (*dbmongo.User, string, error)
	ResolveUser(ctx context.Context, userID string) (*common.AuthUser, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*dbmongo.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, input UpdateProfileInput, picture *common.UploadedFile) (*dbmongo.User, error)
}

type userService struct {
	userRepo UserRepository
	tokens   *common.TokenManager
	media    MediaUploader
	mediaURL string
}

func NewUserService(userRepo UserRepository, tokens *common.TokenManager, media MediaUploader, mediaBaseURL string) UserService {
	return &userService{userRepo: userRepo, tokens: tokens, media: media, mediaURL: mediaBaseURL}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*dbmongo.User, string, error) {
	if err := common.ValidateName(input.Name); err != nil {
		return nil, "", err
	}
	if err := common.ValidateEmail(input.Email); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(input.Password); err != nil {
		return nil, "", err
	}

	hashed, err := common.HashPassword(input.Password)
	if err != nil {
		return nil, "", common.NewInternalError("failed to hash password", err)
	}

	user := &dbmongo.User{
		Name:       input.Name,
		Email:      common.NormalizeEmail(input.Email),
		Password:   hashed,
		University: input.University,
		Country:    input.Country,
		Role:       "student",
	}

	// The unique index answers the duplicate-email race, not a
	// read-then-write check.
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", common.NewInternalError("failed to sign token", err)
	}

	return user, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*dbmongo.User, string, error) {
	if email == "" || password == "" {
		return nil, "", common.NewValidationError("email and password required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		return nil, "", err
	}

	if err := common.CheckPassword(password, user.Password); err != nil {
		return nil, "", common.NewUnauthorizedError("invalid password")
	}

	token, err := s.tokens.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", common.NewInternalError("failed to sign token", err)
	}

	return user, token, nil
}

// ResolveUser implements common.UserResolver for the session guard.
func (s *userService) ResolveUser(ctx context.Context, userID string) (*common.AuthUser, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, common.NewUnauthorizedError("invalid token subject")
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &common.AuthUser{
		ID:                user.ID.Hex(),
		Name:              user.Name,
		Email:             user.Email,
		Role:              user.Role,
		ProfilePictureURL: user.ProfilePictureURL,
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*dbmongo.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdateProfile applies the mutable profile fields; empty fields keep
// their current value. A picture, when present, is stored to GridFS and
// the profile URL repointed at it.
func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input UpdateProfileInput, picture *common.UploadedFile) (*dbmongo.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		if err := common.ValidateEmail(input.Email); err != nil {
			return nil, err
		}
		user.Email = common.NormalizeEmail(input.Email)
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.University != "" {
		user.University = input.University
	}
	if input.Major != "" {
		user.Major = input.Major
	}
	if input.GraduationYear != 0 {
		user.GraduationYear = input.GraduationYear
	}

	if picture != nil {
		if !common.AllowedUploadTypes[picture.MimeType] {
			return nil, common.NewValidationError("unsupported file type")
		}
		file, err := s.media.UploadFile(ctx, picture.Filename, picture.MimeType, userID.Hex(), picture.Content)
		if err != nil {
			return nil, common.NewInternalError("failed to store profile picture", err)
		}
		user.ProfilePictureURL = s.mediaURL + file.ID
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
