package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"endurafit/workout-service/internal/domain"
	"endurafit/workout-service/internal/repository"
	"endurafit/workout-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileUpdate carries the mutable profile fields of an account.
type ProfileUpdate struct {
	Name      string
	BirthDate *time.Time
	Gender    domain.Gender
	Defaults  *domain.Preferences
}

// AvatarUpload is what a client needs to push an avatar image: a presigned
// PUT URL and the content type it must send.
type AvatarUpload struct {
	UploadURL   string
	ObjectKey   string
	ContentType string
	ExpiresIn   time.Duration
}

// ProfileService is the profile-management boundary. The generation core
// never touches it; it only shares the user entity.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, string, error)
	Update(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
	RequestAvatarUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewProfileService creates a profile service on top of the user repository
// and object storage.
func NewProfileService(userRepo repository.UserRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// Get returns the user plus a presigned avatar download URL when an avatar
// has been uploaded. A failure to presign degrades to an empty URL; the
// profile itself still loads.
func (s *profileService) Get(ctx context.Context, userID string) (*domain.User, string, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	avatarURL := ""
	if user.AvatarKey != "" {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
		if err == nil {
			avatarURL = url
		}
	}
	return user, avatarURL, nil
}

// Update persists the mutable profile fields. Default preferences, when
// present, must be a coherent set.
func (s *profileService) Update(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Defaults != nil {
		if err := update.Defaults.Validate(); err != nil {
			return nil, domain.ErrInvalidPlan.WithDetail("Invalid default preferences: %v", err)
		}
	}

	user.Name = update.Name
	user.BirthDate = update.BirthDate
	user.Gender = update.Gender
	user.Defaults = update.Defaults

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, domain.Wrap(err)
	}
	return user, nil
}

// RequestAvatarUpload allocates an object key for the user's avatar, stores
// it on the account, and hands back a presigned PUT URL. The key is derived
// from the user id, so a re-upload replaces the previous avatar object.
func (s *profileService) RequestAvatarUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s", user.ID.Hex())
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, domain.ErrSaveFailed.WithCause(err)
	}

	if err := s.userRepo.SetAvatarKey(ctx, user.ID, key); err != nil {
		return nil, domain.Wrap(err)
	}

	return &AvatarUpload{
		UploadURL:   url,
		ObjectKey:   key,
		ContentType: contentType,
		ExpiresIn:   storage.DefaultPresignedURLExpiry,
	}, nil
}

func (s *profileService) getUser(ctx context.Context, userID string) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Wrap(err)
	}
	user.PasswordHash = ""
	return user, nil
}
