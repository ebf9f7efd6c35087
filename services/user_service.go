package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/openbracket/tournament-api/models"
	"github.com/openbracket/tournament-api/repositories"
	"github.com/openbracket/tournament-api/storage"
)

type UpdateProfileInput struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
}

type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error)
	UploadAvatar(ctx context.Context, userID int, contentType string, body io.Reader) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies only the fields present in the input; absent
// fields keep their stored values.
func (s *userService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name cannot be empty", ErrValidationFailed)
		}
		user.DisplayName = name
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserDisplayNameConflict) {
			return nil, ErrUserDisplayNameConflict
		}
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}

	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

// UploadAvatar stores the image in object storage under a per-user key
// and records that key on the user. A previous avatar is removed best
// effort after the new one is saved.
func (s *userService) UploadAvatar(ctx context.Context, userID int, contentType string, body io.Reader) (*models.User, error) {
	if s.uploader == nil {
		return nil, ErrAvatarStorageNotConfigured
	}

	ext, err := extensionForImageContentType(contentType)
	if err != nil {
		return nil, ErrAvatarUnsupportedContentType
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	oldKey := user.AvatarKey
	key := fmt.Sprintf("avatars/user_%d%s", userID, ext)

	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to upload avatar for user %d: %w", userID, err)
	}

	if err := s.userRepo.UpdateAvatarKey(ctx, userID, &key); err != nil {
		return nil, fmt.Errorf("failed to record avatar key for user %d: %w", userID, err)
	}
	user.AvatarKey = &key

	if oldKey != nil && *oldKey != key {
		// Stale object; losing it only leaks storage, not correctness.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) populateAvatarURL(user *models.User) {
	if user == nil || s.uploader == nil || user.AvatarKey == nil || *user.AvatarKey == "" {
		return
	}
	if url := s.uploader.GetPublicURL(*user.AvatarKey); url != "" {
		user.AvatarURL = &url
	}
}

func extensionForImageContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("no extension for content type %q", contentType)
	}
}
