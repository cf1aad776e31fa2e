package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/domain/shared"
)

const avatarUploadTTL = 15 * time.Minute

var allowedAvatarTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ObjectStorageService abstracts presigned avatar uploads
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	PublicURL(key string) string
	DeleteObject(ctx context.Context, key string) error
	ObjectExists(ctx context.Context, key string) (bool, error)
}

// UserService handles profile and admin account operations
type UserService struct {
	userRepo    identity.UserRepository
	sessionRepo identity.SessionRepository
	storage     ObjectStorageService
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, sessionRepo identity.SessionRepository, storage ObjectStorageService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		storage:     storage,
	}
}

// Profile returns the caller's account
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// UpdateProfile sets the caller's name and phone
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(req.Name, req.Phone); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword verifies the old password, sets the new one and
// revokes the refresh session
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	return s.sessionRepo.DeleteByUserID(ctx, userID)
}

// GenerateAvatarUploadURL presigns an avatar upload
func (s *UserService) GenerateAvatarUploadURL(ctx context.Context, userID uuid.UUID, req AvatarUploadURLRequest) (*AvatarUploadURLResponse, error) {
	ext, ok := allowedAvatarTypes[req.ContentType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Avatar must be a JPEG, PNG or WebP image")
	}
	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.New(), ext)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, avatarUploadTTL)
	if err != nil {
		return nil, err
	}
	return &AvatarUploadURLResponse{
		UploadURL:  uploadURL,
		PublicURL:  s.storage.PublicURL(key),
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmAvatar points the profile at an uploaded avatar object
func (s *UserService) ConfirmAvatar(ctx context.Context, userID uuid.UUID, req ConfirmAvatarRequest) (*UserResponse, error) {
	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "The uploaded avatar could not be found")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.SetAvatar(s.storage.PublicURL(req.StorageKey)); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List pages accounts for the back office
func (s *UserService) List(ctx context.Context, filter UserListFilter) (*shared.Paginated[UserResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Role != "" {
		domainFilter.Filters["role"] = identity.Role(filter.Role)
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = identity.UserStatus(filter.Status)
	}

	page, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, 0, len(page.Items))
	for _, u := range page.Items {
		users = append(users, ToUserResponse(u))
	}
	return &shared.Paginated[UserResponse]{
		Items:      users,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// Get loads a single account for the back office
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	return s.Profile(ctx, userID)
}

// Lock blocks an account and revokes its refresh session
func (s *UserService) Lock(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.Lock(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Unlock restores a locked account
func (s *UserService) Unlock(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.Unlock(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}
