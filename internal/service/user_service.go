package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

// UpdateProfileRequest is a partial update: nil fields are left as-is
// (shallow merge, mirroring the store's UPDATE_USER action).
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	BusinessName *string `json:"business_name"`
	AvatarURL    *string `json:"avatar_url"`
	LogoURL      *string `json:"logo_url"`
	Address      *string `json:"address"`
	TaxID        *string `json:"tax_id"`
	Phone        *string `json:"phone"`
	Website      *string `json:"website"`
}

type ProfileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name"`
	AvatarURL    string `json:"avatar_url"`
	LogoURL      string `json:"logo_url"`
	Address      string `json:"address"`
	TaxID        string `json:"tax_id"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	JoinDate     string `json:"join_date"`
}

// --- Interface ---

type UserService interface {
	// EnsureUser provisions the local profile for an identity-provider
	// principal on first sight. JoinDate is set once, at provisioning.
	EnsureUser(ctx context.Context, id uuid.UUID, email string) (*model.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (ProfileResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo, now: time.Now}
}

// --- Implementation ---

func (s *userService) EnsureUser(ctx context.Context, id uuid.UUID, email string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	created := &model.User{
		ID:       id,
		Name:     email,
		Email:    email,
		JoinDate: s.now(),
	}
	if err := s.userRepo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	return created, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, fmt.Errorf("user not found: %w", err)
	}
	return toProfileResponse(*user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, fmt.Errorf("user not found: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.BusinessName != nil {
		user.BusinessName = *req.BusinessName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.LogoURL != nil {
		user.LogoURL = *req.LogoURL
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.TaxID != nil {
		user.TaxID = *req.TaxID
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Website != nil {
		user.Website = *req.Website
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return ProfileResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return toProfileResponse(*user), nil
}

// --- Mapping ---

func toProfileResponse(u model.User) ProfileResponse {
	return ProfileResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		BusinessName: u.BusinessName,
		AvatarURL:    u.AvatarURL,
		LogoURL:      u.LogoURL,
		Address:      u.Address,
		TaxID:        u.TaxID,
		Phone:        u.Phone,
		Website:      u.Website,
		JoinDate:     u.JoinDate.Format(dateLayout),
	}
}
