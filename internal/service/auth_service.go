package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"taskflow-be/internal/cache"
	"taskflow-be/internal/crypto"
	"taskflow-be/internal/entities"
	"taskflow-be/internal/jwt"
	"taskflow-be/internal/models"
	"taskflow-be/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// AuthService defines the interface for authentication and profile logic
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*entities.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*entities.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	userCache  cache.Cache // optional; nil disables invalidation
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService, userCache cache.Cache) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		userCache:  userCache,
	}
}

// Signup creates a new user account
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*entities.User, error) {
	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Email, hashed, req.FullName)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues an access token. A missing account
// and a wrong password produce the same error.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		log.Printf("failed login attempt for email: %s", req.Email)
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtService.IssueToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// UpdateProfile applies a partial profile update and drops any cached lookup
// for the previous email.
func (s *authService) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*entities.User, error) {
	var changes repository.Fields
	if req.FullName != nil {
		changes = append(changes, repository.Field{Column: "full_name", Value: *req.FullName})
	}
	if req.Email != nil {
		changes = append(changes, repository.Field{Column: "email", Value: *req.Email})
	}

	var previousEmail string
	if len(changes) > 0 && s.userCache != nil {
		if current, err := s.userRepo.FindByID(ctx, userID); err == nil {
			previousEmail = current.Email
		}
	}

	user, err := s.userRepo.Update(ctx, userID, changes)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	if s.userCache != nil && previousEmail != "" {
		if err := s.userCache.Delete(ctx, cache.UserCacheKey(previousEmail)); err != nil {
			log.Printf("failed to invalidate cached user %s: %v", previousEmail, err)
		}
	}

	return user, nil
}
