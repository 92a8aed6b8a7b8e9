package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

type UserService struct {
	userStore UserStore
	logger    *zap.Logger
}

func NewUserService(userStore UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userStore: userStore,
		logger:    logger,
	}
}

// Register creates a new user. Email and username must be unique; the role
// string must parse into the closed role set (empty means Customer). The role
// is fixed at creation and never changes afterwards.
func (s *UserService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	role, ok := domain.ParseRole(strings.TrimSpace(req.Role))
	if !ok {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if existing, _ := s.userStore.GetUserByEmail(ctx, email); existing != nil {
		return nil, ErrUserExists
	}
	if existing, _ := s.userStore.GetUserByUsername(ctx, username); existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := s.userStore.CreateUser(ctx, user); err != nil {
		s.logger.Error("Failed to save user",
			zap.String("username", username),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.UserID),
		zap.String("role", string(user.Role)))

	return user, nil
}

// Authenticate checks the credentials and returns the matching user. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userStore.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userStore.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
