package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"paint-it-black-manufacturer/internal/logging"
	"paint-it-black-manufacturer/internal/model"
	"paint-it-black-manufacturer/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterUserRequest struct {
	Caller Identity
	Email  string
	Name   string
	Photo  string
}

type UserService interface {
	// Register stores the user on first sight; later calls never touch the stored role.
	Register(ctx context.Context, req RegisterUserRequest) (*model.User, bool, error)
	Role(ctx context.Context, caller Identity) (model.Role, error)
	List(ctx context.Context, caller Identity) ([]*model.User, error)
	IssueToken(ctx context.Context, idToken string) (string, error)
	SeedAdmins(ctx context.Context, emails []string) error
}

type userServiceImpl struct {
	userRepo   repository.UserRepository
	tokens     *TokenService
	identities *IdentityVerifier
	timeout    time.Duration
}

func NewUserService(
	userRepo repository.UserRepository,
	tokens *TokenService,
	identities *IdentityVerifier,
	timeout time.Duration,
) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		tokens:     tokens,
		identities: identities,
		timeout:    timeout,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req RegisterUserRequest) (*model.User, bool, error) {
	email, err := authorize(req.Caller, req.Email)
	if err != nil {
		return nil, false, err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	created, err := s.userRepo.CreateIfAbsent(ctx, &model.User{
		ID:        email,
		Name:      strings.TrimSpace(req.Name),
		Photo:     strings.TrimSpace(req.Photo),
		Role:      model.RoleUser,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logging.FromContext(ctx).Error("register_user_failed", zap.String("user_id", email), zap.Error(err))
		return nil, false, storeError(err)
	}

	user, err := s.userRepo.FindByID(ctx, email)
	if err != nil {
		return nil, false, storeError(err)
	}
	return user, created, nil
}

func (s *userServiceImpl) Role(ctx context.Context, caller Identity) (model.Role, error) {
	if caller.Subject == "" {
		return "", ErrAuthorizationDenied
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.userRepo.FindByID(ctx, caller.Subject)
	if err != nil {
		return "", storeError(err)
	}
	return user.Role, nil
}

func (s *userServiceImpl) List(ctx context.Context, caller Identity) ([]*model.User, error) {
	if !caller.IsAdmin() {
		return nil, ErrAuthorizationDenied
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

// IssueToken exchanges a verified identity provider ID token for a session token.
// The role is taken from the stored user, never from the proof.
func (s *userServiceImpl) IssueToken(ctx context.Context, idToken string) (string, error) {
	email, err := s.identities.Verify(idToken)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	role := model.RoleUser
	user, err := s.userRepo.FindByID(ctx, email)
	switch {
	case err == nil:
		role = user.Role
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return "", storeError(err)
	}

	return s.tokens.Issue(email, role)
}

func (s *userServiceImpl) SeedAdmins(ctx context.Context, emails []string) error {
	for _, raw := range emails {
		email, err := normalizeEmail(raw)
		if err != nil {
			return fmt.Errorf("admin email %q: %w", raw, err)
		}
		if _, err := s.userRepo.CreateIfAbsent(ctx, &model.User{
			ID:        email,
			Role:      model.RoleAdmin,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("seed admin %s: %w", email, err)
		}
	}
	return nil
}
