package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vaxcare/vaxcare-backend/internal/auth"
	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/repository"
)

type AuthUsecase struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenService
}

func NewAuthUsecase(users repository.UserRepository, hasher *auth.Hasher, tokens *auth.TokenService) *AuthUsecase {
	return &AuthUsecase{users: users, hasher: hasher, tokens: tokens}
}

// AuthResult is a user plus the freshly issued credential pair.
type AuthResult struct {
	User   *domain.User
	Tokens domain.TokenPair
}

// Register creates the user with a lowercased email and returns a first
// token pair. Duplicate emails surface as domain.ErrEmailTaken; the unique
// index on users.email is the authority, not a pre-check.
func (u *AuthUsecase) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(email)

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	tokens, err := u.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Login verifies credentials and rotates a fresh pair. An unknown email and
// a wrong password both return domain.ErrInvalidCredentials so the response
// cannot reveal which one it was.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if err := u.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	tokens, err := u.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh validates a refresh token, re-checks that the user still exists
// and is active (a deleted or deactivated account must not mint new tokens,
// even with a still-valid refresh token), and rotates both tokens together.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	userID, err := u.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return domain.TokenPair{}, domain.ErrTokenInvalid
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.TokenPair{}, domain.ErrTokenInvalid
		}
		return domain.TokenPair{}, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return domain.TokenPair{}, domain.ErrTokenInvalid
	}

	tokens, err := u.tokens.IssuePair(user.ID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	return tokens, nil
}

// Me returns the user joined with profile basics.
func (u *AuthUsecase) Me(ctx context.Context, userID string) (*domain.UserOverview, error) {
	overview, err := u.users.FindOverview(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user overview: %w", err)
	}
	return overview, nil
}
