package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

const (
	DefaultAccessTTL  = 24 * time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenService issues and verifies the two token classes. Access and refresh
// tokens are signed with distinct secrets, so possession of one class never
// allows forging the other. The service holds no revocation state: logout is
// client-side token discard, and a token stays valid until its expiry.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenService{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs a short-lived token carrying the subject user ID.
func (s *TokenService) IssueAccessToken(userID string) (string, error) {
	return sign(userID, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken signs a long-lived token with the refresh secret.
func (s *TokenService) IssueRefreshToken(userID string) (string, error) {
	return sign(userID, s.refreshSecret, s.refreshTTL)
}

// IssuePair issues a fresh access+refresh pair for userID.
func (s *TokenService) IssuePair(userID string) (domain.TokenPair, error) {
	access, err := s.IssueAccessToken(userID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.IssueRefreshToken(userID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken returns the subject user ID, or domain.ErrTokenInvalid
// for any malformed, expired, or mis-signed token.
func (s *TokenService) VerifyAccessToken(token string) (string, error) {
	return verify(token, s.accessSecret)
}

// VerifyRefreshToken is VerifyAccessToken over the refresh secret.
func (s *TokenService) VerifyRefreshToken(token string) (string, error) {
	return verify(token, s.refreshSecret)
}

func sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func verify(raw string, secret []byte) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", domain.ErrTokenInvalid
	}
	return userID, nil
}
