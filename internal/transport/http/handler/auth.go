package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/metrics"
	"github.com/vaxcare/vaxcare-backend/internal/usecase"
	"github.com/vaxcare/vaxcare-backend/internal/validation"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	Me(ctx context.Context, userID string) (*domain.UserOverview, error)
}

type AuthHandler struct {
	uc     authUsecaser
	logger *slog.Logger
}

func NewAuthHandler(uc authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger.With("component", "auth_handler")}
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
}

func (r *registerRequest) sanitize() {
	r.Email = validation.Clean(r.Email)
	r.Password = validation.Clean(r.Password)
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) sanitize() {
	r.Email = validation.Clean(r.Email)
	r.Password = validation.Clean(r.Password)
}

type userResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	req.sanitize()
	if errs := validation.Check(req); errs != nil {
		invalid(c, errs)
		return
	}

	result, err := h.uc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
			return
		}
		h.logger.Error("register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.RegistrationsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    toUserResponse(result.User),
		"tokens":  result.Tokens,
	})
}

// POST /api/auth/login
// Unknown email and wrong password produce the same 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	req.sanitize()
	if errs := validation.Check(req); errs != nil {
		invalid(c, errs)
		return
	}

	result, err := h.uc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
		case errors.Is(err, domain.ErrAccountDisabled):
			metrics.LoginsTotal.WithLabelValues("disabled").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": errAccountDisabled})
		default:
			h.logger.Error("login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    toUserResponse(result.User),
		"tokens":  result.Tokens,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errRefreshRequired})
		return
	}

	tokens, err := h.uc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errRefreshInvalid})
			return
		}
		h.logger.Error("refresh", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"tokens":  tokens,
	})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	overview, err := h.uc.Me(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("me", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         overview.ID,
			"email":      overview.Email,
			"fullName":   overview.FullName,
			"location":   overview.Location,
			"hasProfile": overview.FullName != nil,
			"createdAt":  overview.CreatedAt,
			"lastLogin":  overview.LastLogin,
		},
	})
}

// POST /api/auth/logout
// Tokens are stateless, so logout is client-side discard.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully. Please remove tokens from client storage.",
	})
}
