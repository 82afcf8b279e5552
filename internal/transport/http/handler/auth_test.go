package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/transport/http/handler"
	"github.com/vaxcare/vaxcare-backend/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	login    func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	refresh  func(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	me       func(ctx context.Context, userID string) (*domain.UserOverview, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	return f.register(ctx, email, password)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuthUsecase) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	return f.refresh(ctx, refreshToken)
}

func (f *fakeAuthUsecase) Me(ctx context.Context, userID string) (*domain.UserOverview, error) {
	return f.me(ctx, userID)
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, logger)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/refresh", h.Refresh)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

// details returns the field names from a validation error response.
func detailFields(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw, ok := body["details"].([]any)
	if !ok {
		t.Fatalf("no details in %v", body)
	}
	fields := make([]string, len(raw))
	for i, d := range raw {
		fields[i] = d.(map[string]any)["field"].(string)
	}
	return fields
}

// ---- Register ----

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	w := postJSON(t, newAuthEngine(&fakeAuthUsecase{}), "/api/auth/register", `{bad json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_CollectsAllViolations(t *testing.T) {
	w := postJSON(t, newAuthEngine(&fakeAuthUsecase{}), "/api/auth/register",
		`{"email":"not-an-email","password":"short"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Validation failed" {
		t.Errorf("error = %v", body["error"])
	}
	fields := detailFields(t, body)
	if len(fields) != 2 {
		t.Fatalf("details = %v, want email + password", fields)
	}
}

func TestRegister_WhitespaceEmail_SanitizedBeforeValidation(t *testing.T) {
	var gotEmail string
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, email, _ string) (*usecase.AuthResult, error) {
			gotEmail = email
			return &usecase.AuthResult{
				User:   &domain.User{ID: "user-1", Email: email},
				Tokens: domain.TokenPair{AccessToken: "a", RefreshToken: "r"},
			}, nil
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/register",
		`{"email":"  a@b.com  ","password":"Abcdef1!"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if gotEmail != "a@b.com" {
		t.Errorf("email = %q, want trimmed", gotEmail)
	}
}

func TestRegister_DuplicateEmail_Returns409(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _, _ string) (*usecase.AuthResult, error) {
			return nil, domain.ErrEmailTaken
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/register",
		`{"email":"a@b.com","password":"Abcdef1!"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "User with this email already exists" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestRegister_Success_ReturnsUserAndTokens(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, email, _ string) (*usecase.AuthResult, error) {
			return &usecase.AuthResult{
				User:   &domain.User{ID: "user-1", Email: email},
				Tokens: domain.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
			}, nil
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/register",
		`{"email":"a@b.com","password":"Abcdef1!"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	tokens := body["tokens"].(map[string]any)
	if tokens["accessToken"] != "acc" || tokens["refreshToken"] != "ref" {
		t.Errorf("tokens = %v", tokens)
	}
	user := body["user"].(map[string]any)
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("response leaks password hash")
	}
}

// ---- Login ----

func TestLogin_BadCredentials_Returns401Generic(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*usecase.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/login",
		`{"email":"a@b.com","password":"WrongPass1!"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Invalid email or password" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestLogin_DisabledAccount_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*usecase.AuthResult, error) {
			return nil, domain.ErrAccountDisabled
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/login",
		`{"email":"a@b.com","password":"Abcdef1!"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Account is deactivated" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestLogin_InternalError_Returns500Opaque(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*usecase.AuthResult, error) {
			return nil, errors.New("pq: connection refused")
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/login",
		`{"email":"a@b.com","password":"Abcdef1!"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Error("response leaks internal error detail")
	}
}

// ---- Refresh ----

func TestRefresh_MissingToken_Returns401(t *testing.T) {
	w := postJSON(t, newAuthEngine(&fakeAuthUsecase{}), "/api/auth/refresh", `{}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Refresh token required" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestRefresh_InvalidToken_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{
		refresh: func(_ context.Context, _ string) (domain.TokenPair, error) {
			return domain.TokenPair{}, domain.ErrTokenInvalid
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/refresh", `{"refreshToken":"stale"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Invalid refresh token" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestRefresh_Success_ReturnsNewPair(t *testing.T) {
	uc := &fakeAuthUsecase{
		refresh: func(_ context.Context, _ string) (domain.TokenPair, error) {
			return domain.TokenPair{AccessToken: "new-acc", RefreshToken: "new-ref"}, nil
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/refresh", `{"refreshToken":"valid"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	tokens := decodeBody(t, w)["tokens"].(map[string]any)
	if tokens["accessToken"] != "new-acc" || tokens["refreshToken"] != "new-ref" {
		t.Errorf("tokens = %v", tokens)
	}
}
