package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/transport/http/handler"
	"github.com/vaxcare/vaxcare-backend/internal/usecase"
)

type fakeProfileUsecase struct {
	get    func(ctx context.Context, userID string) (*domain.HealthProfile, error)
	save   func(ctx context.Context, input usecase.SaveProfileInput) (*usecase.SaveProfileResult, error)
	delete func(ctx context.Context, userID string) error
}

func (f *fakeProfileUsecase) Get(ctx context.Context, userID string) (*domain.HealthProfile, error) {
	return f.get(ctx, userID)
}

func (f *fakeProfileUsecase) Save(ctx context.Context, input usecase.SaveProfileInput) (*usecase.SaveProfileResult, error) {
	return f.save(ctx, input)
}

func (f *fakeProfileUsecase) Delete(ctx context.Context, userID string) error {
	return f.delete(ctx, userID)
}

func newProfileEngine(uc *fakeProfileUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewProfileHandler(uc, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "user-1") })
	r.POST("/api/profile", h.Save)
	return r
}

func savingProfileUsecase(created bool) *fakeProfileUsecase {
	return &fakeProfileUsecase{
		save: func(_ context.Context, input usecase.SaveProfileInput) (*usecase.SaveProfileResult, error) {
			return &usecase.SaveProfileResult{
				Profile: &domain.HealthProfile{
					ID:             "profile-1",
					UserID:         input.UserID,
					FullName:       input.FullName,
					BloodGroup:     input.BloodGroup,
					KnownAllergies: input.KnownAllergies,
					Location:       input.Location,
				},
				Created: created,
			}, nil
		},
	}
}

func profilePayload(overrides map[string]string) string {
	fields := map[string]string{
		"fullName":       "Aigerim Bekova",
		"dateOfBirth":    "1990-05-10",
		"bloodGroup":     "O+",
		"knownAllergies": "None",
		"location":       "Almaty",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	var b strings.Builder
	b.WriteString("{")
	first := true
	for k, v := range fields {
		if !first {
			b.WriteString(",")
		}
		first = false
		b.WriteString(`"` + k + `":"` + v + `"`)
	}
	b.WriteString("}")
	return b.String()
}

func TestSaveProfile_EmptyBloodGroupAllowed(t *testing.T) {
	var gotBloodGroup string
	uc := savingProfileUsecase(true)
	inner := uc.save
	uc.save = func(ctx context.Context, input usecase.SaveProfileInput) (*usecase.SaveProfileResult, error) {
		gotBloodGroup = input.BloodGroup
		return inner(ctx, input)
	}

	w := postJSON(t, newProfileEngine(uc), "/api/profile",
		profilePayload(map[string]string{"bloodGroup": ""}))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if gotBloodGroup != "" {
		t.Errorf("blood group = %q, want empty", gotBloodGroup)
	}
}

func TestSaveProfile_UnknownBloodGroupRejected(t *testing.T) {
	w := postJSON(t, newProfileEngine(&fakeProfileUsecase{}), "/api/profile",
		profilePayload(map[string]string{"bloodGroup": "X+"}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	fields := detailFields(t, decodeBody(t, w))
	if len(fields) != 1 || fields[0] != "bloodGroup" {
		t.Errorf("details = %v, want [bloodGroup]", fields)
	}
}

func TestSaveProfile_FreeTextCappedAt2000(t *testing.T) {
	long := strings.Repeat("a", 2001)
	w := postJSON(t, newProfileEngine(&fakeProfileUsecase{}), "/api/profile",
		profilePayload(map[string]string{
			"geneticConditions": long,
			"knownAllergies":    long,
			"currentSymptoms":   long,
		}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	fields := detailFields(t, decodeBody(t, w))
	want := map[string]bool{
		"geneticConditions": true,
		"knownAllergies":    true,
		"currentSymptoms":   true,
	}
	if len(fields) != len(want) {
		t.Fatalf("details = %v, want all three free-text fields", fields)
	}
	for _, f := range fields {
		if !want[f] {
			t.Errorf("unexpected field %q in %v", f, fields)
		}
	}
}

func TestSaveProfile_FreeTextAtLimitAccepted(t *testing.T) {
	w := postJSON(t, newProfileEngine(savingProfileUsecase(false)), "/api/profile",
		profilePayload(map[string]string{"knownAllergies": strings.Repeat("a", 2000)}))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestSaveProfile_MalformedDate_ReportsField(t *testing.T) {
	w := postJSON(t, newProfileEngine(&fakeProfileUsecase{}), "/api/profile",
		profilePayload(map[string]string{"dateOfBirth": "10/05/1990"}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["error"] != "Validation failed" {
		t.Errorf("error = %v, want validation shape", body["error"])
	}
	fields := detailFields(t, body)
	if len(fields) != 1 || fields[0] != "dateOfBirth" {
		t.Errorf("details = %v, want [dateOfBirth]", fields)
	}
}
