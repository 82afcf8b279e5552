package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/usecase"
	"github.com/vaxcare/vaxcare-backend/internal/validation"
)

type profileUsecaser interface {
	Get(ctx context.Context, userID string) (*domain.HealthProfile, error)
	Save(ctx context.Context, input usecase.SaveProfileInput) (*usecase.SaveProfileResult, error)
	Delete(ctx context.Context, userID string) error
}

type ProfileHandler struct {
	uc     profileUsecaser
	logger *slog.Logger
}

func NewProfileHandler(uc profileUsecaser, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, logger: logger.With("component", "profile_handler")}
}

type saveProfileRequest struct {
	FullName          string          `json:"fullName"          validate:"required,min=2,max=255"`
	DateOfBirth       validation.Date `json:"dateOfBirth"       validate:"required,notfuture"`
	BloodGroup        string          `json:"bloodGroup"        validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	GeneticConditions string          `json:"geneticConditions" validate:"max=2000"`
	KnownAllergies    string          `json:"knownAllergies"    validate:"required,max=2000"`
	CurrentSymptoms   string          `json:"currentSymptoms"   validate:"max=2000"`
	Location          string          `json:"location"          validate:"required,min=2,max=255"`
}

func (r *saveProfileRequest) sanitize() {
	r.FullName = validation.Clean(r.FullName)
	r.BloodGroup = validation.Clean(r.BloodGroup)
	r.GeneticConditions = validation.Clean(r.GeneticConditions)
	r.KnownAllergies = validation.Clean(r.KnownAllergies)
	r.CurrentSymptoms = validation.Clean(r.CurrentSymptoms)
	r.Location = validation.Clean(r.Location)
}

type profileResponse struct {
	ID                string    `json:"id"`
	FullName          string    `json:"fullName"`
	DateOfBirth       time.Time `json:"dateOfBirth"`
	BloodGroup        string    `json:"bloodGroup"`
	GeneticConditions string    `json:"geneticConditions"`
	KnownAllergies    string    `json:"knownAllergies"`
	CurrentSymptoms   string    `json:"currentSymptoms"`
	Location          string    `json:"location"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toProfileResponse(p *domain.HealthProfile) profileResponse {
	return profileResponse{
		ID:                p.ID,
		FullName:          p.FullName,
		DateOfBirth:       p.DateOfBirth,
		BloodGroup:        p.BloodGroup,
		GeneticConditions: p.GeneticConditions,
		KnownAllergies:    p.KnownAllergies,
		CurrentSymptoms:   p.CurrentSymptoms,
		Location:          p.Location,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.uc.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errProfileNotFound})
			return
		}
		h.logger.Error("get profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": toProfileResponse(p)})
}

// POST /api/profile
// Creates the profile on first submission, updates it afterwards.
func (h *ProfileHandler) Save(c *gin.Context) {
	var req saveProfileRequest
	if !bindJSON(c, &req, "dateOfBirth") {
		return
	}

	req.sanitize()
	if errs := validation.Check(req); errs != nil {
		invalid(c, errs)
		return
	}

	result, err := h.uc.Save(c.Request.Context(), usecase.SaveProfileInput{
		UserID:            c.GetString("userID"),
		FullName:          req.FullName,
		DateOfBirth:       req.DateOfBirth.Time,
		BloodGroup:        req.BloodGroup,
		GeneticConditions: req.GeneticConditions,
		KnownAllergies:    req.KnownAllergies,
		CurrentSymptoms:   req.CurrentSymptoms,
		Location:          req.Location,
	})
	if err != nil {
		h.logger.Error("save profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	message := "Profile updated successfully"
	status := http.StatusOK
	if result.Created {
		message = "Profile created successfully"
		status = http.StatusCreated
	}

	body := gin.H{
		"message": message,
		"profile": toProfileResponse(result.Profile),
	}
	if len(result.Alerts) > 0 {
		body["healthAlerts"] = result.Alerts
	}
	c.JSON(status, body)
}

// DELETE /api/profile
func (h *ProfileHandler) Delete(c *gin.Context) {
	err := h.uc.Delete(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errProfileNotFound})
			return
		}
		h.logger.Error("delete profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}
