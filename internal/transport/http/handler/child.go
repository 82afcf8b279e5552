package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/usecase"
	"github.com/vaxcare/vaxcare-backend/internal/validation"
)

type childUsecaser interface {
	List(ctx context.Context, userID string) ([]*domain.Child, error)
	Get(ctx context.Context, childID, userID string) (*usecase.ChildDetail, error)
	Create(ctx context.Context, input usecase.ChildInput) (*usecase.CreateChildResult, error)
	Update(ctx context.Context, childID string, input usecase.ChildInput) (*domain.Child, error)
	Delete(ctx context.Context, childID, userID string) (string, error)
}

type ChildHandler struct {
	uc     childUsecaser
	logger *slog.Logger
}

func NewChildHandler(uc childUsecaser, logger *slog.Logger) *ChildHandler {
	return &ChildHandler{uc: uc, logger: logger.With("component", "child_handler")}
}

type childRequest struct {
	Name               string          `json:"name"               validate:"required,min=1,max=255"`
	DateOfBirth        validation.Date `json:"dateOfBirth"        validate:"required,notfuture"`
	Gender             string          `json:"gender"             validate:"required,oneof=Male Female Other"`
	BirthWeight        *float64        `json:"birthWeight"        validate:"omitempty,gt=0,lte=10"`
	BirthComplications string          `json:"birthComplications" validate:"max=2000"`
}

func (r *childRequest) sanitize() {
	r.Name = validation.Clean(r.Name)
	r.BirthComplications = validation.Clean(r.BirthComplications)
}

func (r *childRequest) toInput(userID string) usecase.ChildInput {
	return usecase.ChildInput{
		UserID:             userID,
		Name:               r.Name,
		DateOfBirth:        r.DateOfBirth.Time,
		Gender:             domain.Gender(r.Gender),
		BirthWeight:        r.BirthWeight,
		BirthComplications: r.BirthComplications,
	}
}

type childResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	DateOfBirth        time.Time `json:"dateOfBirth"`
	Gender             string    `json:"gender"`
	BirthWeight        *float64  `json:"birthWeight"`
	BirthComplications string    `json:"birthComplications,omitempty"`
	VaccinesCompleted  int       `json:"vaccinesCompleted"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toChildResponse(c *domain.Child) childResponse {
	return childResponse{
		ID:                 c.ID,
		Name:               c.Name,
		DateOfBirth:        c.DateOfBirth,
		Gender:             string(c.Gender),
		BirthWeight:        c.BirthWeight,
		BirthComplications: c.BirthComplications,
		VaccinesCompleted:  c.VaccinesCompleted,
		CreatedAt:          c.CreatedAt,
	}
}

// GET /api/children
func (h *ChildHandler) List(c *gin.Context) {
	children, err := h.uc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("list children", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]childResponse, len(children))
	for i, child := range children {
		items[i] = toChildResponse(child)
	}
	c.JSON(http.StatusOK, gin.H{"children": items, "count": len(items)})
}

// GET /api/children/:childId
func (h *ChildHandler) Get(c *gin.Context) {
	childID := c.Param("childId")

	detail, err := h.uc.Get(c.Request.Context(), childID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrChildNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errChildNotFound})
			return
		}
		h.logger.Error("get child", "child_id", childID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	history := make([]recordResponse, len(detail.History))
	for i, r := range detail.History {
		history[i] = toRecordResponse(r)
	}
	c.JSON(http.StatusOK, gin.H{
		"child":              toChildResponse(detail.Child),
		"vaccinationHistory": history,
	})
}

// POST /api/children
func (h *ChildHandler) Create(c *gin.Context) {
	var req childRequest
	if !bindJSON(c, &req, "dateOfBirth") {
		return
	}

	req.sanitize()
	if errs := validation.Check(req); errs != nil {
		invalid(c, errs)
		return
	}

	result, err := h.uc.Create(c.Request.Context(), req.toInput(c.GetString("userID")))
	if err != nil {
		h.logger.Error("create child", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	upcoming := make([]vaccineResponse, len(result.UpcomingVaccines))
	for i, v := range result.UpcomingVaccines {
		upcoming[i] = toVaccineResponse(v)
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":          fmt.Sprintf("%s has been added to your family", result.Child.Name),
		"child":            toChildResponse(result.Child),
		"ageInWeeks":       result.AgeInWeeks,
		"upcomingVaccines": upcoming,
		"recommendations":  result.Recommendations,
	})
}

// PUT /api/children/:childId
func (h *ChildHandler) Update(c *gin.Context) {
	childID := c.Param("childId")

	var req childRequest
	if !bindJSON(c, &req, "dateOfBirth") {
		return
	}

	req.sanitize()
	if errs := validation.Check(req); errs != nil {
		invalid(c, errs)
		return
	}

	child, err := h.uc.Update(c.Request.Context(), childID, req.toInput(c.GetString("userID")))
	if err != nil {
		if errors.Is(err, domain.ErrChildNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errChildNotFound})
			return
		}
		h.logger.Error("update child", "child_id", childID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Child information updated successfully",
		"child":   toChildResponse(child),
	})
}

// DELETE /api/children/:childId
func (h *ChildHandler) Delete(c *gin.Context) {
	childID := c.Param("childId")

	name, err := h.uc.Delete(c.Request.Context(), childID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrChildNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errChildNotFound})
			return
		}
		h.logger.Error("delete child", "child_id", childID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s's record has been deleted", name),
	})
}
