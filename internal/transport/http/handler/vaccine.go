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

type vaccineUsecaser interface {
	Schedule(ctx context.Context) ([]*domain.StandardVaccine, error)
	Records(ctx context.Context, userID string, childID *string) ([]*domain.VaccineRecord, error)
	Dashboard(ctx context.Context, userID string) (*usecase.Dashboard, error)
	Record(ctx context.Context, input usecase.RecordInput) (*domain.VaccineRecord, error)
	UpdateRecord(ctx context.Context, recordID string, input usecase.RecordInput) (*domain.VaccineRecord, error)
	DeleteRecord(ctx context.Context, recordID, userID string) error
}

type VaccineHandler struct {
	uc     vaccineUsecaser
	logger *slog.Logger
}

func NewVaccineHandler(uc vaccineUsecaser, logger *slog.Logger) *VaccineHandler {
	return &VaccineHandler{uc: uc, logger: logger.With("component", "vaccine_handler")}
}

type recordRequest struct {
	VaccineID          string          `json:"vaccineId"          validate:"required,uuid4"`
	ChildID            *string         `json:"childId"            validate:"omitempty,uuid4"`
	AdministeredDate   validation.Date `json:"administeredDate"   validate:"required,notfuture"`
	HealthcareProvider string          `json:"healthcareProvider" validate:"max=255"`
	BatchNumber        string          `json:"batchNumber"        validate:"max=100"`
	Notes              string          `json:"notes"              validate:"max=1000"`
}

func (r *recordRequest) sanitize() {
	r.HealthcareProvider = validation.Clean(r.HealthcareProvider)
	r.BatchNumber = validation.Clean(r.BatchNumber)
	r.Notes = validation.Clean(r.Notes)
}

func (r *recordRequest) toInput(userID string) usecase.RecordInput {
	return usecase.RecordInput{
		UserID:             userID,
		ChildID:            r.ChildID,
		VaccineID:          r.VaccineID,
		AdministeredDate:   r.AdministeredDate.Time,
		HealthcareProvider: r.HealthcareProvider,
		BatchNumber:        r.BatchNumber,
		Notes:              r.Notes,
	}
}

type vaccineResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	RecommendedAge      string `json:"recommendedAge"`
	RecommendedAgeWeeks int    `json:"recommendedAgeWeeks"`
	Description         string `json:"description"`
	SequenceOrder       int    `json:"sequenceOrder"`
	IsMandatory         bool   `json:"isMandatory"`
}

func toVaccineResponse(v *domain.StandardVaccine) vaccineResponse {
	return vaccineResponse{
		ID:                  v.ID,
		Name:                v.Name,
		RecommendedAge:      v.RecommendedAge,
		RecommendedAgeWeeks: v.RecommendedAgeWeeks,
		Description:         v.Description,
		SequenceOrder:       v.SequenceOrder,
		IsMandatory:         v.IsMandatory,
	}
}

type recordResponse struct {
	ID                 string    `json:"id"`
	VaccineID          string    `json:"vaccineId"`
	VaccineName        string    `json:"vaccineName,omitempty"`
	VaccineDescription string    `json:"vaccineDescription,omitempty"`
	ChildID            *string   `json:"childId"`
	ChildName          *string   `json:"childName,omitempty"`
	AdministeredDate   time.Time `json:"administeredDate"`
	HealthcareProvider string    `json:"healthcareProvider,omitempty"`
	BatchNumber        string    `json:"batchNumber,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toRecordResponse(r *domain.VaccineRecord) recordResponse {
	return recordResponse{
		ID:                 r.ID,
		VaccineID:          r.VaccineID,
		VaccineName:        r.VaccineName,
		VaccineDescription: r.VaccineDescription,
		ChildID:            r.ChildID,
		ChildName:          r.ChildName,
		AdministeredDate:   r.AdministeredDate,
		HealthcareProvider: r.HealthcareProvider,
		BatchNumber:        r.BatchNumber,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt,
	}
}

// GET /api/vaccines/schedule
func (h *VaccineHandler) Schedule(c *gin.Context) {
	schedule, err := h.uc.Schedule(c.Request.Context())
	if err != nil {
		h.logger.Error("vaccine schedule", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]vaccineResponse, len(schedule))
	for i, v := range schedule {
		items[i] = toVaccineResponse(v)
	}
	c.JSON(http.StatusOK, gin.H{"schedule": items})
}

// GET /api/vaccines/records?childId=<uuid>
func (h *VaccineHandler) Records(c *gin.Context) {
	var childID *string
	if q := c.Query("childId"); q != "" {
		childID = &q
	}

	records, err := h.uc.Records(c.Request.Context(), c.GetString("userID"), childID)
	if err != nil {
		h.logger.Error("vaccine records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]recordResponse, len(records))
	for i, r := range records {
		items[i] = toRecordResponse(r)
	}
	c.JSON(http.StatusOK, gin.H{"records": items})
}

// GET /api/vaccines/dashboard
func (h *VaccineHandler) Dashboard(c *gin.Context) {
	dash, err := h.uc.Dashboard(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("vaccine dashboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	completed := make([]vaccineResponse, len(dash.Completed))
	for i, v := range dash.Completed {
		completed[i] = toVaccineResponse(v)
	}
	upcoming := make([]vaccineResponse, len(dash.Upcoming))
	for i, v := range dash.Upcoming {
		upcoming[i] = toVaccineResponse(v)
	}
	recent := make([]recordResponse, len(dash.Recent))
	for i, r := range dash.Recent {
		recent[i] = toRecordResponse(r)
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":             dash.Stats,
		"completedVaccines": completed,
		"upcomingVaccines":  upcoming,
		"recentRecords":     recent,
	})
}

// POST /api/vaccines/record
func (h *VaccineHandler) CreateRecord(c *gin.Context) {
	var req recordRequest
	if !bindJSON(c, &req, "administeredDate") {
		return
	}

	req.sanitize()
	if errs := validation.Check(req); errs != nil {
		invalid(c, errs)
		return
	}

	record, err := h.uc.Record(c.Request.Context(), req.toInput(c.GetString("userID")))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVaccineNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errVaccineNotFound})
		case errors.Is(err, domain.ErrChildNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errChildNotFound})
		case errors.Is(err, domain.ErrRecordDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": errRecordDuplicate})
		default:
			h.logger.Error("create record", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vaccine record created successfully",
		"record":  toRecordResponse(record),
	})
}

// PUT /api/vaccines/record/:recordId
func (h *VaccineHandler) UpdateRecord(c *gin.Context) {
	recordID := c.Param("recordId")

	var req recordRequest
	if !bindJSON(c, &req, "administeredDate") {
		return
	}

	req.sanitize()
	if errs := validation.Check(req); errs != nil {
		invalid(c, errs)
		return
	}

	record, err := h.uc.UpdateRecord(c.Request.Context(), recordID, req.toInput(c.GetString("userID")))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRecordNotFound})
			return
		}
		h.logger.Error("update record", "record_id", recordID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vaccine record updated successfully",
		"record":  toRecordResponse(record),
	})
}

// DELETE /api/vaccines/record/:recordId
func (h *VaccineHandler) DeleteRecord(c *gin.Context) {
	recordID := c.Param("recordId")

	err := h.uc.DeleteRecord(c.Request.Context(), recordID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRecordNotFound})
			return
		}
		h.logger.Error("delete record", "record_id", recordID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vaccine record deleted successfully"})
}
