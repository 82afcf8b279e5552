package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/validation"
)

type driveUsecaser interface {
	List(ctx context.Context, f domain.DriveFilter) ([]*domain.Drive, error)
	Get(ctx context.Context, id string) (*domain.Drive, error)
	ByLocation(ctx context.Context, location string, limit int) ([]*domain.Drive, error)
	UpcomingMonth(ctx context.Context) ([]*domain.Drive, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Drive, error)
}

type DriveHandler struct {
	uc     driveUsecaser
	logger *slog.Logger
}

func NewDriveHandler(uc driveUsecaser, logger *slog.Logger) *DriveHandler {
	return &DriveHandler{uc: uc, logger: logger.With("component", "drive_handler")}
}

type driveResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	Address     string    `json:"address"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Organizer   string    `json:"organizer"`
	ContactInfo string    `json:"contactInfo,omitempty"`
	IsUpcoming  bool      `json:"isUpcoming"`
	DaysUntil   *int      `json:"daysUntil,omitempty"`
}

func toDriveResponse(d *domain.Drive, now time.Time) driveResponse {
	return driveResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Type:        string(d.Type),
		Location:    d.Location,
		Address:     d.Address,
		Date:        d.Date,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Organizer:   d.Organizer,
		ContactInfo: d.ContactInfo,
		IsUpcoming:  d.IsUpcoming(now),
	}
}

func toDriveResponses(drives []*domain.Drive, now time.Time) []driveResponse {
	items := make([]driveResponse, len(drives))
	for i, d := range drives {
		items[i] = toDriveResponse(d, now)
	}
	return items
}

// daysUntil counts whole days from today to the drive date, never negative.
func daysUntil(date time.Time, now time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	days := int(date.Sub(today).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// GET /api/drives?location=&type=&upcoming=
func (h *DriveHandler) List(c *gin.Context) {
	filter := domain.DriveFilter{
		Location:     validation.Clean(c.Query("location")),
		Type:         domain.DriveType(c.Query("type")),
		UpcomingOnly: c.Query("upcoming") == "true",
	}

	drives, err := h.uc.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("list drives", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drives": toDriveResponses(drives, time.Now()),
		"filters": gin.H{
			"location": filter.Location,
			"type":     filter.Type,
			"upcoming": filter.UpcomingOnly,
		},
	})
}

// Get serves GET /api/drives/:driveId. The route shares its wildcard with
// the scoped lookups, so the ID arrives under the "scope" param.
func (h *DriveHandler) Get(c *gin.Context) {
	h.getByID(c, c.Param("scope"))
}

// Scoped dispatches the two-segment lookups that gin's route tree cannot
// register as static siblings of the drive ID wildcard:
// /location/:location, /search/:query and /upcoming/next30days.
func (h *DriveHandler) Scoped(c *gin.Context) {
	arg := c.Param("arg")
	switch c.Param("scope") {
	case "location":
		h.byLocation(c, arg)
	case "search":
		h.search(c, arg)
	case "upcoming":
		if arg == "next30days" {
			h.upcomingMonth(c)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": errDriveNotFound})
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": errDriveNotFound})
	}
}

func (h *DriveHandler) getByID(c *gin.Context, driveID string) {
	drive, err := h.uc.Get(c.Request.Context(), driveID)
	if err != nil {
		if errors.Is(err, domain.ErrDriveNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errDriveNotFound})
			return
		}
		h.logger.Error("get drive", "drive_id", driveID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"drive": toDriveResponse(drive, time.Now())})
}

// GET /api/drives/location/:location?limit=
func (h *DriveHandler) byLocation(c *gin.Context, rawLocation string) {
	location := validation.Clean(rawLocation)
	limit, _ := strconv.Atoi(c.Query("limit"))

	drives, err := h.uc.ByLocation(c.Request.Context(), location, limit)
	if err != nil {
		h.logger.Error("drives by location", "location", location, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location": location,
		"drives":   toDriveResponses(drives, time.Now()),
	})
}

// GET /api/drives/upcoming/next30days
func (h *DriveHandler) upcomingMonth(c *gin.Context) {
	drives, err := h.uc.UpcomingMonth(c.Request.Context())
	if err != nil {
		h.logger.Error("upcoming drives", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	now := time.Now()
	items := toDriveResponses(drives, now)
	for i, d := range drives {
		days := daysUntil(d.Date, now)
		items[i].DaysUntil = &days
	}
	c.JSON(http.StatusOK, gin.H{"drives": items})
}

// GET /api/drives/search/:query?limit=
func (h *DriveHandler) search(c *gin.Context, rawQuery string) {
	query := validation.Clean(rawQuery)
	limit, _ := strconv.Atoi(c.Query("limit"))

	drives, err := h.uc.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.logger.Error("search drives", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": toDriveResponses(drives, time.Now()),
	})
}
