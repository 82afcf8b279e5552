package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaxcare/vaxcare-backend/internal/validation"
)

const (
	errInternalServer       = "Internal server error"
	errInvalidBody          = "Invalid request body"
	errValidationFailed     = "Validation failed"
	errEmailTaken           = "User with this email already exists"
	errInvalidCredentials   = "Invalid email or password"
	errAccountDisabled      = "Account is deactivated"
	errRefreshRequired      = "Refresh token required"
	errRefreshInvalid       = "Invalid refresh token"
	errProfileNotFound      = "Profile not found"
	errChildNotFound        = "Child not found"
	errVaccineNotFound      = "Vaccine not found"
	errRecordNotFound       = "Vaccine record not found"
	errRecordDuplicate      = "This vaccine has already been recorded"
	errDriveNotFound        = "Drive not found"
	errNotificationNotFound = "Notification not found"
)

// badRequest reports a malformed (unparseable) request body.
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
}

// invalid reports every schema violation of an otherwise well-formed body.
func invalid(c *gin.Context, errs []validation.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   errValidationFailed,
		"details": errs,
	})
}

// bindJSON decodes the body into req. An unparseable date is reported as a
// violation of dateField in the validation-error shape; any other decode
// failure gets the generic malformed-body response.
func bindJSON(c *gin.Context, req any, dateField string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var de *validation.DateError
	if errors.As(err, &de) {
		invalid(c, []validation.FieldError{validation.DateFieldError(dateField)})
	} else {
		badRequest(c)
	}
	return false
}
