// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stockadoodle/backend/internal/services"
	"github.com/stockadoodle/backend/internal/utils"
)

// handleServiceError maps domain errors onto HTTP responses. Anything not
// recognized is reported as an internal error.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidPayload),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrTotalMismatch),
		errors.Is(err, services.ErrInsufficientStock):
		utils.BadRequestResponse(c, err.Error(), nil)

	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "Product")
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.NotFoundResponse(c, "Category")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "User")
	case errors.Is(err, services.ErrSaleNotFound):
		utils.NotFoundResponse(c, "Sale")
	case errors.Is(err, services.ErrMetricsNotFound):
		utils.NotFoundResponse(c, "Retailer metrics")

	case errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrProductNameTaken),
		errors.Is(err, services.ErrCategoryNameTaken),
		errors.Is(err, services.ErrConcurrencyConflict):
		utils.ConflictResponse(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, "Invalid username or password")
	case errors.Is(err, services.ErrInvalidMFACode):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrMFANotRequired):
		utils.ForbiddenResponse(c, err.Error())

	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// parseIDParam reads and parses a UUID path parameter, writing the error
// response itself on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// actingUserID returns the authenticated caller's ID as a nullable pointer
// for activity logging.
func actingUserID(c *gin.Context) *uuid.UUID {
	if userIDStr, exists := utils.GetUserIDFromContext(c); exists {
		if uid, err := uuid.Parse(userIDStr); err == nil {
			return &uid
		}
	}
	return nil
}
