package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"preparedhub-api/services"
	"preparedhub-api/utils"
)

// respondServiceError translates a service error into an HTTP response.
// Unrecognized errors are reported as a 500 without leaking details.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.SendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAccessDenied),
		errors.Is(err, services.ErrForbiddenOperation):
		utils.SendError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrNotAMember),
		errors.Is(err, services.ErrCapacityExceeded):
		utils.SendError(c, http.StatusConflict, err.Error())
	default:
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
	}
}
