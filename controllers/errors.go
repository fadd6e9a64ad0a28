package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

var errInternal = errors.New("internal server error")

// respondServiceError maps the service error kinds onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrEmptyCart):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidInput):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.ErrorLogger.WithField("path", c.FullPath()).Errorf("Request failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
	}
}
