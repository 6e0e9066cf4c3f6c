package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "error.validation", services.Reason(err))
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.notFound", services.Reason(err))
	case errors.Is(err, services.ErrOperationNotPermitted):
		utils.JSONError(c, http.StatusConflict, "error.operationNotPermitted", services.Reason(err))
	case errors.Is(err, services.ErrStateChanged):
		utils.JSONError(c, http.StatusConflict, "error.stateChanged", services.Reason(err))
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "error.conflict", services.Reason(err))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "error.invalidCredentials", err.Error())
	default:
		_ = c.Error(err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}

func invalidPayload(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
}

// paramID reads a positive integer path parameter, writing a 400 when it is not one.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidQuery", "invalid "+name)
		return 0, false
	}
	return uint(v), true
}
