package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/widyasatria/flightbook/internal/client"
	"github.com/widyasatria/flightbook/internal/models"
	"github.com/widyasatria/flightbook/internal/workflow"
)

// writeError maps the layered error taxonomy onto HTTP statuses. Transport
// failures become 502 because this service is a gateway: the upstream broke,
// not us.
func writeError(c echo.Context, err error) error {
	var notFound *client.NotFoundError
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
			Code:    http.StatusNotFound,
		})
	}

	var rejected *client.RejectedError
	if errors.As(err, &rejected) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "rejected",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	var transport *client.TransportError
	if errors.As(err, &transport) {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_unavailable",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	var validation models.ValidationError
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	switch {
	case errors.Is(err, workflow.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "session_not_found",
			Message: err.Error(),
			Code:    http.StatusNotFound,
		})
	case errors.Is(err, workflow.ErrOperationInFlight),
		errors.Is(err, workflow.ErrSessionFinished),
		errors.Is(err, workflow.ErrNoFlightSelected),
		errors.Is(err, workflow.ErrNotEditing),
		errors.Is(err, workflow.ErrCancelNotAllowed):
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict",
			Message: err.Error(),
			Code:    http.StatusConflict,
		})
	case errors.Is(err, workflow.ErrFormInvalid):
		return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "form_invalid",
			Message: err.Error(),
			Code:    http.StatusUnprocessableEntity,
		})
	}

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
