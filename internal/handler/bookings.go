package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/widyasatria/flightbook/internal/client"
	"github.com/widyasatria/flightbook/internal/models"
	"github.com/widyasatria/flightbook/internal/workflow"
)

// BookingHandler passes booking requests through to the remote service.
// Cancellation goes through the engine so the confirmed-only gate applies
// before the request leaves the gateway.
type BookingHandler struct {
	bookings *client.BookingsClient
	engine   *workflow.Engine
}

func NewBookingHandler(bookings *client.BookingsClient, engine *workflow.Engine) *BookingHandler {
	return &BookingHandler{bookings: bookings, engine: engine}
}

func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.bookings.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "booking id must be numeric")
	}
	booking, err := h.bookings.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) GetByReference(c echo.Context) error {
	booking, err := h.bookings.GetByReference(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListByPassengerName(c echo.Context) error {
	bookings, err := h.bookings.ListByPassengerName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListByEmail(c echo.Context) error {
	bookings, err := h.bookings.ListByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListByFlight(c echo.Context) error {
	flightID, err := pathID(c, "flightId")
	if err != nil {
		return badRequest(c, "flight id must be numeric")
	}
	bookings, err := h.bookings.ListByFlight(c.Request().Context(), flightID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListByStatus(c echo.Context) error {
	status := models.BookingStatus(c.Param("status"))
	if !status.Valid() {
		return badRequest(c, "unknown booking status: "+c.Param("status"))
	}
	bookings, err := h.bookings.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListUpcoming(c echo.Context) error {
	bookings, err := h.bookings.ListUpcoming(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return badRequest(c, "keyword is required")
	}
	bookings, err := h.bookings.Search(c.Request().Context(), keyword)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Create(c echo.Context) error {
	var booking models.Booking
	if err := c.Bind(&booking); err != nil {
		return badRequest(c, "failed to parse booking: "+err.Error())
	}
	created, err := h.bookings.Create(c.Request().Context(), booking)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "booking id must be numeric")
	}
	var booking models.Booking
	if err := c.Bind(&booking); err != nil {
		return badRequest(c, "failed to parse booking: "+err.Error())
	}
	updated, err := h.bookings.Update(c.Request().Context(), id, booking)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "booking id must be numeric")
	}
	if err := h.engine.CancelBooking(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "booking id must be numeric")
	}
	if err := h.bookings.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
