package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/widyasatria/flightbook/internal/client"
	"github.com/widyasatria/flightbook/internal/models"
)

// FlightHandler passes flight requests through to the remote service. The
// gateway adds rate limiting and error mapping, nothing else; flight data is
// never stored here.
type FlightHandler struct {
	flights *client.FlightsClient
}

func NewFlightHandler(flights *client.FlightsClient) *FlightHandler {
	return &FlightHandler{flights: flights}
}

func (h *FlightHandler) List(c echo.Context) error {
	flights, err := h.flights.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "flight id must be numeric")
	}
	flight, err := h.flights.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) GetByNumber(c echo.Context) error {
	flight, err := h.flights.GetByNumber(c.Request().Context(), c.Param("flightNumber"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) ListByDeparture(c echo.Context) error {
	flights, err := h.flights.ListByDeparture(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) ListByArrival(c echo.Context) error {
	flights, err := h.flights.ListByArrival(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) ListAvailable(c echo.Context) error {
	flights, err := h.flights.ListAvailable(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) ListByStatus(c echo.Context) error {
	status := models.FlightStatus(c.Param("status"))
	if !status.Valid() {
		return badRequest(c, "unknown flight status: "+c.Param("status"))
	}
	flights, err := h.flights.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) Search(c echo.Context) error {
	seats := 1
	if raw := c.QueryParam("seats"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "seats must be numeric")
		}
		seats = parsed
	}

	query := models.SearchQuery{
		DepartureCode: c.QueryParam("departureCode"),
		ArrivalCode:   c.QueryParam("arrivalCode"),
		Seats:         seats,
	}
	if raw := c.QueryParam("departureDate"); raw != "" {
		parsed, err := models.ParseAPITime(raw)
		if err != nil {
			return badRequest(c, "departureDate is not a recognized date")
		}
		query.DepartureDate = parsed
	}

	flights, err := h.flights.Search(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) Create(c echo.Context) error {
	var flight models.Flight
	if err := c.Bind(&flight); err != nil {
		return badRequest(c, "failed to parse flight: "+err.Error())
	}
	created, err := h.flights.Create(c.Request().Context(), flight)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *FlightHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "flight id must be numeric")
	}
	var flight models.Flight
	if err := c.Bind(&flight); err != nil {
		return badRequest(c, "failed to parse flight: "+err.Error())
	}
	updated, err := h.flights.Update(c.Request().Context(), id, flight)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *FlightHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "flight id must be numeric")
	}
	status := models.FlightStatus(c.QueryParam("status"))
	if !status.Valid() {
		return badRequest(c, "unknown flight status: "+c.QueryParam("status"))
	}
	updated, err := h.flights.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *FlightHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "flight id must be numeric")
	}
	if err := h.flights.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
