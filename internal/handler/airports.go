package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/widyasatria/flightbook/internal/client"
	"github.com/widyasatria/flightbook/internal/models"
)

// AirportHandler passes airport requests through to the remote service.
type AirportHandler struct {
	airports *client.AirportsClient
}

func NewAirportHandler(airports *client.AirportsClient) *AirportHandler {
	return &AirportHandler{airports: airports}
}

func (h *AirportHandler) List(c echo.Context) error {
	airports, err := h.airports.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, airports)
}

func (h *AirportHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "airport id must be numeric")
	}
	airport, err := h.airports.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, airport)
}

func (h *AirportHandler) GetByCode(c echo.Context) error {
	airport, err := h.airports.GetByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, airport)
}

func (h *AirportHandler) ListByCity(c echo.Context) error {
	airports, err := h.airports.ListByCity(c.Request().Context(), c.Param("city"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, airports)
}

func (h *AirportHandler) ListByCountry(c echo.Context) error {
	airports, err := h.airports.ListByCountry(c.Request().Context(), c.Param("country"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, airports)
}

func (h *AirportHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return badRequest(c, "keyword is required")
	}
	airports, err := h.airports.Search(c.Request().Context(), keyword)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, airports)
}

func (h *AirportHandler) Create(c echo.Context) error {
	var airport models.Airport
	if err := c.Bind(&airport); err != nil {
		return badRequest(c, "failed to parse airport: "+err.Error())
	}
	created, err := h.airports.Create(c.Request().Context(), airport)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AirportHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "airport id must be numeric")
	}
	var airport models.Airport
	if err := c.Bind(&airport); err != nil {
		return badRequest(c, "failed to parse airport: "+err.Error())
	}
	updated, err := h.airports.Update(c.Request().Context(), id, airport)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *AirportHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "airport id must be numeric")
	}
	if err := h.airports.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
