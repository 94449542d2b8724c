package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/widyasatria/flightbook/internal/models"
)

// FlightsClient maps 1:1 onto the remote /flights endpoints.
type FlightsClient struct {
	base
}

func NewFlightsClient(cfg Config) *FlightsClient {
	return &FlightsClient{base: newBase(cfg, "flights")}
}

func (c *FlightsClient) List(ctx context.Context) ([]models.Flight, error) {
	var flights []models.Flight
	if err := c.get(ctx, "", nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *FlightsClient) Get(ctx context.Context, id int64) (*models.Flight, error) {
	var flight models.Flight
	if err := c.get(ctx, formatID(id), nil, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (c *FlightsClient) GetByNumber(ctx context.Context, flightNumber string) (*models.Flight, error) {
	var flight models.Flight
	if err := c.get(ctx, "/number/"+url.PathEscape(flightNumber), nil, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (c *FlightsClient) ListByDeparture(ctx context.Context, airportCode string) ([]models.Flight, error) {
	var flights []models.Flight
	if err := c.get(ctx, "/departure/"+url.PathEscape(airportCode), nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *FlightsClient) ListByArrival(ctx context.Context, airportCode string) ([]models.Flight, error) {
	var flights []models.Flight
	if err := c.get(ctx, "/arrival/"+url.PathEscape(airportCode), nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *FlightsClient) ListAvailable(ctx context.Context) ([]models.Flight, error) {
	var flights []models.Flight
	if err := c.get(ctx, "/available", nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *FlightsClient) ListByStatus(ctx context.Context, status models.FlightStatus) ([]models.Flight, error) {
	var flights []models.Flight
	if err := c.get(ctx, "/status/"+url.PathEscape(string(status)), nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// Search queries flights by exact airport-code pair and calendar day. The
// departure date is sent at local midnight; an empty result is a valid answer,
// not an error.
func (c *FlightsClient) Search(ctx context.Context, query models.SearchQuery) ([]models.Flight, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("departureCode", query.DepartureCode)
	params.Set("arrivalCode", query.ArrivalCode)
	params.Set("departureDate", formatSearchDate(query.NormalizedDate()))
	params.Set("seats", strconv.Itoa(query.Seats))

	var flights []models.Flight
	if err := c.get(ctx, "/search", params, &flights); err != nil {
		return nil, err
	}
	if flights == nil {
		flights = []models.Flight{}
	}
	return flights, nil
}

func (c *FlightsClient) Create(ctx context.Context, flight models.Flight) (*models.Flight, error) {
	var created models.Flight
	if err := c.send(ctx, http.MethodPost, "", nil, flight, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *FlightsClient) Update(ctx context.Context, id int64, flight models.Flight) (*models.Flight, error) {
	var updated models.Flight
	if err := c.send(ctx, http.MethodPut, formatID(id), nil, flight, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *FlightsClient) Delete(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, formatID(id), nil, nil, nil)
}

// UpdateStatus is the status pass-through: PUT /flights/{id}/status?status=X.
func (c *FlightsClient) UpdateStatus(ctx context.Context, id int64, status models.FlightStatus) (*models.Flight, error) {
	params := url.Values{}
	params.Set("status", string(status))

	var updated models.Flight
	if err := c.send(ctx, http.MethodPut, formatID(id)+"/status", params, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
