package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/widyasatria/flightbook/internal/models"
)

// AirportsClient maps 1:1 onto the remote /airports endpoints. Airports are
// immutable reference data from the workflow's point of view; the write
// operations exist for the admin screens.
type AirportsClient struct {
	base
}

func NewAirportsClient(cfg Config) *AirportsClient {
	return &AirportsClient{base: newBase(cfg, "airports")}
}

func (c *AirportsClient) List(ctx context.Context) ([]models.Airport, error) {
	var airports []models.Airport
	if err := c.get(ctx, "", nil, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *AirportsClient) Get(ctx context.Context, id int64) (*models.Airport, error) {
	var airport models.Airport
	if err := c.get(ctx, formatID(id), nil, &airport); err != nil {
		return nil, err
	}
	return &airport, nil
}

func (c *AirportsClient) GetByCode(ctx context.Context, code string) (*models.Airport, error) {
	var airport models.Airport
	if err := c.get(ctx, "/code/"+url.PathEscape(code), nil, &airport); err != nil {
		return nil, err
	}
	return &airport, nil
}

func (c *AirportsClient) ListByCity(ctx context.Context, city string) ([]models.Airport, error) {
	var airports []models.Airport
	if err := c.get(ctx, "/city/"+url.PathEscape(city), nil, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *AirportsClient) ListByCountry(ctx context.Context, country string) ([]models.Airport, error) {
	var airports []models.Airport
	if err := c.get(ctx, "/country/"+url.PathEscape(country), nil, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *AirportsClient) Search(ctx context.Context, keyword string) ([]models.Airport, error) {
	params := url.Values{}
	params.Set("keyword", keyword)

	var airports []models.Airport
	if err := c.get(ctx, "/search", params, &airports); err != nil {
		return nil, err
	}
	if airports == nil {
		airports = []models.Airport{}
	}
	return airports, nil
}

func (c *AirportsClient) Create(ctx context.Context, airport models.Airport) (*models.Airport, error) {
	var created models.Airport
	if err := c.send(ctx, http.MethodPost, "", nil, airport, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *AirportsClient) Update(ctx context.Context, id int64, airport models.Airport) (*models.Airport, error) {
	var updated models.Airport
	if err := c.send(ctx, http.MethodPut, formatID(id), nil, airport, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *AirportsClient) Delete(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, formatID(id), nil, nil, nil)
}
