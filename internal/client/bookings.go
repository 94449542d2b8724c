package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/widyasatria/flightbook/internal/models"
)

// BookingsClient maps 1:1 onto the remote /bookings endpoints.
type BookingsClient struct {
	base
}

func NewBookingsClient(cfg Config) *BookingsClient {
	return &BookingsClient{base: newBase(cfg, "bookings")}
}

func (c *BookingsClient) List(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get(ctx, "", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) Get(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	if err := c.get(ctx, formatID(id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingsClient) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	var booking models.Booking
	if err := c.get(ctx, "/reference/"+url.PathEscape(reference), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingsClient) ListByPassengerName(ctx context.Context, name string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get(ctx, "/passenger/"+url.PathEscape(name), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get(ctx, "/email/"+url.PathEscape(email), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) ListByFlight(ctx context.Context, flightID int64) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get(ctx, "/flight"+formatID(flightID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get(ctx, "/status/"+url.PathEscape(string(status)), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) ListUpcoming(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.get(ctx, "/upcoming", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingsClient) Search(ctx context.Context, keyword string) ([]models.Booking, error) {
	params := url.Values{}
	params.Set("keyword", keyword)

	var bookings []models.Booking
	if err := c.get(ctx, "/search", params, &bookings); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (c *BookingsClient) Create(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	var created models.Booking
	if err := c.send(ctx, http.MethodPost, "", nil, booking, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update performs a full replace of the booking record.
func (c *BookingsClient) Update(ctx context.Context, id int64, booking models.Booking) (*models.Booking, error) {
	var updated models.Booking
	if err := c.send(ctx, http.MethodPut, formatID(id), nil, booking, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Cancel is idempotent in intent; cancelling an already-cancelled booking is
// the server's call, not ours.
func (c *BookingsClient) Cancel(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodPut, formatID(id)+"/cancel", nil, struct{}{}, nil)
}

func (c *BookingsClient) Delete(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, formatID(id), nil, nil, nil)
}
