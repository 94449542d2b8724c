package workflow

import (
	"time"

	"github.com/widyasatria/flightbook/internal/models"
)

// State is the position of a booking session in its lifecycle. Transitions
// are driven only by the engine; handlers never mutate a session directly.
type State string

const (
	StateIdle           State = "IDLE"
	StateSearching      State = "SEARCHING"
	StateReviewing      State = "REVIEWING"
	StateFlightSelected State = "FLIGHT_SELECTED"
	StateSubmitting     State = "SUBMITTING"
	StateConfirmed      State = "CONFIRMED"
	StateFailed         State = "FAILED"
)

// Session is one screen's in-memory workflow state. It lives for the duration
// of a booking attempt and is never shared across screens. All entity fields
// are snapshots: copies of server data, not guaranteed fresh.
type Session struct {
	ID             string              `json:"id"`
	State          State               `json:"state"`
	Query          *models.SearchQuery `json:"query,omitempty"`
	Results        []models.Flight     `json:"results,omitempty"`
	SelectedFlight *models.Flight      `json:"selectedFlight,omitempty"`
	Form           BookingForm         `json:"form"`
	Validation     ValidationResult    `json:"validation"`
	Booking        *models.Booking     `json:"booking,omitempty"`
	EditingID      *int64              `json:"editingId,omitempty"`
	LastError      string              `json:"lastError,omitempty"`
	InFlight       bool                `json:"inFlight"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// PriceSummary recomputes the total from the selected flight and the current
// seat count. It is derived on every read so it can never go stale.
func (s *Session) PriceSummary() *models.PriceSummary {
	if s.SelectedFlight == nil {
		return nil
	}
	return buildPriceSummary(*s.SelectedFlight, s.Form.NumberOfSeats)
}

// Clone returns an independent copy so callers cannot mutate stored state.
func (s *Session) Clone() *Session {
	c := *s
	if s.Query != nil {
		q := *s.Query
		c.Query = &q
	}
	if s.Results != nil {
		c.Results = make([]models.Flight, len(s.Results))
		copy(c.Results, s.Results)
	}
	if s.SelectedFlight != nil {
		f := *s.SelectedFlight
		c.SelectedFlight = &f
	}
	if s.Booking != nil {
		b := *s.Booking
		c.Booking = &b
	}
	if s.EditingID != nil {
		id := *s.EditingID
		c.EditingID = &id
	}
	if s.Validation.Errors != nil {
		c.Validation.Errors = make([]FieldError, len(s.Validation.Errors))
		copy(c.Validation.Errors, s.Validation.Errors)
	}
	return &c
}
