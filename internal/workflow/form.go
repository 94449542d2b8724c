package workflow

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/widyasatria/flightbook/internal/models"
	"github.com/widyasatria/flightbook/pkg/currency"
)

// BookingForm holds the passenger fields the user types in. It is plain data
// so it can be validated and tested without any rendering layer.
type BookingForm struct {
	PassengerName    string `json:"passengerName"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	BookingReference string `json:"bookingReference"`
	NumberOfSeats    int    `json:"numberOfSeats"`
}

// TotalAmount is price times seats for the given flight snapshot. Always
// recomputed from its inputs, never cached.
func (f BookingForm) TotalAmount(flight models.Flight) float64 {
	return flight.Price * float64(f.NumberOfSeats)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

func (r ValidationResult) Messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return msgs
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateForm applies the client-side rules that gate submission. The seat
// upper bound is dynamic: it tracks the selected flight's availableSeats and
// must be re-applied whenever the flight snapshot changes.
func ValidateForm(form BookingForm, flight *models.Flight) ValidationResult {
	var errs []FieldError

	if strings.TrimSpace(form.PassengerName) == "" {
		errs = append(errs, FieldError{Field: "passengerName", Message: "passenger name is required"})
	}
	if strings.TrimSpace(form.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !emailPattern.MatchString(form.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email address is not valid"})
	}
	if strings.TrimSpace(form.PhoneNumber) == "" {
		errs = append(errs, FieldError{Field: "phoneNumber", Message: "phone number is required"})
	}
	if strings.TrimSpace(form.BookingReference) == "" {
		errs = append(errs, FieldError{Field: "bookingReference", Message: "booking reference is required"})
	}

	if form.NumberOfSeats < 1 {
		errs = append(errs, FieldError{Field: "numberOfSeats", Message: "at least 1 seat is required"})
	} else if flight != nil && form.NumberOfSeats > flight.AvailableSeats {
		errs = append(errs, FieldError{
			Field:   "numberOfSeats",
			Message: fmt.Sprintf("maximum %d seats available", flight.AvailableSeats),
		})
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func buildPriceSummary(flight models.Flight, seats int) *models.PriceSummary {
	total := flight.Price * float64(seats)
	return &models.PriceSummary{
		PricePerSeat:   flight.Price,
		NumberOfSeats:  seats,
		TotalAmount:    total,
		FormattedTotal: currency.FormatUSD(total),
	}
}
