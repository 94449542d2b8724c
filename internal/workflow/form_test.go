package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/widyasatria/flightbook/internal/models"
)

func validForm() BookingForm {
	return BookingForm{
		PassengerName:    "Widya Satria",
		Email:            "widya@example.com",
		PhoneNumber:      "+62811000111",
		BookingReference: "BK-20260914-0001",
		NumberOfSeats:    2,
	}
}

func TestValidateForm(t *testing.T) {
	flight := &models.Flight{Price: 120.50, AvailableSeats: 5}

	tests := []struct {
		name      string
		mutate    func(f *BookingForm)
		flight    *models.Flight
		wantField string
	}{
		{
			name:   "valid form",
			mutate: func(f *BookingForm) {},
			flight: flight,
		},
		{
			name:      "missing passenger name",
			mutate:    func(f *BookingForm) { f.PassengerName = "  " },
			flight:    flight,
			wantField: "passengerName",
		},
		{
			name:      "missing email",
			mutate:    func(f *BookingForm) { f.Email = "" },
			flight:    flight,
			wantField: "email",
		},
		{
			name:      "malformed email",
			mutate:    func(f *BookingForm) { f.Email = "not-an-email" },
			flight:    flight,
			wantField: "email",
		},
		{
			name:      "missing phone number",
			mutate:    func(f *BookingForm) { f.PhoneNumber = "" },
			flight:    flight,
			wantField: "phoneNumber",
		},
		{
			name:      "missing booking reference",
			mutate:    func(f *BookingForm) { f.BookingReference = "" },
			flight:    flight,
			wantField: "bookingReference",
		},
		{
			name:      "zero seats",
			mutate:    func(f *BookingForm) { f.NumberOfSeats = 0 },
			flight:    flight,
			wantField: "numberOfSeats",
		},
		{
			name:      "more seats than available",
			mutate:    func(f *BookingForm) { f.NumberOfSeats = 6 },
			flight:    flight,
			wantField: "numberOfSeats",
		},
		{
			name:   "no flight selected skips the upper bound",
			mutate: func(f *BookingForm) { f.NumberOfSeats = 100 },
			flight: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			result := ValidateForm(form, tt.flight)
			if tt.wantField == "" {
				assert.True(t, result.Valid, "errors: %v", result.Messages())
				return
			}

			require.False(t, result.Valid)
			fields := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestSeatBoundTightensWhenFlightChanges(t *testing.T) {
	form := validForm()
	form.NumberOfSeats = 4

	roomy := &models.Flight{AvailableSeats: 10}
	assert.True(t, ValidateForm(form, roomy).Valid)

	cramped := &models.Flight{AvailableSeats: 2}
	result := ValidateForm(form, cramped)
	assert.False(t, result.Valid, "previously valid seat count fails against the new snapshot")
}

func TestTotalAmountRecomputed(t *testing.T) {
	form := validForm()
	flight := models.Flight{Price: 120.50}

	assert.InDelta(t, 241.00, form.TotalAmount(flight), 0.001)

	form.NumberOfSeats = 3
	assert.InDelta(t, 361.50, form.TotalAmount(flight), 0.001)
}

func TestSessionPriceSummary(t *testing.T) {
	s := &Session{Form: BookingForm{NumberOfSeats: 2}}
	assert.Nil(t, s.PriceSummary(), "no summary without a selected flight")

	s.SelectedFlight = &models.Flight{Price: 1200.25}
	summary := s.PriceSummary()
	require.NotNil(t, summary)
	assert.InDelta(t, 2400.50, summary.TotalAmount, 0.001)
	assert.Equal(t, "$2,400.50", summary.FormattedTotal)
	assert.Equal(t, 2, summary.NumberOfSeats)
}

func TestSessionCloneIsIndependent(t *testing.T) {
	id := int64(4)
	s := &Session{
		ID:             "abc",
		State:          StateFlightSelected,
		Results:        []models.Flight{{FlightNumber: "GA204"}},
		SelectedFlight: &models.Flight{FlightNumber: "GA204"},
		EditingID:      &id,
	}

	c := s.Clone()
	c.Results[0].FlightNumber = "JT610"
	c.SelectedFlight.FlightNumber = "JT610"
	*c.EditingID = 9

	assert.Equal(t, "GA204", s.Results[0].FlightNumber)
	assert.Equal(t, "GA204", s.SelectedFlight.FlightNumber)
	assert.Equal(t, int64(4), *s.EditingID)
}
