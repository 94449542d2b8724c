package models

import (
	"strings"
	"time"
)

// MaxSearchSeats caps the passenger count a search form accepts.
const MaxSearchSeats = 10

// SearchQuery holds user-entered flight search criteria. The departure date
// accepts every timestamp shape APITime does, so callers can send a bare
// calendar date.
type SearchQuery struct {
	DepartureCode string  `json:"departureCode"`
	ArrivalCode   string  `json:"arrivalCode"`
	DepartureDate APITime `json:"departureDate"`
	Seats         int     `json:"seats"`
}

// Validate checks the query and fills defaults. The departure and arrival
// codes are allowed to match; the upstream contract does not reject that.
func (q *SearchQuery) Validate() error {
	q.DepartureCode = strings.ToUpper(strings.TrimSpace(q.DepartureCode))
	q.ArrivalCode = strings.ToUpper(strings.TrimSpace(q.ArrivalCode))

	if q.DepartureCode == "" {
		return ErrMissingDepartureCode
	}
	if q.ArrivalCode == "" {
		return ErrMissingArrivalCode
	}
	if len(q.DepartureCode) != 3 || len(q.ArrivalCode) != 3 {
		return ErrInvalidAirportCode
	}
	if q.DepartureDate.IsZero() {
		return ErrMissingDepartureDate
	}
	if q.Seats == 0 {
		q.Seats = 1
	}
	if q.Seats < 1 || q.Seats > MaxSearchSeats {
		return ErrInvalidSeatCount
	}
	return nil
}

// NormalizedDate returns the departure date at local midnight. The server
// matches on the calendar day and ignores time of day, so the client strips
// it before sending.
func (q SearchQuery) NormalizedDate() time.Time {
	d := q.DepartureDate
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)
}
