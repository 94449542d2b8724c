package models

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingDepartureCode ValidationError = "departure airport code is required"
	ErrMissingArrivalCode   ValidationError = "arrival airport code is required"
	ErrInvalidAirportCode   ValidationError = "airport codes must be 3 letters"
	ErrMissingDepartureDate ValidationError = "departure date is required"
	ErrInvalidSeatCount     ValidationError = "seat count must be between 1 and 10"
)
