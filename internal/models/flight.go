package models

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "SCHEDULED"
	FlightStatusDelayed   FlightStatus = "DELAYED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
	FlightStatusBoarding  FlightStatus = "BOARDING"
	FlightStatusDeparted  FlightStatus = "DEPARTED"
	FlightStatusArrived   FlightStatus = "ARRIVED"
)

func (s FlightStatus) Valid() bool {
	switch s {
	case FlightStatusScheduled, FlightStatusDelayed, FlightStatusCancelled,
		FlightStatusBoarding, FlightStatusDeparted, FlightStatusArrived:
		return true
	}
	return false
}

// Flight is a snapshot of a flight as the remote service reported it. The
// client only reads it; every mutation goes back through the API.
type Flight struct {
	ID               *int64       `json:"id,omitempty"`
	FlightNumber     string       `json:"flightNumber"`
	DepartureAirport Airport      `json:"departureAirport"`
	ArrivalAirport   Airport      `json:"arrivalAirport"`
	DepartureTime    APITime      `json:"departureTime"`
	ArrivalTime      APITime      `json:"arrivalTime"`
	AircraftType     string       `json:"aircraftType"`
	TotalSeats       int          `json:"totalSeats"`
	AvailableSeats   int          `json:"availableSeats"`
	Price            float64      `json:"price"`
	Status           FlightStatus `json:"status"`
}

// HasCapacity reports whether the snapshot had room for the requested seats
// when it was taken. The server holds the authoritative count.
func (f Flight) HasCapacity(seats int) bool {
	return seats >= 1 && seats <= f.AvailableSeats
}
