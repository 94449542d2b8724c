package models

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusPending   BookingStatus = "PENDING"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted, BookingStatusPending:
		return true
	}
	return false
}

// Booking carries the flight as an embedded snapshot, not a live reference.
// TotalAmount is price * seats computed client-side; the server recomputes it
// and remains the source of truth.
type Booking struct {
	ID               *int64        `json:"id,omitempty"`
	BookingReference string        `json:"bookingReference"`
	Flight           Flight        `json:"flight"`
	PassengerName    string        `json:"passengerName"`
	Email            string        `json:"email"`
	PhoneNumber      string        `json:"phoneNumber"`
	NumberOfSeats    int           `json:"numberOfSeats"`
	TotalAmount      float64       `json:"totalAmount"`
	Status           BookingStatus `json:"status"`
	BookingDate      APITime       `json:"bookingDate"`
}
