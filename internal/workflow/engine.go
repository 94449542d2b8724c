package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/widyasatria/flightbook/internal/client"
	"github.com/widyasatria/flightbook/internal/models"
)

var (
	// ErrOperationInFlight rejects a user-triggered transition while a prior
	// remote call for the same session is still outstanding.
	ErrOperationInFlight = errors.New("another operation is in flight for this session")

	ErrSessionFinished  = errors.New("session is already confirmed")
	ErrNoFlightSelected = errors.New("no flight selected")
	ErrFormInvalid      = errors.New("booking form is not valid")
	ErrNotEditing       = errors.New("session is not editing a booking")
	ErrCancelNotAllowed = errors.New("only confirmed bookings can be cancelled")
)

// Engine drives the search-and-book session state machine. Clients and store
// are injected; the engine owns no global state and performs no retries.
// Every remote failure is surfaced once and retried only by the user.
type Engine struct {
	flights  *client.FlightsClient
	bookings *client.BookingsClient
	store    Store
	log      *logrus.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(flights *client.FlightsClient, bookings *client.BookingsClient, store Store, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		flights:  flights,
		bookings: bookings,
		store:    store,
		log:      log,
		locks:    make(map[string]*sync.Mutex),
	}
}

// StartSession creates a fresh Idle session.
func (e *Engine) StartSession(ctx context.Context) (*Session, error) {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		State:     StateIdle,
		Form:      BookingForm{NumberOfSeats: 1},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Validation = ValidateForm(s.Form, nil)

	if err := e.store.Put(ctx, s); err != nil {
		return nil, err
	}
	e.log.WithField("session_id", s.ID).Debug("session started")
	return s.Clone(), nil
}

// GetSession returns a copy of the current session state.
func (e *Engine) GetSession(ctx context.Context, id string) (*Session, error) {
	lock := e.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	s, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// EndSession discards the session and its lock. Ending an unknown session is
// not an error.
func (e *Engine) EndSession(ctx context.Context, id string) error {
	lock := e.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := e.store.Delete(ctx, id); err != nil {
		return err
	}

	e.mu.Lock()
	delete(e.locks, id)
	e.mu.Unlock()
	return nil
}

// Search validates the criteria, normalizes the departure date to local
// midnight and moves the session to Reviewing with whatever the server
// returned. An empty result set is a valid outcome, distinct from Failed.
func (e *Engine) Search(ctx context.Context, id string, query models.SearchQuery) (*Session, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s, err := e.begin(ctx, id, StateSearching)
	if err != nil {
		return nil, err
	}
	s.Query = &query

	flights, err := e.flights.Search(ctx, query)
	if err != nil {
		return e.fail(ctx, s, "search", err)
	}

	s.Results = flights
	s.State = StateReviewing
	s.LastError = ""
	e.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"departure":  query.DepartureCode,
		"arrival":    query.ArrivalCode,
		"results":    len(flights),
	}).Info("flight search completed")
	return e.finish(ctx, s)
}

// SelectFlight fetches a fresh snapshot of the chosen flight and re-applies
// the dynamic seat bound against its availableSeats.
func (e *Engine) SelectFlight(ctx context.Context, id string, flightID int64) (*Session, error) {
	s, err := e.begin(ctx, id, stateUnchanged)
	if err != nil {
		return nil, err
	}

	flight, err := e.flights.Get(ctx, flightID)
	if err != nil {
		return e.fail(ctx, s, "select", err)
	}

	s.SelectedFlight = flight
	s.State = StateFlightSelected
	s.LastError = ""
	s.Validation = ValidateForm(s.Form, flight)
	e.log.WithFields(logrus.Fields{
		"session_id":      s.ID,
		"flight":          flight.FlightNumber,
		"available_seats": flight.AvailableSeats,
	}).Info("flight selected")
	return e.finish(ctx, s)
}

// UpdateForm stores the entered fields, re-validates them against the selected
// flight and recomputes the price summary. It never talks to the network.
func (e *Engine) UpdateForm(ctx context.Context, id string, form BookingForm) (*Session, error) {
	lock := e.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	s, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.InFlight {
		return nil, ErrOperationInFlight
	}
	if s.SelectedFlight == nil {
		return nil, ErrNoFlightSelected
	}

	s.Form = form
	s.Validation = ValidateForm(form, s.SelectedFlight)
	s.UpdatedAt = time.Now()
	if err := e.store.Put(ctx, s); err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// Submit sends the booking to the server. It refuses to run while another
// submission is outstanding and refuses an invalid form before any request is
// made. On failure the entered values are preserved for a manual retry.
func (e *Engine) Submit(ctx context.Context, id string) (*Session, error) {
	s, err := e.begin(ctx, id, StateSubmitting)
	if err != nil {
		return nil, err
	}
	if s.SelectedFlight == nil {
		return nil, e.abort(ctx, s, ErrNoFlightSelected)
	}

	// Re-validate at the last moment so a refreshed flight snapshot is honored.
	s.Validation = ValidateForm(s.Form, s.SelectedFlight)
	if !s.Validation.Valid {
		return nil, e.abort(ctx, s, ErrFormInvalid)
	}

	payload := models.Booking{
		BookingReference: s.Form.BookingReference,
		Flight:           *s.SelectedFlight,
		PassengerName:    s.Form.PassengerName,
		Email:            s.Form.Email,
		PhoneNumber:      s.Form.PhoneNumber,
		NumberOfSeats:    s.Form.NumberOfSeats,
		TotalAmount:      s.Form.TotalAmount(*s.SelectedFlight),
	}

	created, err := e.bookings.Create(ctx, payload)
	if err != nil {
		return e.fail(ctx, s, "submit", err)
	}

	s.Booking = created
	s.State = StateConfirmed
	s.LastError = ""
	e.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"reference":  created.BookingReference,
		"seats":      created.NumberOfSeats,
	}).Info("booking confirmed")
	return e.finish(ctx, s)
}

// LoadBookingForEdit pre-populates the form from an existing confirmed
// booking. The flight snapshot comes from the loaded booking; its capacity is
// deliberately not refreshed, matching the screen this replaces.
func (e *Engine) LoadBookingForEdit(ctx context.Context, id string, bookingID int64) (*Session, error) {
	s, err := e.begin(ctx, id, stateUnchanged)
	if err != nil {
		return nil, err
	}

	booking, err := e.bookings.Get(ctx, bookingID)
	if err != nil {
		return e.fail(ctx, s, "load booking", err)
	}

	s.Booking = booking
	s.EditingID = booking.ID
	s.SelectedFlight = &booking.Flight
	s.Form = BookingForm{
		PassengerName:    booking.PassengerName,
		Email:            booking.Email,
		PhoneNumber:      booking.PhoneNumber,
		BookingReference: booking.BookingReference,
		NumberOfSeats:    booking.NumberOfSeats,
	}
	s.Validation = ValidateForm(s.Form, s.SelectedFlight)
	s.State = StateFlightSelected
	s.LastError = ""
	return e.finish(ctx, s)
}

// SubmitEdit replaces the booking: passenger fields and seat count come from
// the form, everything else (flight, reference, booking date, status) is kept
// from the original record. The total is recomputed from the merged values.
func (e *Engine) SubmitEdit(ctx context.Context, id string) (*Session, error) {
	s, err := e.begin(ctx, id, StateSubmitting)
	if err != nil {
		return nil, err
	}
	if s.EditingID == nil || s.Booking == nil {
		return nil, e.abort(ctx, s, ErrNotEditing)
	}

	s.Validation = ValidateForm(s.Form, s.SelectedFlight)
	if !s.Validation.Valid {
		return nil, e.abort(ctx, s, ErrFormInvalid)
	}

	merged := *s.Booking
	merged.PassengerName = s.Form.PassengerName
	merged.Email = s.Form.Email
	merged.PhoneNumber = s.Form.PhoneNumber
	merged.NumberOfSeats = s.Form.NumberOfSeats
	merged.TotalAmount = s.Form.TotalAmount(merged.Flight)

	updated, err := e.bookings.Update(ctx, *s.EditingID, merged)
	if err != nil {
		return e.fail(ctx, s, "update booking", err)
	}

	s.Booking = updated
	s.State = StateConfirmed
	s.LastError = ""
	e.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"booking_id": *s.EditingID,
	}).Info("booking updated")
	return e.finish(ctx, s)
}

// CancelBooking cancels a confirmed booking. The client-side status gate is a
// UX guard; the server decides what an already-cancelled booking gets.
func (e *Engine) CancelBooking(ctx context.Context, bookingID int64) error {
	booking, err := e.bookings.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return ErrCancelNotAllowed
	}
	if err := e.bookings.Cancel(ctx, bookingID); err != nil {
		return err
	}
	e.log.WithField("booking_id", bookingID).Info("booking cancelled")
	return nil
}

// stateUnchanged leaves the visible state as is while an operation is in flight.
const stateUnchanged = State("")

// begin acquires the session, rejects re-entrant operations via the in-flight
// mark and persists the transitional state before the network call starts.
func (e *Engine) begin(ctx context.Context, id string, transitional State) (*Session, error) {
	lock := e.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	s, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.InFlight {
		return nil, ErrOperationInFlight
	}
	if s.State == StateConfirmed {
		return nil, ErrSessionFinished
	}

	s.InFlight = true
	if transitional != stateUnchanged {
		s.State = transitional
	}
	s.UpdatedAt = time.Now()
	if err := e.store.Put(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// finish clears the in-flight mark and persists the outcome.
func (e *Engine) finish(ctx context.Context, s *Session) (*Session, error) {
	lock := e.sessionLock(s.ID)
	lock.Lock()
	defer lock.Unlock()

	s.InFlight = false
	s.UpdatedAt = time.Now()
	if err := e.store.Put(ctx, s); err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// fail records a remote failure: the session moves to Failed with a
// human-readable message and all entered values intact.
func (e *Engine) fail(ctx context.Context, s *Session, op string, cause error) (*Session, error) {
	e.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"operation":  op,
	}).WithError(cause).Warn("remote operation failed")

	s.State = StateFailed
	s.LastError = cause.Error()
	if _, err := e.finish(ctx, s); err != nil {
		return nil, err
	}
	return s.Clone(), cause
}

// abort backs out of a begun operation without changing the visible state,
// used for pre-flight rejections that never reach the network.
func (e *Engine) abort(ctx context.Context, s *Session, cause error) error {
	s.State = previousVisibleState(s)
	if _, err := e.finish(ctx, s); err != nil {
		return err
	}
	return cause
}

func previousVisibleState(s *Session) State {
	if s.SelectedFlight != nil {
		return StateFlightSelected
	}
	if s.Results != nil {
		return StateReviewing
	}
	return StateIdle
}

func (e *Engine) sessionLock(id string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[id] = lock
	}
	return lock
}
