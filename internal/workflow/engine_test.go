package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/widyasatria/flightbook/internal/client"
	"github.com/widyasatria/flightbook/internal/models"
)

// stubStore is a minimal in-memory Store for engine tests.
type stubStore struct {
	mu sync.Mutex
	m  map[string]*Session
}

func newStubStore() *stubStore {
	return &stubStore{m: make(map[string]*Session)}
}

func (s *stubStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (s *stubStore) Put(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sess.ID] = sess.Clone()
	return nil
}

func (s *stubStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

func (s *stubStore) Close() error { return nil }

// markInFlight simulates an outstanding remote call for the session.
func (s *stubStore) markInFlight(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id].InFlight = true
}

func engineFlight(id int64, available int) models.Flight {
	return models.Flight{
		ID:               &id,
		FlightNumber:     "GA204",
		DepartureAirport: models.Airport{Code: "CGK", City: "Jakarta"},
		ArrivalAirport:   models.Airport{Code: "DPS", City: "Denpasar"},
		DepartureTime:    models.NewAPITime(time.Date(2026, 9, 14, 8, 30, 0, 0, time.Local)),
		ArrivalTime:      models.NewAPITime(time.Date(2026, 9, 14, 11, 20, 0, 0, time.Local)),
		TotalSeats:       160,
		AvailableSeats:   available,
		Price:            120.50,
		Status:           models.FlightStatusScheduled,
	}
}

func validQuery() models.SearchQuery {
	return models.SearchQuery{
		DepartureCode: "CGK",
		ArrivalCode:   "DPS",
		DepartureDate: models.NewAPITime(time.Date(2026, 9, 14, 15, 0, 0, 0, time.Local)),
		Seats:         2,
	}
}

func newTestEngine(t *testing.T, upstream http.Handler) (*Engine, *stubStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := client.Config{BaseURL: srv.URL + "/api"}
	store := newStubStore()
	engine := NewEngine(client.NewFlightsClient(cfg), client.NewBookingsClient(cfg), store, nil)
	return engine, store, srv
}

func startSession(t *testing.T, e *Engine) string {
	t.Helper()
	s, err := e.StartSession(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateIdle, s.State)
	return s.ID
}

func TestFullBookingFlow(t *testing.T) {
	flight := engineFlight(1, 5)
	var createdBody models.Booking

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/flights/search", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Flight{flight})
	})
	mux.HandleFunc("GET /api/flights/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(flight)
	})
	mux.HandleFunc("POST /api/bookings", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&createdBody))
		created := createdBody
		id := int64(77)
		created.ID = &id
		created.Status = models.BookingStatusConfirmed
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	})

	e, _, _ := newTestEngine(t, mux)
	ctx := context.Background()
	id := startSession(t, e)

	s, err := e.Search(ctx, id, validQuery())
	require.NoError(t, err)
	assert.Equal(t, StateReviewing, s.State)
	require.Len(t, s.Results, 1)

	s, err = e.SelectFlight(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, StateFlightSelected, s.State)
	assert.False(t, s.Validation.Valid, "empty form cannot be valid yet")

	form := validForm()
	s, err = e.UpdateForm(ctx, id, form)
	require.NoError(t, err)
	assert.True(t, s.Validation.Valid)

	s, err = e.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, s.State)
	require.NotNil(t, s.Booking)
	assert.Equal(t, models.BookingStatusConfirmed, s.Booking.Status)
	assert.False(t, s.InFlight)

	// The submitted payload carries the snapshot and the recomputed total.
	assert.Equal(t, "GA204", createdBody.Flight.FlightNumber)
	assert.InDelta(t, 241.00, createdBody.TotalAmount, 0.001)
}

func TestSearchEmptyResultsIsReviewing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/flights/search", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Flight{})
	})

	e, _, _ := newTestEngine(t, mux)
	id := startSession(t, e)

	s, err := e.Search(context.Background(), id, validQuery())
	require.NoError(t, err)
	assert.Equal(t, StateReviewing, s.State)
	assert.NotNil(t, s.Results)
	assert.Empty(t, s.Results)
	assert.Empty(t, s.LastError)
}

func TestSearchUpstreamFailureMovesToFailed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/flights/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	e, store, _ := newTestEngine(t, mux)
	id := startSession(t, e)

	s, err := e.Search(context.Background(), id, validQuery())
	require.Error(t, err)
	assert.True(t, client.IsTransport(err))
	require.NotNil(t, s)
	assert.Equal(t, StateFailed, s.State)
	assert.NotEmpty(t, s.LastError)

	// Criteria survive the failure so the user can retry manually.
	stored, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, stored.Query)
	assert.Equal(t, "CGK", stored.Query.DepartureCode)
	assert.False(t, stored.InFlight)
}

func TestSearchInvalidQueryLeavesSessionUntouched(t *testing.T) {
	e, store, _ := newTestEngine(t, http.NewServeMux())
	id := startSession(t, e)

	_, err := e.Search(context.Background(), id, models.SearchQuery{ArrivalCode: "DPS"})
	assert.ErrorIs(t, err, models.ErrMissingDepartureCode)

	stored, getErr := store.Get(context.Background(), id)
	require.NoError(t, getErr)
	assert.Equal(t, StateIdle, stored.State)
}

func TestSubmitWithoutFlightSelected(t *testing.T) {
	e, store, _ := newTestEngine(t, http.NewServeMux())
	id := startSession(t, e)

	_, err := e.Submit(context.Background(), id)
	assert.ErrorIs(t, err, ErrNoFlightSelected)

	stored, getErr := store.Get(context.Background(), id)
	require.NoError(t, getErr)
	assert.Equal(t, StateIdle, stored.State)
	assert.False(t, stored.InFlight)
}

func TestSubmitInvalidFormNeverReachesNetwork(t *testing.T) {
	requested := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/flights/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(engineFlight(1, 5))
	})
	mux.HandleFunc("POST /api/bookings", func(w http.ResponseWriter, r *http.Request) {
		requested = true
	})

	e, store, _ := newTestEngine(t, mux)
	ctx := context.Background()
	id := startSession(t, e)

	_, err := e.SelectFlight(ctx, id, 1)
	require.NoError(t, err)

	_, err = e.Submit(ctx, id)
	assert.ErrorIs(t, err, ErrFormInvalid)
	assert.False(t, requested)

	stored, getErr := store.Get(ctx, id)
	require.NoError(t, getErr)
	assert.Equal(t, StateFlightSelected, stored.State, "visible state is restored")
}

func TestSubmitRejectsWhileOperationInFlight(t *testing.T) {
	e, store, _ := newTestEngine(t, http.NewServeMux())
	id := startSession(t, e)
	store.markInFlight(id)

	_, err := e.Submit(context.Background(), id)
	assert.ErrorIs(t, err, ErrOperationInFlight)
}

func TestSubmitAfterConfirmedIsRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/flights/search", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Flight{engineFlight(1, 5)})
	})
	mux.HandleFunc("GET /api/flights/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(engineFlight(1, 5))
	})
	mux.HandleFunc("POST /api/bookings", func(w http.ResponseWriter, r *http.Request) {
		var b models.Booking
		_ = json.NewDecoder(r.Body).Decode(&b)
		id := int64(77)
		b.ID = &id
		b.Status = models.BookingStatusConfirmed
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(b)
	})

	e, _, _ := newTestEngine(t, mux)
	ctx := context.Background()
	id := startSession(t, e)

	_, err := e.Search(ctx, id, validQuery())
	require.NoError(t, err)
	_, err = e.SelectFlight(ctx, id, 1)
	require.NoError(t, err)
	_, err = e.UpdateForm(ctx, id, validForm())
	require.NoError(t, err)
	_, err = e.Submit(ctx, id)
	require.NoError(t, err)

	_, err = e.Submit(ctx, id)
	assert.ErrorIs(t, err, ErrSessionFinished)
}

func TestOversellRejectionMovesToFailedAndKeepsForm(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/flights/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(engineFlight(1, 5))
	})
	mux.HandleFunc("POST /api/bookings", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"not enough seats available"}`))
	})

	e, store, _ := newTestEngine(t, mux)
	ctx := context.Background()
	id := startSession(t, e)

	_, err := e.SelectFlight(ctx, id, 1)
	require.NoError(t, err)
	form := validForm()
	_, err = e.UpdateForm(ctx, id, form)
	require.NoError(t, err)

	s, err := e.Submit(ctx, id)
	require.Error(t, err)
	assert.True(t, client.IsRejected(err))
	assert.Equal(t, StateFailed, s.State)
	assert.Contains(t, s.LastError, "not enough seats")

	stored, getErr := store.Get(ctx, id)
	require.NoError(t, getErr)
	assert.Equal(t, form.PassengerName, stored.Form.PassengerName, "entered values survive the failure")
}

func TestSelectFlightRetightensSeatBound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/flights/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(engineFlight(1, 10))
	})
	mux.HandleFunc("GET /api/flights/2", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(engineFlight(2, 2))
	})

	e, _, _ := newTestEngine(t, mux)
	ctx := context.Background()
	id := startSession(t, e)

	_, err := e.SelectFlight(ctx, id, 1)
	require.NoError(t, err)
	form := validForm()
	form.NumberOfSeats = 4
	s, err := e.UpdateForm(ctx, id, form)
	require.NoError(t, err)
	assert.True(t, s.Validation.Valid)

	s, err = e.SelectFlight(ctx, id, 2)
	require.NoError(t, err)
	assert.False(t, s.Validation.Valid, "four seats no longer fit the new flight")
}

func TestEditFlow(t *testing.T) {
	flight := engineFlight(1, 5)
	bookingID := int64(42)
	original := models.Booking{
		ID:               &bookingID,
		BookingReference: "BK-20260914-0001",
		Flight:           flight,
		PassengerName:    "Widya Satria",
		Email:            "widya@example.com",
		PhoneNumber:      "+62811000111",
		NumberOfSeats:    2,
		TotalAmount:      241.00,
		Status:           models.BookingStatusConfirmed,
		BookingDate:      models.NewAPITime(time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)),
	}

	var updatedBody models.Booking
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/bookings/42", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(original)
	})
	mux.HandleFunc("PUT /api/bookings/42", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&updatedBody))
		_ = json.NewEncoder(w).Encode(updatedBody)
	})

	e, _, _ := newTestEngine(t, mux)
	ctx := context.Background()
	id := startSession(t, e)

	s, err := e.LoadBookingForEdit(ctx, id, bookingID)
	require.NoError(t, err)
	assert.Equal(t, StateFlightSelected, s.State)
	assert.Equal(t, "Widya Satria", s.Form.PassengerName)
	assert.Equal(t, 2, s.Form.NumberOfSeats)
	require.NotNil(t, s.EditingID)
	assert.Equal(t, bookingID, *s.EditingID)

	form := s.Form
	form.NumberOfSeats = 3
	form.PhoneNumber = "+62811999888"
	_, err = e.UpdateForm(ctx, id, form)
	require.NoError(t, err)

	s, err = e.SubmitEdit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, s.State)

	// Mutable fields change, everything else is carried from the original.
	assert.Equal(t, 3, updatedBody.NumberOfSeats)
	assert.Equal(t, "+62811999888", updatedBody.PhoneNumber)
	assert.Equal(t, "BK-20260914-0001", updatedBody.BookingReference)
	assert.Equal(t, models.BookingStatusConfirmed, updatedBody.Status)
	assert.Equal(t, "GA204", updatedBody.Flight.FlightNumber)
	assert.InDelta(t, 361.50, updatedBody.TotalAmount, 0.001)
}

func TestSubmitEditWithoutLoadedBooking(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/flights/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(engineFlight(1, 5))
	})

	e, _, _ := newTestEngine(t, mux)
	ctx := context.Background()
	id := startSession(t, e)

	_, err := e.SelectFlight(ctx, id, 1)
	require.NoError(t, err)
	_, err = e.UpdateForm(ctx, id, validForm())
	require.NoError(t, err)

	_, err = e.SubmitEdit(ctx, id)
	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestCancelBookingGate(t *testing.T) {
	cancelCalled := false
	status := models.BookingStatusPending

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/bookings/42", func(w http.ResponseWriter, r *http.Request) {
		id := int64(42)
		_ = json.NewEncoder(w).Encode(models.Booking{ID: &id, Status: status})
	})
	mux.HandleFunc("PUT /api/bookings/42/cancel", func(w http.ResponseWriter, r *http.Request) {
		cancelCalled = true
		w.WriteHeader(http.StatusNoContent)
	})

	e, _, _ := newTestEngine(t, mux)
	ctx := context.Background()

	err := e.CancelBooking(ctx, 42)
	assert.ErrorIs(t, err, ErrCancelNotAllowed)
	assert.False(t, cancelCalled)

	status = models.BookingStatusConfirmed
	require.NoError(t, e.CancelBooking(ctx, 42))
	assert.True(t, cancelCalled)
}

func TestEndSessionDiscardsState(t *testing.T) {
	e, _, _ := newTestEngine(t, http.NewServeMux())
	ctx := context.Background()
	id := startSession(t, e)

	require.NoError(t, e.EndSession(ctx, id))

	_, err := e.GetSession(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateFormRequiresSelectedFlight(t *testing.T) {
	e, _, _ := newTestEngine(t, http.NewServeMux())
	id := startSession(t, e)

	_, err := e.UpdateForm(context.Background(), id, validForm())
	assert.ErrorIs(t, err, ErrNoFlightSelected)
}
