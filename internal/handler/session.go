package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/widyasatria/flightbook/internal/models"
	"github.com/widyasatria/flightbook/internal/workflow"
)

// SessionHandler exposes the booking workflow over HTTP. Every mutation goes
// through the engine so the state machine rules hold no matter how impatient
// the caller is.
type SessionHandler struct {
	engine *workflow.Engine
}

func NewSessionHandler(engine *workflow.Engine) *SessionHandler {
	return &SessionHandler{engine: engine}
}

// sessionResponse decorates the session with the derived price summary so
// callers never compute money on their side.
type sessionResponse struct {
	*workflow.Session
	PriceSummary *models.PriceSummary `json:"priceSummary,omitempty"`
}

func respondSession(c echo.Context, code int, s *workflow.Session) error {
	return c.JSON(code, sessionResponse{
		Session:      s,
		PriceSummary: s.PriceSummary(),
	})
}

func (h *SessionHandler) Start(c echo.Context) error {
	s, err := h.engine.StartSession(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondSession(c, http.StatusCreated, s)
}

func (h *SessionHandler) Get(c echo.Context) error {
	s, err := h.engine.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respondSession(c, http.StatusOK, s)
}

func (h *SessionHandler) Search(c echo.Context) error {
	var query models.SearchQuery
	if err := c.Bind(&query); err != nil {
		return badRequest(c, "failed to parse search criteria: "+err.Error())
	}

	s, err := h.engine.Search(c.Request().Context(), c.Param("id"), query)
	if err != nil {
		if s != nil {
			// The session moved to Failed; the caller still gets its state.
			return respondSession(c, http.StatusOK, s)
		}
		return writeError(c, err)
	}
	return respondSession(c, http.StatusOK, s)
}

type selectFlightRequest struct {
	FlightID int64 `json:"flightId"`
}

func (h *SessionHandler) SelectFlight(c echo.Context) error {
	var req selectFlightRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "failed to parse flight selection: "+err.Error())
	}

	s, err := h.engine.SelectFlight(c.Request().Context(), c.Param("id"), req.FlightID)
	if err != nil {
		if s != nil {
			return respondSession(c, http.StatusOK, s)
		}
		return writeError(c, err)
	}
	return respondSession(c, http.StatusOK, s)
}

func (h *SessionHandler) UpdateForm(c echo.Context) error {
	var form workflow.BookingForm
	if err := c.Bind(&form); err != nil {
		return badRequest(c, "failed to parse booking form: "+err.Error())
	}

	s, err := h.engine.UpdateForm(c.Request().Context(), c.Param("id"), form)
	if err != nil {
		return writeError(c, err)
	}
	return respondSession(c, http.StatusOK, s)
}

func (h *SessionHandler) Submit(c echo.Context) error {
	s, err := h.engine.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		if s != nil {
			return respondSession(c, http.StatusOK, s)
		}
		return writeError(c, err)
	}
	return respondSession(c, http.StatusCreated, s)
}

func (h *SessionHandler) LoadBookingForEdit(c echo.Context) error {
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return badRequest(c, "booking id must be numeric")
	}

	s, err := h.engine.LoadBookingForEdit(c.Request().Context(), c.Param("id"), bookingID)
	if err != nil {
		if s != nil {
			return respondSession(c, http.StatusOK, s)
		}
		return writeError(c, err)
	}
	return respondSession(c, http.StatusOK, s)
}

func (h *SessionHandler) SubmitEdit(c echo.Context) error {
	s, err := h.engine.SubmitEdit(c.Request().Context(), c.Param("id"))
	if err != nil {
		if s != nil {
			return respondSession(c, http.StatusOK, s)
		}
		return writeError(c, err)
	}
	return respondSession(c, http.StatusOK, s)
}

func (h *SessionHandler) Delete(c echo.Context) error {
	if err := h.engine.EndSession(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
