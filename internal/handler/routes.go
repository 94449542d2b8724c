package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/widyasatria/flightbook/internal/client"
	"github.com/widyasatria/flightbook/internal/workflow"
)

// RegisterRoutes mounts the workflow and pass-through endpoints under /api/v1.
func RegisterRoutes(e *echo.Echo, clients *client.Clients, engine *workflow.Engine) {
	sessions := NewSessionHandler(engine)
	flights := NewFlightHandler(clients.Flights)
	bookings := NewBookingHandler(clients.Bookings, engine)
	airports := NewAirportHandler(clients.Airports)

	api := e.Group("/api/v1")

	s := api.Group("/sessions")
	s.POST("", sessions.Start)
	s.GET("/:id", sessions.Get)
	s.DELETE("/:id", sessions.Delete)
	s.POST("/:id/search", sessions.Search)
	s.POST("/:id/select", sessions.SelectFlight)
	s.PUT("/:id/form", sessions.UpdateForm)
	s.POST("/:id/submit", sessions.Submit)
	s.POST("/:id/edit/:bookingId", sessions.LoadBookingForEdit)
	s.POST("/:id/update", sessions.SubmitEdit)

	f := api.Group("/flights")
	f.GET("", flights.List)
	f.GET("/available", flights.ListAvailable)
	f.GET("/search", flights.Search)
	f.GET("/number/:flightNumber", flights.GetByNumber)
	f.GET("/departure/:code", flights.ListByDeparture)
	f.GET("/arrival/:code", flights.ListByArrival)
	f.GET("/status/:status", flights.ListByStatus)
	f.GET("/:id", flights.Get)
	f.POST("", flights.Create)
	f.PUT("/:id", flights.Update)
	f.PUT("/:id/status", flights.UpdateStatus)
	f.DELETE("/:id", flights.Delete)

	b := api.Group("/bookings")
	b.GET("", bookings.List)
	b.GET("/upcoming", bookings.ListUpcoming)
	b.GET("/search", bookings.Search)
	b.GET("/reference/:reference", bookings.GetByReference)
	b.GET("/passenger/:name", bookings.ListByPassengerName)
	b.GET("/email/:email", bookings.ListByEmail)
	b.GET("/flight/:flightId", bookings.ListByFlight)
	b.GET("/status/:status", bookings.ListByStatus)
	b.GET("/:id", bookings.Get)
	b.POST("", bookings.Create)
	b.PUT("/:id", bookings.Update)
	b.PUT("/:id/cancel", bookings.Cancel)
	b.DELETE("/:id", bookings.Delete)

	a := api.Group("/airports")
	a.GET("", airports.List)
	a.GET("/search", airports.Search)
	a.GET("/code/:code", airports.GetByCode)
	a.GET("/city/:city", airports.ListByCity)
	a.GET("/country/:country", airports.ListByCountry)
	a.GET("/:id", airports.Get)
	a.POST("", airports.Create)
	a.PUT("/:id", airports.Update)
	a.DELETE("/:id", airports.Delete)

	e.GET("/health", HealthHandler)
}
