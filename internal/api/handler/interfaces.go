package handler

import (
	"context"

	"github.com/sanosuguru/go-seat-booking/internal/application"
	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
	"github.com/sanosuguru/go-seat-booking/internal/domain/seat"
)

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, input application.CreateEventInput) (*event.Event, error)
	GetEvent(ctx context.Context, id string) (*event.Event, error)
	ListEvents(ctx context.Context, limit, offset int) ([]*event.Event, error)
	ListEventsWithSeats(ctx context.Context, limit, offset int) ([]*application.EventWithSeats, error)
}

// SeatServiceInterface は座席サービスのインターフェース
type SeatServiceInterface interface {
	GetSeat(ctx context.Context, id string) (*seat.Seat, error)
	GetSeatsByEvent(ctx context.Context, eventID string) ([]*seat.Seat, error)
	CreateSeatGrid(ctx context.Context, input application.CreateSeatGridInput) ([]*seat.Seat, error)
	CountAvailableSeats(ctx context.Context, eventID string) (int, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	BookSeat(ctx context.Context, input application.BookSeatInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
	GetBookingsByEvent(ctx context.Context, eventID string) ([]*booking.Booking, error)
}
