package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

// BookingRepository は予約記録のインメモリ実装
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*booking.Booking
}

// NewBookingRepository はBookingRepositoryを作成する
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[string]*booking.Booking)}
}

func (r *BookingRepository) Create(ctx context.Context, _ transaction.Tx, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *BookingRepository) GetBySeatID(ctx context.Context, seatID string) (*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.SeatID == seatID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, booking.ErrBookingNotFound
}

func (r *BookingRepository) GetByEventID(ctx context.Context, eventID string) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var bookings []*booking.Booking
	for _, b := range r.bookings {
		if b.EventID == eventID {
			copied := *b
			bookings = append(bookings, &copied)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].BookedAt.Before(bookings[j].BookedAt) })
	return bookings, nil
}

var _ booking.Repository = (*BookingRepository)(nil)
