package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

type bookingRow struct {
	ID           string    `db:"id"`
	EventID      string    `db:"event_id"`
	SeatID       string    `db:"seat_id"`
	SeatNumber   string    `db:"seat_number"`
	CustomerName string    `db:"customer_name"`
	BookedAt     time.Time `db:"booked_at"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *bookingRow) toEntity() *booking.Booking {
	return &booking.Booking{
		ID: r.ID, EventID: r.EventID, SeatID: r.SeatID, SeatNumber: r.SeatNumber,
		CustomerName: r.CustomerName, BookedAt: r.BookedAt, CreatedAt: r.CreatedAt,
	}
}

// BookingRepository は予約記録リポジトリのPostgreSQL実装
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository はBookingRepositoryを作成する
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	query := `INSERT INTO bookings (event_id, seat_id, seat_number, customer_name, booked_at, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var err error
	if sqlxTx := UnwrapTx(tx); sqlxTx != nil {
		err = sqlxTx.QueryRowContext(ctx, query, b.EventID, b.SeatID, b.SeatNumber, b.CustomerName, b.BookedAt, b.CreatedAt).Scan(&b.ID)
	} else {
		err = r.db.QueryRowContext(ctx, query, b.EventID, b.SeatID, b.SeatNumber, b.CustomerName, b.BookedAt, b.CreatedAt).Scan(&b.ID)
	}
	if err != nil {
		return fmt.Errorf("予約記録作成に失敗: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	query := `SELECT id, event_id, seat_id, seat_number, customer_name, booked_at, created_at FROM bookings WHERE id = $1`
	var row bookingRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約記録取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *BookingRepository) GetBySeatID(ctx context.Context, seatID string) (*booking.Booking, error) {
	query := `SELECT id, event_id, seat_id, seat_number, customer_name, booked_at, created_at FROM bookings WHERE seat_id = $1`
	var row bookingRow
	if err := r.db.GetContext(ctx, &row, query, seatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約記録取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *BookingRepository) GetByEventID(ctx context.Context, eventID string) ([]*booking.Booking, error) {
	query := `SELECT id, event_id, seat_id, seat_number, customer_name, booked_at, created_at FROM bookings WHERE event_id = $1 ORDER BY booked_at ASC`
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("予約記録一覧取得に失敗: %w", err)
	}
	bookings := make([]*booking.Booking, len(rows))
	for i, row := range rows {
		bookings[i] = row.toEntity()
	}
	return bookings, nil
}

var _ booking.Repository = (*BookingRepository)(nil)
