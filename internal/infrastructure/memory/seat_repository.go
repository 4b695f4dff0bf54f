// Package memory は単一プロセス構成向けのプロセス内在庫実装を提供する
// 条件付き書き込みの原子性はミューテックスで保証され、エンジン側のロジックは
// PostgreSQL実装と完全に同一のインターフェースで動作する
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sanosuguru/go-seat-booking/internal/domain/seat"
	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

// SeatRepository は座席在庫のインメモリ実装
type SeatRepository struct {
	mu    sync.RWMutex
	seats map[string]*seat.Seat
}

// NewSeatRepository はSeatRepositoryを作成する
func NewSeatRepository() *SeatRepository {
	return &SeatRepository{seats: make(map[string]*seat.Seat)}
}

func (r *SeatRepository) Create(ctx context.Context, s *seat.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(s)
}

func (r *SeatRepository) CreateBulk(ctx context.Context, seats []*seat.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range seats {
		if err := r.createLocked(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *SeatRepository) createLocked(s *seat.Seat) error {
	for _, existing := range r.seats {
		if existing.EventID == s.EventID && existing.SeatNumber == s.SeatNumber {
			return seat.ErrDuplicateSeatNumber
		}
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	stored := *s
	r.seats[s.ID] = &stored
	return nil
}

func (r *SeatRepository) GetByID(ctx context.Context, id string) (*seat.Seat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.seats[id]
	if !ok {
		return nil, seat.ErrSeatNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *SeatRepository) GetByEventID(ctx context.Context, eventID string) ([]*seat.Seat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var seats []*seat.Seat
	for _, s := range r.seats {
		if s.EventID == eventID {
			copied := *s
			seats = append(seats, &copied)
		}
	}
	seat.SortBySeatNumber(seats)
	return seats, nil
}

// TryClaim は保持ロック下でバージョン検査と書き込みを1ステップで行う
// 検査に失敗した場合は座席レコードを一切変更しない
func (r *SeatRepository) TryClaim(ctx context.Context, _ transaction.Tx, seatID string, expectedVersion int, bookedBy string, bookedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.seats[seatID]
	if !ok {
		return false, seat.ErrSeatNotFound
	}
	if s.Booked || s.Version != expectedVersion {
		return false, nil
	}

	s.Booked = true
	s.BookedBy = &bookedBy
	s.BookedAt = &bookedAt
	s.UpdatedAt = bookedAt
	s.Version++
	return true, nil
}

func (r *SeatRepository) CountAvailableByEventID(ctx context.Context, eventID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, s := range r.seats {
		if s.EventID == eventID && !s.Booked {
			count++
		}
	}
	return count, nil
}

var _ seat.Repository = (*SeatRepository)(nil)
