package seat

import "time"

// Seat は座席エンティティを表す
// Version は楽観的ロック用のカウンターで、予約成功のたびに1だけ増加する
type Seat struct {
	ID         string
	EventID    string
	SeatNumber string // 行アルファベット + 番号（例: "A1", "B12"）
	Booked     bool
	BookedBy   *string
	BookedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int
}

// NewSeat は新しい座席を作成する
func NewSeat(eventID, seatNumber string) *Seat {
	now := time.Now()
	return &Seat{
		EventID:    eventID,
		SeatNumber: seatNumber,
		Booked:     false,
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    0,
	}
}

// IsAvailable は座席が予約可能かを返す
func (s *Seat) IsAvailable() bool {
	return !s.Booked
}

// Claim は座席を予約済み状態に遷移させる
// Available → Booked の遷移は一度だけ許される（Booked は終端状態）
func (s *Seat) Claim(customerName string, at time.Time) error {
	if s.Booked {
		return ErrSeatAlreadyBooked
	}
	s.Booked = true
	s.BookedBy = &customerName
	s.BookedAt = &at
	s.UpdatedAt = at
	s.Version++
	return nil
}

// Validate は座席の検証を行う
func (s *Seat) Validate() error {
	if s.EventID == "" {
		return ErrEventIDRequired
	}
	if _, _, err := ParseSeatNumber(s.SeatNumber); err != nil {
		return err
	}
	return nil
}
