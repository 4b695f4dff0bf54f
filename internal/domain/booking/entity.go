package booking

import (
	"strings"
	"time"
)

// Booking は予約成立の記録を表す
// 座席の確保（TryClaim）と同一トランザクションで作成される
type Booking struct {
	ID           string
	EventID      string
	SeatID       string
	SeatNumber   string
	CustomerName string
	BookedAt     time.Time
	CreatedAt    time.Time
}

// NewBooking は新しい予約記録を作成する
func NewBooking(eventID, seatID, seatNumber, customerName string) *Booking {
	now := time.Now()
	return &Booking{
		EventID:      eventID,
		SeatID:       seatID,
		SeatNumber:   seatNumber,
		CustomerName: customerName,
		BookedAt:     now,
		CreatedAt:    now,
	}
}

// ValidateCustomerName は顧客名の検証を行う
// 空または空白のみの顧客名では在庫へのアクセスを一切行わない
func ValidateCustomerName(customerName string) error {
	if strings.TrimSpace(customerName) == "" {
		return ErrCustomerNameRequired
	}
	return nil
}

// Validate は予約記録の検証を行う
func (b *Booking) Validate() error {
	if b.EventID == "" {
		return ErrEventIDRequired
	}
	if b.SeatID == "" {
		return ErrSeatIDRequired
	}
	return ValidateCustomerName(b.CustomerName)
}
