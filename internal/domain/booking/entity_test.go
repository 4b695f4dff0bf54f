package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	b := NewBooking("event-123", "seat-1", "A1", "Alice")

	assert.Equal(t, "event-123", b.EventID)
	assert.Equal(t, "seat-1", b.SeatID)
	assert.Equal(t, "A1", b.SeatNumber)
	assert.Equal(t, "Alice", b.CustomerName)
	assert.False(t, b.BookedAt.IsZero())
}

func TestValidateCustomerName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{"有効な顧客名", "Alice", nil},
		{"空文字列", "", ErrCustomerNameRequired},
		{"空白のみ", "   ", ErrCustomerNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCustomerName(tt.input)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestBooking_Validate(t *testing.T) {
	tests := []struct {
		name        string
		booking     *Booking
		expectedErr error
	}{
		{"有効な予約", NewBooking("event-123", "seat-1", "A1", "Alice"), nil},
		{"イベントIDが空", NewBooking("", "seat-1", "A1", "Alice"), ErrEventIDRequired},
		{"座席IDが空", NewBooking("event-123", "", "A1", "Alice"), ErrSeatIDRequired},
		{"顧客名が空", NewBooking("event-123", "seat-1", "A1", ""), ErrCustomerNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.booking.Validate()
			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
