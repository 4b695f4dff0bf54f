package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	date := time.Date(2026, 3, 15, 19, 0, 0, 0, time.UTC)

	e := NewEvent("春のコンサート", "東京ドーム", date)

	assert.Equal(t, "春のコンサート", e.Name)
	assert.Equal(t, "東京ドーム", e.Venue)
	assert.Equal(t, date, e.Date)
	assert.Empty(t, e.ID)
}

func TestEvent_Validate(t *testing.T) {
	date := time.Date(2026, 3, 15, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		event       *Event
		expectedErr error
	}{
		{"有効なイベント", &Event{Name: "ライブ", Venue: "武道館", Date: date}, nil},
		{"名前が空", &Event{Name: "", Venue: "武道館", Date: date}, ErrEventNameRequired},
		{"会場が空", &Event{Name: "ライブ", Venue: "", Date: date}, ErrEventVenueRequired},
		{"日時が未設定", &Event{Name: "ライブ", Venue: "武道館"}, ErrEventDateRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
