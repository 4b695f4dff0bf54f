package event

import "time"

// Event はイベントエンティティを表す
// 作成後は変更されない読み取り中心のカタログ情報
type Event struct {
	ID        string
	Name      string
	Venue     string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEvent は新しいイベントを作成する
func NewEvent(name, venue string, date time.Time) *Event {
	now := time.Now()
	return &Event{
		Name:      name,
		Venue:     venue,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate はイベントの検証を行う
func (e *Event) Validate() error {
	if e.Name == "" {
		return ErrEventNameRequired
	}
	if e.Venue == "" {
		return ErrEventVenueRequired
	}
	if e.Date.IsZero() {
		return ErrEventDateRequired
	}
	return nil
}
