package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
	"github.com/sanosuguru/go-seat-booking/internal/domain/seat"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/logger"
)

type EventService struct {
	eventRepo event.Repository
	seatRepo  seat.Repository
}

func NewEventService(er event.Repository, sr seat.Repository) *EventService {
	return &EventService{eventRepo: er, seatRepo: sr}
}

type CreateEventInput struct {
	Name  string
	Venue string
	Date  time.Time
}

func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*event.Event, error) {
	e := event.NewEvent(input.Name, input.Venue, input.Date)
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	return e, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, limit, offset int) ([]*event.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.eventRepo.List(ctx, limit, offset)
}

// EventWithSeats はカタログ閲覧用のイベントと座席一覧の組
type EventWithSeats struct {
	Event *event.Event
	Seats []*seat.Seat
}

// ListEventsWithSeats はイベント一覧を座席の予約状況付きで取得する
func (s *EventService) ListEventsWithSeats(ctx context.Context, limit, offset int) ([]*EventWithSeats, error) {
	events, err := s.ListEvents(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*EventWithSeats, 0, len(events))
	for _, ev := range events {
		seats, err := s.seatRepo.GetByEventID(ctx, ev.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &EventWithSeats{Event: ev, Seats: seats})
	}
	return result, nil
}

// SeedSampleData はカタログが空の場合に見本イベントと5×6の座席グリッドを投入する
// 投入した場合は true を返す
func (s *EventService) SeedSampleData(ctx context.Context) (bool, error) {
	count, err := s.eventRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("イベント数取得に失敗: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	e := event.NewEvent("サンプルコンサート", "メインホール", time.Now().AddDate(0, 1, 0))
	if err := s.eventRepo.Create(ctx, e); err != nil {
		return false, fmt.Errorf("見本イベント作成に失敗: %w", err)
	}

	seats := make([]*seat.Seat, 0, 30)
	for row := 0; row < 5; row++ {
		for num := 1; num <= 6; num++ {
			seats = append(seats, seat.NewSeat(e.ID, fmt.Sprintf("%c%d", 'A'+row, num)))
		}
	}
	if err := s.seatRepo.CreateBulk(ctx, seats); err != nil {
		return false, fmt.Errorf("見本座席作成に失敗: %w", err)
	}

	logger.Info("見本データを投入", zap.String("event_id", e.ID), zap.Int("seats", len(seats)))
	return true, nil
}
