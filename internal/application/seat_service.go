package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
	"github.com/sanosuguru/go-seat-booking/internal/domain/seat"
	redisinfra "github.com/sanosuguru/go-seat-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/metrics"
)

const (
	availabilityCacheTTL = 30 * time.Second

	// グリッドは行アルファベット1文字のため最大26行
	maxGridRows        = 26
	maxGridSeatsPerRow = 100
)

type SeatService struct {
	seatRepo  seat.Repository
	eventRepo event.Repository
	cache     *redisinfra.AvailabilityCache
}

func NewSeatService(sr seat.Repository, er event.Repository, cache *redisinfra.AvailabilityCache) *SeatService {
	return &SeatService{seatRepo: sr, eventRepo: er, cache: cache}
}

func (s *SeatService) GetSeat(ctx context.Context, id string) (*seat.Seat, error) {
	return s.seatRepo.GetByID(ctx, id)
}

func (s *SeatService) GetSeatsByEvent(ctx context.Context, eventID string) ([]*seat.Seat, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.seatRepo.GetByEventID(ctx, eventID)
}

type CreateSeatGridInput struct {
	EventID     string
	Rows        int
	SeatsPerRow int
}

// CreateSeatGrid はイベントに行×列の座席グリッドを一括作成する
// 行は A から順のアルファベット、座席番号は各行 1 始まり（A1..A6, B1..B6, …）
func (s *SeatService) CreateSeatGrid(ctx context.Context, input CreateSeatGridInput) ([]*seat.Seat, error) {
	if _, err := s.eventRepo.GetByID(ctx, input.EventID); err != nil {
		return nil, err
	}
	if input.Rows < 1 || input.Rows > maxGridRows || input.SeatsPerRow < 1 || input.SeatsPerRow > maxGridSeatsPerRow {
		return nil, seat.ErrInvalidGridSize
	}

	seats := make([]*seat.Seat, 0, input.Rows*input.SeatsPerRow)
	for row := 0; row < input.Rows; row++ {
		for num := 1; num <= input.SeatsPerRow; num++ {
			seatNumber := fmt.Sprintf("%c%d", 'A'+row, num)
			se := seat.NewSeat(input.EventID, seatNumber)
			if err := se.Validate(); err != nil {
				return nil, err
			}
			seats = append(seats, se)
		}
	}
	if err := s.seatRepo.CreateBulk(ctx, seats); err != nil {
		return nil, err
	}

	logger.Info("座席グリッドを作成",
		zap.String("event_id", input.EventID),
		zap.Int("rows", input.Rows),
		zap.Int("seats_per_row", input.SeatsPerRow),
	)
	return seats, nil
}

func (s *SeatService) CountAvailableSeats(ctx context.Context, eventID string) (int, error) {
	// キャッシュから取得を試みる
	if s.cache != nil {
		count, err := s.cache.GetAvailableCount(ctx, eventID)
		if err == nil {
			logger.Debug("キャッシュヒット", zap.String("event_id", eventID), zap.Int("count", count))
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
	}

	// 在庫ストアから取得
	count, err := s.seatRepo.CountAvailableByEventID(ctx, eventID)
	if err != nil {
		return 0, err
	}

	// キャッシュに保存
	if s.cache != nil {
		if cacheErr := s.cache.SetAvailableCount(ctx, eventID, count, availabilityCacheTTL); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}

	return count, nil
}

// RefreshAvailabilityCounts は全イベントの空席数を再計算してキャッシュと
// メトリクスを更新する。ワーカーから定期的に呼ばれる
func (s *SeatService) RefreshAvailabilityCounts(ctx context.Context) (int, error) {
	events, err := s.eventRepo.List(ctx, 1000, 0)
	if err != nil {
		return 0, fmt.Errorf("イベント一覧取得に失敗: %w", err)
	}

	refreshed := 0
	for _, ev := range events {
		count, err := s.seatRepo.CountAvailableByEventID(ctx, ev.ID)
		if err != nil {
			logger.Warn("空席数の再計算に失敗", zap.String("event_id", ev.ID), zap.Error(err))
			continue
		}
		if s.cache != nil {
			if err := s.cache.SetAvailableCount(ctx, ev.ID, count, availabilityCacheTTL); err != nil {
				logger.Warn("キャッシュ保存エラー", zap.Error(err))
				continue
			}
		}
		if m := metrics.Get(); m != nil {
			m.AvailableSeats.WithLabelValues(ev.ID).Set(float64(count))
		}
		refreshed++
	}
	return refreshed, nil
}
