package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/domain/seat"
	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/go-seat-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/metrics"
)

// BookingService は座席予約のユースケースを実行する
// 読み取りと条件付き書き込みは独立した2ステップで、ロックは読み取りをまたいで
// 保持しない。正しさは書き込み時点のバージョン再検証のみに依存する
type BookingService struct {
	txManager   transaction.Manager
	bookingRepo booking.Repository
	seatRepo    seat.Repository
	cache       *redisinfra.AvailabilityCache
}

func NewBookingService(tm transaction.Manager, br booking.Repository, sr seat.Repository, cache *redisinfra.AvailabilityCache) *BookingService {
	return &BookingService{txManager: tm, bookingRepo: br, seatRepo: sr, cache: cache}
}

type BookSeatInput struct {
	SeatID       string
	CustomerName string
}

// BookSeat は座席の予約を試みる
// 競合時の結果はちょうど1勝者・残り全敗者で、敗者には ErrSeatNoLongerAvailable を
// 返す。エンジン側でのリトライは行わない（リトライは常に呼び出し側の責務）
func (s *BookingService) BookSeat(ctx context.Context, input BookSeatInput) (*booking.Booking, error) {
	// 1. 顧客名の検証（失敗時は在庫に一切アクセスしない）
	if err := booking.ValidateCustomerName(input.CustomerName); err != nil {
		s.recordBooking("validation_error")
		return nil, err
	}

	// 2. 現在の座席を読み取る
	se, err := s.seatRepo.GetByID(ctx, input.SeatID)
	if err != nil {
		if errors.Is(err, seat.ErrSeatNotFound) {
			s.recordBooking("not_found")
		} else {
			s.recordBooking("error")
		}
		return nil, err
	}

	// 3. 読み取り時点で予約済みなら即座に競合を返す（確保の試行は無駄と分かっている）
	if se.Booked {
		s.recordBooking("conflict")
		return nil, seat.ErrSeatAlreadyBooked
	}

	b := booking.NewBooking(se.EventID, se.ID, se.SeatNumber, input.CustomerName)

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		s.recordBooking("error")
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	// 4. 読み取ったバージョンを前提に条件付き書き込みを試みる
	start := time.Now()
	won, err := s.seatRepo.TryClaim(ctx, tx, se.ID, se.Version, b.CustomerName, b.BookedAt)
	if err != nil {
		s.recordBooking("error")
		return nil, fmt.Errorf("座席確保に失敗: %w", err)
	}
	s.observeClaim(won, time.Since(start))

	if !won {
		// 読み取りと書き込みの間に他のリクエストが座席を変更した
		s.recordBooking("conflict")
		logger.Debug("座席確保の競合に敗北",
			zap.String("seat_id", se.ID),
			zap.Int("expected_version", se.Version),
		)
		return nil, seat.ErrSeatNoLongerAvailable
	}

	if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
		s.recordBooking("error")
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.recordBooking("error")
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.recordBooking("won")
	s.invalidateCache(ctx, se.EventID)
	logger.Info("座席を予約",
		zap.String("seat_id", se.ID),
		zap.String("seat_number", se.SeatNumber),
		zap.String("event_id", se.EventID),
	)
	return b, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *BookingService) GetBookingsByEvent(ctx context.Context, eventID string) ([]*booking.Booking, error) {
	return s.bookingRepo.GetByEventID(ctx, eventID)
}

// invalidateCache は空席数キャッシュを無効化する（ベストエフォート）
func (s *BookingService) invalidateCache(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		logger.Warn("キャッシュ無効化エラー", zap.Error(err))
	}
}

func (s *BookingService) recordBooking(status string) {
	if m := metrics.Get(); m != nil {
		m.BookingsTotal.WithLabelValues(status).Inc()
	}
}

func (s *BookingService) observeClaim(won bool, d time.Duration) {
	m := metrics.Get()
	if m == nil {
		return
	}
	result := "lost"
	if won {
		result = "won"
	}
	m.ClaimDuration.WithLabelValues(result).Observe(d.Seconds())
}
