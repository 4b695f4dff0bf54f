package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-seat-booking/internal/domain/seat"
)

func TestSeatRepository_CreateAndGet(t *testing.T) {
	repo := NewSeatRepository()
	ctx := context.Background()

	s := seat.NewSeat("event-1", "A1")
	require.NoError(t, repo.Create(ctx, s))
	assert.NotEmpty(t, s.ID)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.SeatNumber)
	assert.False(t, got.Booked)
	assert.Equal(t, 0, got.Version)
}

func TestSeatRepository_GetByID_NotFound(t *testing.T) {
	repo := NewSeatRepository()

	_, err := repo.GetByID(context.Background(), "unknown")

	assert.ErrorIs(t, err, seat.ErrSeatNotFound)
}

func TestSeatRepository_DuplicateSeatNumber(t *testing.T) {
	repo := NewSeatRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, seat.NewSeat("event-1", "A1")))

	err := repo.Create(ctx, seat.NewSeat("event-1", "A1"))
	assert.ErrorIs(t, err, seat.ErrDuplicateSeatNumber)

	// 別イベントの同じ座席番号は許される
	require.NoError(t, repo.Create(ctx, seat.NewSeat("event-2", "A1")))
}

func TestSeatRepository_GetByEventID_Order(t *testing.T) {
	repo := NewSeatRepository()
	ctx := context.Background()

	for _, n := range []string{"B1", "A10", "A2", "A1"} {
		require.NoError(t, repo.Create(ctx, seat.NewSeat("event-1", n)))
	}

	seats, err := repo.GetByEventID(ctx, "event-1")
	require.NoError(t, err)

	numbers := make([]string, len(seats))
	for i, s := range seats {
		numbers[i] = s.SeatNumber
	}
	assert.Equal(t, []string{"A1", "A2", "A10", "B1"}, numbers)
}

func TestSeatRepository_TryClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("バージョンが一致すれば確保できる", func(t *testing.T) {
		repo := NewSeatRepository()
		s := seat.NewSeat("event-1", "A1")
		require.NoError(t, repo.Create(ctx, s))

		now := time.Now()
		ok, err := repo.TryClaim(ctx, nil, s.ID, 0, "Alice", now)

		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.True(t, got.Booked)
		assert.Equal(t, "Alice", *got.BookedBy)
		assert.Equal(t, 1, got.Version)
	})

	t.Run("予約済みの座席は確保できず状態も変化しない", func(t *testing.T) {
		repo := NewSeatRepository()
		s := seat.NewSeat("event-1", "A1")
		require.NoError(t, repo.Create(ctx, s))

		ok, err := repo.TryClaim(ctx, nil, s.ID, 0, "Alice", time.Now())
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.TryClaim(ctx, nil, s.ID, 1, "Bob", time.Now())
		require.NoError(t, err)
		assert.False(t, ok)

		got, _ := repo.GetByID(ctx, s.ID)
		assert.Equal(t, "Alice", *got.BookedBy)
		assert.Equal(t, 1, got.Version)
	})

	t.Run("バージョンが古いと確保できない", func(t *testing.T) {
		repo := NewSeatRepository()
		s := seat.NewSeat("event-1", "A1")
		require.NoError(t, repo.Create(ctx, s))

		ok, err := repo.TryClaim(ctx, nil, s.ID, 99, "Alice", time.Now())

		require.NoError(t, err)
		assert.False(t, ok)

		got, _ := repo.GetByID(ctx, s.ID)
		assert.False(t, got.Booked)
		assert.Equal(t, 0, got.Version)
	})

	t.Run("存在しない座席はエラー", func(t *testing.T) {
		repo := NewSeatRepository()

		_, err := repo.TryClaim(ctx, nil, "unknown", 0, "Alice", time.Now())

		assert.ErrorIs(t, err, seat.ErrSeatNotFound)
	})
}

// 同一の (booked=false, version=0) を前提とする並行TryClaimのうち
// ちょうど1つだけが成功することを確認する
func TestSeatRepository_TryClaim_Concurrent(t *testing.T) {
	repo := NewSeatRepository()
	ctx := context.Background()

	s := seat.NewSeat("event-1", "A1")
	require.NoError(t, repo.Create(ctx, s))

	const numClaims = 100
	var wonCount int32
	var wg sync.WaitGroup

	for i := 0; i < numClaims; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.TryClaim(ctx, nil, s.ID, 0, "customer", time.Now())
			if err == nil && ok {
				atomic.AddInt32(&wonCount, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wonCount)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.Booked)
	assert.Equal(t, 1, got.Version)
}

func TestSeatRepository_CountAvailableByEventID(t *testing.T) {
	repo := NewSeatRepository()
	ctx := context.Background()

	s1 := seat.NewSeat("event-1", "A1")
	s2 := seat.NewSeat("event-1", "A2")
	require.NoError(t, repo.CreateBulk(ctx, []*seat.Seat{s1, s2}))

	count, err := repo.CountAvailableByEventID(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	ok, err := repo.TryClaim(ctx, nil, s1.ID, 0, "Alice", time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	count, err = repo.CountAvailableByEventID(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
