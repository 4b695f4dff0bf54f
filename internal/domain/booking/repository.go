package booking

import (
	"context"

	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

// Repository は予約記録リポジトリのインターフェース
type Repository interface {
	// Create は予約記録を作成する（座席確保と同一トランザクション内で呼ぶ）
	Create(ctx context.Context, tx transaction.Tx, booking *Booking) error

	// GetByID はIDから予約記録を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// GetBySeatID は座席IDから予約記録を取得する（座席ごとに高々1件）
	GetBySeatID(ctx context.Context, seatID string) (*Booking, error)

	// GetByEventID はイベントの予約記録一覧を取得する
	GetByEventID(ctx context.Context, eventID string) ([]*Booking, error)
}
