package seat

import (
	"context"
	"time"

	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

// Repository は座席在庫リポジトリのインターフェース
type Repository interface {
	// Create は新しい座席を作成する
	Create(ctx context.Context, seat *Seat) error

	// CreateBulk は複数の座席を一括作成する
	CreateBulk(ctx context.Context, seats []*Seat) error

	// GetByID はIDから座席を取得する
	GetByID(ctx context.Context, id string) (*Seat, error)

	// GetByEventID はイベントIDから座席一覧を取得する
	// 行アルファベット昇順、番号の数値昇順で返す
	GetByEventID(ctx context.Context, eventID string) ([]*Seat, error)

	// TryClaim は条件付き書き込みで座席の確保を試みる
	// 座席が未予約かつバージョンが expectedVersion と一致する場合のみ
	// booked / booked_by / booked_at を設定し version を +1 して true を返す
	// 条件を満たさない場合は何も変更せず false を返す
	// この1文だけが在庫に対する唯一の更新経路であり、アトミックに実行される
	TryClaim(ctx context.Context, tx transaction.Tx, seatID string, expectedVersion int, bookedBy string, bookedAt time.Time) (bool, error)

	// CountAvailableByEventID はイベントの空席数を取得する
	CountAvailableByEventID(ctx context.Context, eventID string) (int, error)
}
