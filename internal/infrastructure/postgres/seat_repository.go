package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-seat-booking/internal/domain/seat"
	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

type seatRow struct {
	ID         string     `db:"id"`
	EventID    string     `db:"event_id"`
	SeatNumber string     `db:"seat_number"`
	Booked     bool       `db:"booked"`
	BookedBy   *string    `db:"booked_by"`
	BookedAt   *time.Time `db:"booked_at"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	Version    int        `db:"version"`
}

func (r *seatRow) toEntity() *seat.Seat {
	return &seat.Seat{
		ID: r.ID, EventID: r.EventID, SeatNumber: r.SeatNumber,
		Booked: r.Booked, BookedBy: r.BookedBy, BookedAt: r.BookedAt,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt, Version: r.Version,
	}
}

// 行アルファベット昇順 → 番号の数値昇順（A1, A2, …, A10, B1）
// seat_number をそのまま文字列比較すると A10 が A2 より前に来てしまう
const seatOrderClause = `ORDER BY substring(seat_number from '^[A-Z]+'), (substring(seat_number from '[0-9]+$'))::int`

type SeatRepository struct{ db *sqlx.DB }

func NewSeatRepository(db *sqlx.DB) *SeatRepository { return &SeatRepository{db: db} }

func (r *SeatRepository) Create(ctx context.Context, s *seat.Seat) error {
	query := `INSERT INTO seats (event_id, seat_number, booked, created_at, updated_at, version) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, s.EventID, s.SeatNumber, s.Booked, s.CreatedAt, s.UpdatedAt, s.Version).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return seat.ErrDuplicateSeatNumber
		}
		return fmt.Errorf("座席作成に失敗: %w", err)
	}
	return nil
}

func (r *SeatRepository) CreateBulk(ctx context.Context, seats []*seat.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	// バッチサイズごとに分割してマルチバリューINSERTを実行
	const batchSize = 1000
	for i := 0; i < len(seats); i += batchSize {
		end := i + batchSize
		if end > len(seats) {
			end = len(seats)
		}
		if err := r.createBulkBatch(ctx, seats[i:end]); err != nil {
			return err
		}
	}
	return nil
}

// createBulkBatch はバッチ単位でマルチバリューINSERTを実行
func (r *SeatRepository) createBulkBatch(ctx context.Context, seats []*seat.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `INSERT INTO seats (event_id, seat_number, booked, created_at, updated_at, version) VALUES `
	args := make([]interface{}, 0, len(seats)*6)
	placeholders := make([]string, 0, len(seats))

	for i, s := range seats {
		base := i * 6
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, s.EventID, s.SeatNumber, s.Booked, s.CreatedAt, s.UpdatedAt, s.Version)
	}

	query += strings.Join(placeholders, ", ")
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return seat.ErrDuplicateSeatNumber
		}
		return fmt.Errorf("座席一括作成に失敗: %w", err)
	}
	return nil
}

func (r *SeatRepository) GetByID(ctx context.Context, id string) (*seat.Seat, error) {
	query := `SELECT id, event_id, seat_number, booked, booked_by, booked_at, created_at, updated_at, version FROM seats WHERE id = $1`
	var row seatRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, seat.ErrSeatNotFound
		}
		return nil, fmt.Errorf("座席取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *SeatRepository) GetByEventID(ctx context.Context, eventID string) ([]*seat.Seat, error) {
	query := `SELECT id, event_id, seat_number, booked, booked_by, booked_at, created_at, updated_at, version FROM seats WHERE event_id = $1 ` + seatOrderClause
	var rows []seatRow
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("座席一覧取得に失敗: %w", err)
	}
	seats := make([]*seat.Seat, len(rows))
	for i, row := range rows {
		seats[i] = row.toEntity()
	}
	return seats, nil
}

// TryClaim は条件付きUPDATE1文で座席の確保を試みる
// WHERE句で booked = FALSE かつ version の一致を再検証するため、
// 読み取りから書き込みまでの間に他のリクエストが座席を確保していれば
// 更新行数が0になり false が返る（行の内容は一切変化しない）
func (r *SeatRepository) TryClaim(ctx context.Context, tx transaction.Tx, seatID string, expectedVersion int, bookedBy string, bookedAt time.Time) (bool, error) {
	query := `UPDATE seats
		SET booked = TRUE, booked_by = $1, booked_at = $2, updated_at = $2, version = version + 1
		WHERE id = $3 AND booked = FALSE AND version = $4`

	var result sql.Result
	var err error
	if sqlxTx := UnwrapTx(tx); sqlxTx != nil {
		result, err = sqlxTx.ExecContext(ctx, query, bookedBy, bookedAt, seatID, expectedVersion)
	} else {
		result, err = r.db.ExecContext(ctx, query, bookedBy, bookedAt, seatID, expectedVersion)
	}
	if err != nil {
		return false, fmt.Errorf("座席確保に失敗: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("座席確保の結果取得に失敗: %w", err)
	}
	return rows == 1, nil
}

func (r *SeatRepository) CountAvailableByEventID(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM seats WHERE event_id = $1 AND booked = FALSE`, eventID)
	if err != nil {
		return 0, fmt.Errorf("空席数取得に失敗: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

var _ seat.Repository = (*SeatRepository)(nil)
