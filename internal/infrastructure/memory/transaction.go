package memory

import (
	"context"

	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

// noopTx は何もしないトランザクション
// プロセス内在庫では TryClaim 自体が原子的なためトランザクションは不要
type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

// TxManager は transaction.Manager のインメモリ実装
type TxManager struct{}

// NewTxManager は新しい TxManager を作成する
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Begin は何もしないトランザクションを返す
func (m *TxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	return noopTx{}, nil
}

var _ transaction.Manager = (*TxManager)(nil)
