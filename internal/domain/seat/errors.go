package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrSeatNotFound          = errors.New("座席が見つかりません")
	ErrSeatAlreadyBooked     = errors.New("座席は既に予約されています")
	ErrSeatNoLongerAvailable = errors.New("座席は他のリクエストにより予約されました")
	ErrEventIDRequired       = errors.New("イベントIDは必須です")
	ErrInvalidSeatNumber     = errors.New("座席番号は行アルファベット + 正の整数である必要があります")
	ErrDuplicateSeatNumber   = errors.New("同一イベント内で座席番号が重複しています")
	ErrInvalidGridSize       = errors.New("座席グリッドのサイズが不正です")
)
