package event

import "errors"

// Event ドメインのエラー定義
var (
	ErrEventNotFound      = errors.New("イベントが見つかりません")
	ErrEventNameRequired  = errors.New("イベント名は必須です")
	ErrEventVenueRequired = errors.New("会場は必須です")
	ErrEventDateRequired  = errors.New("開催日時は必須です")
)
