package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound      = errors.New("予約が見つかりません")
	ErrCustomerNameRequired = errors.New("顧客名は必須です")
	ErrEventIDRequired      = errors.New("イベントIDは必須です")
	ErrSeatIDRequired       = errors.New("座席IDは必須です")
)
