package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
	"github.com/sanosuguru/go-seat-booking/internal/domain/seat"
)

// toHTTPError はドメインエラーをHTTPステータスに対応づける
// NotFound(404) と Conflict(409) は別カテゴリであり、決して同一視しない。
// 分類できないエラーは在庫ストア障害とみなし 503 を返す
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, seat.ErrSeatNotFound),
		errors.Is(err, event.ErrEventNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, seat.ErrSeatAlreadyBooked),
		errors.Is(err, seat.ErrSeatNoLongerAvailable),
		errors.Is(err, seat.ErrDuplicateSeatNumber):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrCustomerNameRequired),
		errors.Is(err, seat.ErrInvalidSeatNumber),
		errors.Is(err, seat.ErrInvalidGridSize),
		errors.Is(err, seat.ErrEventIDRequired),
		errors.Is(err, event.ErrEventNameRequired),
		errors.Is(err, event.ErrEventVenueRequired),
		errors.Is(err, event.ErrEventDateRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusServiceUnavailable, "在庫ストアに接続できません")
	}
}
