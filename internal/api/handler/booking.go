package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-seat-booking/internal/application"
	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
)

type BookingHandler struct {
	bookingService BookingServiceInterface
}

func NewBookingHandler(bookingService BookingServiceInterface) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookSeatRequest は予約リクエスト
// 顧客名の検証はドメイン層が行う（空白のみの名前も弾くため）
type BookSeatRequest struct {
	CustomerName string `json:"customer_name" example:"山田太郎"`
}

// BookingResponse は予約確定のレスポンス
type BookingResponse struct {
	BookingID    string `json:"booking_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SeatID       string `json:"seat_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	SeatNumber   string `json:"seat_number" example:"A1"`
	CustomerName string `json:"customer_name" example:"山田太郎"`
	BookedAt     string `json:"booked_at" example:"2026-01-15T10:00:00+09:00"`
}

func toBookingResponse(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		BookingID:    b.ID,
		SeatID:       b.SeatID,
		SeatNumber:   b.SeatNumber,
		CustomerName: b.CustomerName,
		BookedAt:     b.BookedAt.Format(time.RFC3339),
	}
}

// Book godoc
// @Summary 座席を予約
// @Description 指定座席の予約を試みます。競合で敗れた場合・既に予約済みの場合は 409 を返します
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "座席ID"
// @Param request body BookSeatRequest true "予約情報"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} api.ErrorResponse "顧客名が空"
// @Failure 404 {object} api.ErrorResponse "座席が存在しない"
// @Failure 409 {object} api.ErrorResponse "予約済みまたは競合敗北"
// @Failure 503 {object} api.ErrorResponse "在庫ストア障害"
// @Router /seats/{id}/book [post]
func (h *BookingHandler) Book(c echo.Context) error {
	var req BookSeatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}

	b, err := h.bookingService.BookSeat(c.Request().Context(), application.BookSeatInput{
		SeatID:       c.Param("id"),
		CustomerName: req.CustomerName,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// GetByID godoc
// @Summary 予約を取得
// @Description 指定IDの予約を取得します
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	b, err := h.bookingService.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// ListByEvent godoc
// @Summary イベントの予約一覧を取得
// @Description 指定イベントの予約を取得します
// @Tags bookings
// @Produce json
// @Param event_id path string true "イベントID"
// @Success 200 {array} BookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{event_id}/bookings [get]
func (h *BookingHandler) ListByEvent(c echo.Context) error {
	bookings, err := h.bookingService.GetBookingsByEvent(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return toHTTPError(err)
	}

	responses := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, responses)
}
