package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-seat-booking/internal/application"
	"github.com/sanosuguru/go-seat-booking/internal/domain/seat"
)

type SeatHandler struct {
	seatService SeatServiceInterface
}

func NewSeatHandler(seatService SeatServiceInterface) *SeatHandler {
	return &SeatHandler{seatService: seatService}
}

// SeatResponse は座席のレスポンス
// 予約者名とバージョンは内部情報のため公開しない
type SeatResponse struct {
	ID         string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SeatNumber string `json:"seat_number" example:"A1"`
	Booked     bool   `json:"booked" example:"false"`
}

type CreateSeatGridRequest struct {
	Rows        int `json:"rows" validate:"required,gt=0" example:"5"`
	SeatsPerRow int `json:"seats_per_row" validate:"required,gt=0" example:"6"`
}

type AvailableCountResponse struct {
	Count int `json:"count" example:"30"`
}

func toSeatResponse(s *seat.Seat) SeatResponse {
	return SeatResponse{
		ID:         s.ID,
		SeatNumber: s.SeatNumber,
		Booked:     s.Booked,
	}
}

// GetByEvent godoc
// @Summary イベントの座席一覧を取得
// @Description 指定イベントの座席を行・番号順で一覧します
// @Tags seats
// @Produce json
// @Param event_id path string true "イベントID"
// @Success 200 {array} SeatResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{event_id}/seats [get]
func (h *SeatHandler) GetByEvent(c echo.Context) error {
	seats, err := h.seatService.GetSeatsByEvent(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return toHTTPError(err)
	}

	responses := make([]SeatResponse, len(seats))
	for i, s := range seats {
		responses[i] = toSeatResponse(s)
	}
	return c.JSON(http.StatusOK, responses)
}

// CountAvailable godoc
// @Summary 空席数を取得
// @Description 指定イベントの予約されていない座席数を返します
// @Tags seats
// @Produce json
// @Param event_id path string true "イベントID"
// @Success 200 {object} AvailableCountResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{event_id}/seats/available/count [get]
func (h *SeatHandler) CountAvailable(c echo.Context) error {
	count, err := h.seatService.CountAvailableSeats(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, AvailableCountResponse{Count: count})
}

// CreateGrid godoc
// @Summary 座席グリッドを一括作成
// @Description 指定イベントに行×列の座席を一括作成します（A1..A6, B1.. の形式）
// @Tags seats
// @Accept json
// @Produce json
// @Param event_id path string true "イベントID"
// @Param request body CreateSeatGridRequest true "グリッドサイズ"
// @Success 201 {array} SeatResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "座席番号が重複"
// @Router /events/{event_id}/seats/grid [post]
func (h *SeatHandler) CreateGrid(c echo.Context) error {
	var req CreateSeatGridRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	seats, err := h.seatService.CreateSeatGrid(c.Request().Context(), application.CreateSeatGridInput{
		EventID:     c.Param("event_id"),
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
	})
	if err != nil {
		return toHTTPError(err)
	}

	responses := make([]SeatResponse, len(seats))
	for i, s := range seats {
		responses[i] = toSeatResponse(s)
	}
	return c.JSON(http.StatusCreated, responses)
}
