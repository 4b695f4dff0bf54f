package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-seat-booking/internal/application"
	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
)

type EventHandler struct {
	eventService EventServiceInterface
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type CreateEventRequest struct {
	Name  string `json:"name" validate:"required" example:"サンプルコンサート"`
	Venue string `json:"venue" validate:"required" example:"メインホール"`
	Date  string `json:"date" validate:"required" example:"2026-12-31T18:00:00+09:00"`
}

type EventResponse struct {
	ID    string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name  string `json:"name" example:"サンプルコンサート"`
	Venue string `json:"venue" example:"メインホール"`
	Date  string `json:"date" example:"2026-12-31T18:00:00+09:00"`
}

// EventWithSeatsResponse はイベントと座席の予約状況をまとめたレスポンス
type EventWithSeatsResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Venue string         `json:"venue"`
	Date  string         `json:"date"`
	Seats []SeatResponse `json:"seats"`
}

func toEventResponse(e *event.Event) *EventResponse {
	return &EventResponse{
		ID:    e.ID,
		Name:  e.Name,
		Venue: e.Venue,
		Date:  e.Date.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary イベントを作成
// @Description 新しいイベントを作成します
// @Tags events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "イベント情報"
// @Success 201 {object} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "開催日時の形式が不正です")
	}

	e, err := h.eventService.CreateEvent(c.Request().Context(), application.CreateEventInput{
		Name:  req.Name,
		Venue: req.Venue,
		Date:  date,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toEventResponse(e))
}

// GetByID godoc
// @Summary イベントを取得
// @Description 指定IDのイベントを取得します
// @Tags events
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	e, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// List godoc
// @Summary イベント一覧を座席付きで取得
// @Description 各イベントを座席の予約状況付きで一覧します
// @Tags events
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} EventWithSeatsResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	results, err := h.eventService.ListEventsWithSeats(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}

	responses := make([]*EventWithSeatsResponse, len(results))
	for i, r := range results {
		seats := make([]SeatResponse, len(r.Seats))
		for j, s := range r.Seats {
			seats[j] = toSeatResponse(s)
		}
		responses[i] = &EventWithSeatsResponse{
			ID:    r.Event.ID,
			Name:  r.Event.Name,
			Venue: r.Event.Venue,
			Date:  r.Event.Date.Format(time.RFC3339),
			Seats: seats,
		}
	}
	return c.JSON(http.StatusOK, responses)
}
