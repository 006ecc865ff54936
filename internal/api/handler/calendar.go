package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Abdullah-1719/ChaletF/internal/calendar"
	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
)

// CalendarHandler は月間グリッドを返すハンドラー
type CalendarHandler struct {
	service ReservationServiceInterface

	// now はサーバー側の現在日時（テストで差し替える）
	now func() time.Time
}

func NewCalendarHandler(s ReservationServiceInterface) *CalendarHandler {
	return &CalendarHandler{service: s, now: time.Now}
}

// CalendarRequest は年月のクエリパラメータ
// 省略時は現在の月
type CalendarRequest struct {
	Year  int `query:"year" validate:"omitempty,min=1,max=9999"`
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
}

// Get は指定した年月のカレンダーグリッドを返す
func (h *CalendarHandler) Get(c echo.Context) error {
	var req CalendarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := h.now()
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if req.Month == 0 {
		req.Month = int(now.Month())
	}

	listing, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	grid := calendar.Render(req.Year, time.Month(req.Month), listing, reservation.DateOf(now))
	return c.JSON(http.StatusOK, grid)
}
