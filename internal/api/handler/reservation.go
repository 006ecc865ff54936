package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
)

// ReservationHandler は予約CRUDのHTTPハンドラー
type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

// ReservationRequest は作成・更新共通のリクエストボディ
type ReservationRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// ReservationResponse は単一予約のレスポンス
type ReservationResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse は削除成功時の確認メッセージ
type MessageResponse struct {
	Message string `json:"message"`
}

func toReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        r.ID,
		Date:      r.Date.String(),
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// httpStatusFor はドメインエラーをHTTPステータスに対応付ける
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, reservation.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, reservation.ErrDateConflict),
		errors.Is(err, reservation.ErrPastDate),
		errors.Is(err, reservation.ErrNameRequired),
		errors.Is(err, reservation.ErrDateRequired),
		errors.Is(err, reservation.ErrInvalidDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// List は全予約を {date: {name}} のマッピングで返す
func (h *ReservationHandler) List(c echo.Context) error {
	listing, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, listing)
}

// Search は名前の部分一致で検索した結果をマッピングで返す
func (h *ReservationHandler) Search(c echo.Context) error {
	listing, err := h.service.SearchByName(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, listing)
}

// Create は新しい予約を作成する
func (h *ReservationHandler) Create(c echo.Context) error {
	var req ReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.service.CreateReservation(c.Request().Context(), req.Name, req.Date)
	if err != nil {
		return echo.NewHTTPError(httpStatusFor(err), err.Error())
	}
	return c.JSON(http.StatusCreated, toReservationResponse(res))
}

// Update は既存予約の名前・日付を差し替える
// パスの :date が現在のキー、ボディの date が新しい日付
func (h *ReservationHandler) Update(c echo.Context) error {
	var req ReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.service.EditReservation(c.Request().Context(), c.Param("date"), req.Name, req.Date)
	if err != nil {
		return echo.NewHTTPError(httpStatusFor(err), err.Error())
	}
	return c.JSON(http.StatusOK, toReservationResponse(res))
}

// Delete は予約をキャンセルする
func (h *ReservationHandler) Delete(c echo.Context) error {
	if err := h.service.CancelReservation(c.Request().Context(), c.Param("date")); err != nil {
		return echo.NewHTTPError(httpStatusFor(err), err.Error())
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Reservation cancelled"})
}
