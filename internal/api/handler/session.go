package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-show-booking/internal/application"
	"github.com/sanosuguru/go-show-booking/internal/domain/session"
)

type SessionHandler struct {
	agendaService      AgendaServiceInterface
	reservationService ReservationServiceInterface
}

func NewSessionHandler(agendaService AgendaServiceInterface, reservationService ReservationServiceInterface) *SessionHandler {
	return &SessionHandler{agendaService: agendaService, reservationService: reservationService}
}

type SessionResponse struct {
	ID           string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ShowID       string `json:"show_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartsAt     string `json:"starts_at" example:"2026-01-05T20:00:00+09:00"`
	TotalTickets int    `json:"total_tickets" example:"300"`
	Reserved     int    `json:"reserved" example:"120"`
	Available    int    `json:"available" example:"180"`
	CreatedAt    string `json:"created_at" example:"2026-01-01T10:00:00+09:00"`
	UpdatedAt    string `json:"updated_at" example:"2026-01-05T12:30:00+09:00"`
}

func toSessionResponse(s *session.Session) *SessionResponse {
	return &SessionResponse{
		ID:           s.ID,
		ShowID:       s.ShowID,
		StartsAt:     s.StartsAt.Format(time.RFC3339),
		TotalTickets: s.TotalTickets,
		Reserved:     s.Reserved(),
		Available:    s.Available(),
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
}

type ReserveRequest struct {
	Quantity int `json:"quantity" example:"2"`
}

type ReserveResponse struct {
	Message string           `json:"message" example:"予約が完了しました"`
	Session *SessionResponse `json:"session"`
}

type AvailabilityResponse struct {
	SessionID string `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Available int    `json:"available" example:"180"`
}

// Availability godoc
// @Summary 残り枚数を取得
// @Description 指定セッションの残り枚数を取得します（キャッシュ経由）
// @Tags sessions
// @Produce json
// @Param id path string true "セッションID"
// @Success 200 {object} AvailabilityResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /sessions/{id}/availability [get]
func (h *SessionHandler) Availability(c echo.Context) error {
	id := c.Param("id")
	available, err := h.reservationService.Availability(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "セッションが見つかりません")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{SessionID: id, Available: available})
}

// GetByID godoc
// @Summary セッションを取得
// @Description 指定IDのセッションを残り枚数込みで取得します
// @Tags sessions
// @Produce json
// @Param id path string true "セッションID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetByID(c echo.Context) error {
	id := c.Param("id")
	sess, err := h.agendaService.GetSession(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "セッションが見つかりません")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Reserve godoc
// @Summary チケットを予約
// @Description 指定セッションのチケットを指定枚数予約します
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "セッションID"
// @Param request body ReserveRequest true "予約枚数"
// @Success 200 {object} ReserveResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "残数不足または処理中"
// @Failure 422 {object} api.ErrorResponse "バリデーション違反（全件蓄積）"
// @Router /sessions/{id}/reserve [post]
func (h *SessionHandler) Reserve(c echo.Context) error {
	id := c.Param("id")
	var req ReserveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}

	sess, err := h.reservationService.Reserve(c.Request().Context(), id, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "セッションが見つかりません")
		case errors.Is(err, session.ErrInsufficientTickets):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, application.ErrSessionBusy):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		// バリデーション違反はエラーハンドラーで422に変換される
		return err
	}

	return c.JSON(http.StatusOK, ReserveResponse{
		Message: "予約が完了しました",
		Session: toSessionResponse(sess),
	})
}
