package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-show-booking/internal/application"
	"github.com/sanosuguru/go-show-booking/internal/domain/periodicity"
	"github.com/sanosuguru/go-show-booking/internal/domain/show"
)

const dateLayout = "2006-01-02"

type ShowHandler struct {
	agendaService AgendaServiceInterface
}

func NewShowHandler(agendaService AgendaServiceInterface) *ShowHandler {
	return &ShowHandler{agendaService: agendaService}
}

type CreateShowRequest struct {
	Name            string `json:"name" example:"ハムレット"`
	Description     string `json:"description" example:"シェイクスピア四大悲劇"`
	VenueID         string `json:"venue_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	DefaultCapacity int    `json:"default_capacity" validate:"gte=0" example:"300"`
}

type ShowResponse struct {
	ID              string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name            string `json:"name" example:"ハムレット"`
	Description     string `json:"description" example:"シェイクスピア四大悲劇"`
	VenueID         string `json:"venue_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	DefaultCapacity int    `json:"default_capacity" example:"300"`
	SessionCount    int    `json:"session_count" example:"12"`
	CreatedAt       string `json:"created_at" example:"2026-01-10T10:00:00+09:00"`
	UpdatedAt       string `json:"updated_at" example:"2026-01-10T10:00:00+09:00"`
}

func toShowResponse(s *show.Show) *ShowResponse {
	return &ShowResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		VenueID:         s.VenueID,
		DefaultCapacity: s.DefaultCapacity,
		SessionCount:    len(s.Sessions),
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}

type ScheduleSessionsRequest struct {
	StartDate string `json:"start_date" validate:"required" example:"2026-01-05"`
	EndDate   string `json:"end_date" validate:"required" example:"2026-03-31"`
	TimeOfDay string `json:"time_of_day" validate:"required" example:"20:00"`
	Rule      string `json:"rule" validate:"required" example:"weekly"`
}

type ScheduleSessionsResponse struct {
	Message  string             `json:"message" example:"12件のセッションを作成しました"`
	Sessions []*SessionResponse `json:"sessions"`
}

// Create godoc
// @Summary 公演を登録
// @Description 新しい公演を登録します
// @Tags shows
// @Accept json
// @Produce json
// @Param request body CreateShowRequest true "公演情報"
// @Success 201 {object} ShowResponse
// @Failure 422 {object} api.ErrorResponse "バリデーション違反（全件蓄積）"
// @Router /shows [post]
func (h *ShowHandler) Create(c echo.Context) error {
	var req CreateShowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.agendaService.AddShow(c.Request().Context(), application.AddShowInput{
		Name:            req.Name,
		Description:     req.Description,
		VenueID:         req.VenueID,
		DefaultCapacity: req.DefaultCapacity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toShowResponse(s))
}

// GetByID godoc
// @Summary 公演を取得
// @Description 指定IDの公演をセッション込みで取得します
// @Tags shows
// @Produce json
// @Param id path string true "公演ID"
// @Success 200 {object} ShowResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /shows/{id} [get]
func (h *ShowHandler) GetByID(c echo.Context) error {
	id := c.Param("id")
	s, err := h.agendaService.GetShow(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, show.ErrShowNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "公演が見つかりません")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toShowResponse(s))
}

// List godoc
// @Summary 公演一覧を取得
// @Tags shows
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} ShowResponse
// @Router /shows [get]
func (h *ShowHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	shows, err := h.agendaService.ListShows(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]*ShowResponse, len(shows))
	for i, s := range shows {
		responses[i] = toShowResponse(s)
	}
	return c.JSON(http.StatusOK, responses)
}

// ListSessions godoc
// @Summary 公演のセッション一覧を取得
// @Description 指定公演のセッションを開始日時の昇順で取得します
// @Tags shows
// @Produce json
// @Param id path string true "公演ID"
// @Success 200 {array} SessionResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /shows/{id}/sessions [get]
func (h *ShowHandler) ListSessions(c echo.Context) error {
	id := c.Param("id")
	s, err := h.agendaService.GetShow(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, show.ErrShowNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "公演が見つかりません")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]*SessionResponse, len(s.Sessions))
	for i, sess := range s.Sessions {
		responses[i] = toSessionResponse(sess)
	}
	return c.JSON(http.StatusOK, responses)
}

// ScheduleSessions godoc
// @Summary セッションを一括生成
// @Description 期間と繰り返し規則からセッションを生成して保存します
// @Tags shows
// @Accept json
// @Produce json
// @Param id path string true "公演ID"
// @Param request body ScheduleSessionsRequest true "スケジュール条件"
// @Success 201 {object} ScheduleSessionsResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /shows/{id}/sessions [post]
func (h *ShowHandler) ScheduleSessions(c echo.Context) error {
	id := c.Param("id")
	var req ScheduleSessionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "開始日の形式が不正です")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "終了日の形式が不正です")
	}
	tod, err := show.ParseTimeOfDay(req.TimeOfDay)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "開演時刻の形式が不正です")
	}
	rule, err := periodicity.ParseRule(req.Rule)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "繰り返し規則が不正です")
	}

	sessions, err := h.agendaService.ScheduleSessions(c.Request().Context(), application.ScheduleSessionsInput{
		ShowID:    id,
		Start:     start,
		End:       end,
		TimeOfDay: tod,
		Rule:      rule,
	})
	if err != nil {
		switch {
		case errors.Is(err, show.ErrShowNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "公演が見つかりません")
		case errors.Is(err, show.ErrMissingCapacity), errors.Is(err, periodicity.ErrInvalidRange):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]*SessionResponse, len(sessions))
	for i, sess := range sessions {
		responses[i] = toSessionResponse(sess)
	}
	return c.JSON(http.StatusCreated, ScheduleSessionsResponse{
		Message:  fmt.Sprintf("%d件のセッションを作成しました", len(sessions)),
		Sessions: responses,
	})
}
