package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-show-booking/internal/application"
	"github.com/sanosuguru/go-show-booking/internal/domain/promotion"
	"github.com/sanosuguru/go-show-booking/internal/domain/show"
)

type PromotionHandler struct {
	promotionService PromotionServiceInterface
}

func NewPromotionHandler(promotionService PromotionServiceInterface) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

type CreatePromotionRequest struct {
	Name     string `json:"name" validate:"required" example:"早割キャンペーン"`
	StartsAt string `json:"starts_at" validate:"required" example:"2026-03-01T00:00:00+09:00"`
	EndsAt   string `json:"ends_at" validate:"required" example:"2026-03-31T23:59:59+09:00"`
	Always   bool   `json:"always" example:"false"`
}

type PromotionResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string `json:"name" example:"早割キャンペーン"`
	StartsAt  string `json:"starts_at" example:"2026-03-01T00:00:00+09:00"`
	EndsAt    string `json:"ends_at" example:"2026-03-31T23:59:59+09:00"`
	Always    bool   `json:"always" example:"false"`
	CreatedAt string `json:"created_at" example:"2026-02-01T10:00:00+09:00"`
}

type MatchResponse struct {
	Promotion *PromotionResponse `json:"promotion"`
	Sessions  []*SessionResponse `json:"sessions"`
}

func toPromotionResponse(p *promotion.Promotion) *PromotionResponse {
	return &PromotionResponse{
		ID:        p.ID,
		Name:      p.Name,
		StartsAt:  p.StartsAt.Format(time.RFC3339),
		EndsAt:    p.EndsAt.Format(time.RFC3339),
		Always:    p.Always,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func toMatchResponse(m promotion.Match) MatchResponse {
	sessions := make([]*SessionResponse, len(m.Sessions))
	for i, s := range m.Sessions {
		sessions[i] = toSessionResponse(s)
	}
	return MatchResponse{Promotion: toPromotionResponse(m.Promotion), Sessions: sessions}
}

// Create godoc
// @Summary プロモーションを登録
// @Tags promotions
// @Accept json
// @Produce json
// @Param request body CreatePromotionRequest true "プロモーション情報"
// @Success 201 {object} PromotionResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /promotions [post]
func (h *PromotionHandler) Create(c echo.Context) error {
	var req CreatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "開始日時の形式が不正です")
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "終了日時の形式が不正です")
	}

	p, err := h.promotionService.CreatePromotion(c.Request().Context(), application.CreatePromotionInput{
		Name:     req.Name,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Always:   req.Always,
	})
	if err != nil {
		if errors.Is(err, promotion.ErrNameRequired) || errors.Is(err, promotion.ErrInvalidWindow) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, toPromotionResponse(p))
}

// List godoc
// @Summary プロモーション一覧を取得
// @Tags promotions
// @Produce json
// @Success 200 {array} PromotionResponse
// @Router /promotions [get]
func (h *PromotionHandler) List(c echo.Context) error {
	promotions, err := h.promotionService.ListPromotions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]*PromotionResponse, len(promotions))
	for i, p := range promotions {
		responses[i] = toPromotionResponse(p)
	}
	return c.JSON(http.StatusOK, responses)
}

// MatchForShow godoc
// @Summary 公演に適用可能なプロモーションを取得
// @Description 公演の各セッションに適用可能なプロモーションの対応を計算します
// @Tags promotions
// @Produce json
// @Param id path string true "公演ID"
// @Success 200 {array} MatchResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /shows/{id}/promotions [get]
func (h *PromotionHandler) MatchForShow(c echo.Context) error {
	id := c.Param("id")
	matches, err := h.promotionService.MatchForShow(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, show.ErrShowNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "公演が見つかりません")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]MatchResponse, len(matches))
	for i, m := range matches {
		responses[i] = toMatchResponse(m)
	}
	return c.JSON(http.StatusOK, responses)
}
