package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-show-booking/internal/application"
	"github.com/sanosuguru/go-show-booking/internal/domain/promotion"
	"github.com/sanosuguru/go-show-booking/internal/domain/session"
	"github.com/sanosuguru/go-show-booking/internal/domain/show"
)

// MockPromotionService はPromotionServiceInterfaceのモック
type MockPromotionService struct {
	mock.Mock
}

func (m *MockPromotionService) CreatePromotion(ctx context.Context, input application.CreatePromotionInput) (*promotion.Promotion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.Promotion), args.Error(1)
}

func (m *MockPromotionService) ListPromotions(ctx context.Context) ([]*promotion.Promotion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*promotion.Promotion), args.Error(1)
}

func (m *MockPromotionService) MatchForShow(ctx context.Context, showID string) ([]promotion.Match, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]promotion.Match), args.Error(1)
}

func TestPromotionHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にプロモーションを作成できる", func(t *testing.T) {
		mockService := new(MockPromotionService)
		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		expected := promotion.New("早割キャンペーン", start, start.AddDate(0, 1, 0), false)
		expected.ID = "promo-123"
		mockService.On("CreatePromotion", mock.Anything, mock.AnythingOfType("application.CreatePromotionInput")).
			Return(expected, nil)

		handler := NewPromotionHandler(mockService)

		reqBody := `{
			"name": "早割キャンペーン",
			"starts_at": "2026-03-01T00:00:00Z",
			"ends_at": "2026-04-01T00:00:00Z"
		}`
		req := httptest.NewRequest(http.MethodPost, "/promotions", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp PromotionResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "promo-123", resp.ID)

		mockService.AssertExpectations(t)
	})

	t.Run("期間逆転は400", func(t *testing.T) {
		mockService := new(MockPromotionService)
		mockService.On("CreatePromotion", mock.Anything, mock.Anything).Return(nil, promotion.ErrInvalidWindow)

		handler := NewPromotionHandler(mockService)

		reqBody := `{"name":"逆転","starts_at":"2026-04-01T00:00:00Z","ends_at":"2026-03-01T00:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/promotions", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestPromotionHandler_MatchForShow(t *testing.T) {
	e := NewTestEcho()

	t.Run("セッションとの対応を取得できる", func(t *testing.T) {
		mockService := new(MockPromotionService)
		now := time.Now()
		p := promotion.New("駆け込み割", now.Add(-time.Hour), now.AddDate(0, 1, 0), false)
		p.ID = "promo-1"
		sess := session.Restore("sess-1", "show-1", now.Add(24*time.Hour), 100, 95, now, now)
		mockService.On("MatchForShow", mock.Anything, "show-1").
			Return([]promotion.Match{{Promotion: p, Sessions: []*session.Session{sess}}}, nil)

		handler := NewPromotionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/shows/show-1/promotions", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/shows/:id/promotions")
		c.SetParamNames("id")
		c.SetParamValues("show-1")

		err := handler.MatchForShow(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []MatchResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "promo-1", resp[0].Promotion.ID)
		require.Len(t, resp[0].Sessions, 1)
		assert.Equal(t, 5, resp[0].Sessions[0].Available)
	})

	t.Run("存在しない公演は404", func(t *testing.T) {
		mockService := new(MockPromotionService)
		mockService.On("MatchForShow", mock.Anything, "missing").Return(nil, show.ErrShowNotFound)

		handler := NewPromotionHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/shows/missing/promotions", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/shows/:id/promotions")
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := handler.MatchForShow(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}
