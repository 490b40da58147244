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
	"github.com/sanosuguru/go-show-booking/internal/domain/session"
	"github.com/sanosuguru/go-show-booking/internal/domain/show"
	"github.com/sanosuguru/go-show-booking/internal/domain/validation"
)

// MockAgendaService はAgendaServiceInterfaceのモック
type MockAgendaService struct {
	mock.Mock
}

func (m *MockAgendaService) ListShows(ctx context.Context, limit, offset int) ([]*show.Show, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*show.Show), args.Error(1)
}

func (m *MockAgendaService) AddShow(ctx context.Context, input application.AddShowInput) (*show.Show, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*show.Show), args.Error(1)
}

func (m *MockAgendaService) GetShow(ctx context.Context, id string) (*show.Show, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*show.Show), args.Error(1)
}

func (m *MockAgendaService) GetSession(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockAgendaService) ScheduleSessions(ctx context.Context, input application.ScheduleSessionsInput) ([]*session.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*session.Session), args.Error(1)
}

func TestShowHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に公演を作成できる", func(t *testing.T) {
		mockService := new(MockAgendaService)
		expected := show.New("ハムレット", "シェイクスピア四大悲劇", "venue-1", 300)
		expected.ID = "show-123"

		mockService.On("AddShow", mock.Anything, mock.AnythingOfType("application.AddShowInput")).
			Return(expected, nil)

		handler := NewShowHandler(mockService)

		reqBody := `{
			"name": "ハムレット",
			"description": "シェイクスピア四大悲劇",
			"venue_id": "venue-1",
			"default_capacity": 300
		}`
		req := httptest.NewRequest(http.MethodPost, "/shows", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp ShowResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "show-123", resp.ID)
		assert.Equal(t, "ハムレット", resp.Name)

		mockService.AssertExpectations(t)
	})

	t.Run("バリデーション違反は422で全件返る", func(t *testing.T) {
		mockService := new(MockAgendaService)
		errs := validation.Errors{
			{Field: "name", Message: show.MsgNameRequired},
			{Field: "description", Message: show.MsgDescriptionRequired},
		}
		mockService.On("AddShow", mock.Anything, mock.Anything).Return(nil, errs)

		handler := NewShowHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/shows", strings.NewReader(`{"name":"","description":""}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)
		require.Error(t, err)
		e.HTTPErrorHandler(err, c)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), show.MsgNameRequired)
		assert.Contains(t, rec.Body.String(), show.MsgDescriptionRequired)
	})
}

func TestShowHandler_GetByID(t *testing.T) {
	e := NewTestEcho()

	t.Run("公演を取得できる", func(t *testing.T) {
		mockService := new(MockAgendaService)
		expected := show.New("リア王", "悲劇", "venue-1", 200)
		expected.ID = "show-123"
		mockService.On("GetShow", mock.Anything, "show-123").Return(expected, nil)

		handler := NewShowHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/shows/show-123", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/shows/:id")
		c.SetParamNames("id")
		c.SetParamValues("show-123")

		err := handler.GetByID(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("存在しない公演は404", func(t *testing.T) {
		mockService := new(MockAgendaService)
		mockService.On("GetShow", mock.Anything, "missing").Return(nil, show.ErrShowNotFound)

		handler := NewShowHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/shows/missing", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/shows/:id")
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := handler.GetByID(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestShowHandler_ScheduleSessions(t *testing.T) {
	e := NewTestEcho()

	t.Run("セッションを一括生成できる", func(t *testing.T) {
		mockService := new(MockAgendaService)
		first := session.New("show-123", time.Date(2026, 1, 5, 20, 0, 0, 0, time.UTC), 300)
		second := session.New("show-123", time.Date(2026, 1, 12, 20, 0, 0, 0, time.UTC), 300)
		mockService.On("ScheduleSessions", mock.Anything, mock.MatchedBy(func(input application.ScheduleSessionsInput) bool {
			return input.ShowID == "show-123" && input.Rule == "weekly" &&
				input.TimeOfDay.Hour == 20 && input.TimeOfDay.Minute == 0
		})).Return([]*session.Session{first, second}, nil)

		handler := NewShowHandler(mockService)

		reqBody := `{
			"start_date": "2026-01-05",
			"end_date": "2026-01-14",
			"time_of_day": "20:00",
			"rule": "weekly"
		}`
		req := httptest.NewRequest(http.MethodPost, "/shows/show-123/sessions", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/shows/:id/sessions")
		c.SetParamNames("id")
		c.SetParamValues("show-123")

		err := handler.ScheduleSessions(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp ScheduleSessionsResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "2件のセッションを作成しました", resp.Message)
		assert.Len(t, resp.Sessions, 2)

		mockService.AssertExpectations(t)
	})

	t.Run("不正な繰り返し規則は400", func(t *testing.T) {
		handler := NewShowHandler(new(MockAgendaService))

		reqBody := `{"start_date":"2026-01-05","end_date":"2026-01-14","time_of_day":"20:00","rule":"hourly"}`
		req := httptest.NewRequest(http.MethodPost, "/shows/show-123/sessions", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/shows/:id/sessions")
		c.SetParamNames("id")
		c.SetParamValues("show-123")

		err := handler.ScheduleSessions(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("不正な日付形式は400", func(t *testing.T) {
		handler := NewShowHandler(new(MockAgendaService))

		reqBody := `{"start_date":"05/01/2026","end_date":"2026-01-14","time_of_day":"20:00","rule":"weekly"}`
		req := httptest.NewRequest(http.MethodPost, "/shows/show-123/sessions", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/shows/:id/sessions")
		c.SetParamNames("id")
		c.SetParamValues("show-123")

		err := handler.ScheduleSessions(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("存在しない公演は404", func(t *testing.T) {
		mockService := new(MockAgendaService)
		mockService.On("ScheduleSessions", mock.Anything, mock.Anything).Return(nil, show.ErrShowNotFound)

		handler := NewShowHandler(mockService)

		reqBody := `{"start_date":"2026-01-05","end_date":"2026-01-14","time_of_day":"20:00","rule":"weekly"}`
		req := httptest.NewRequest(http.MethodPost, "/shows/missing/sessions", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/shows/:id/sessions")
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := handler.ScheduleSessions(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}
