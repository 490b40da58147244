package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-show-booking/internal/domain/venue"
)

type VenueHandler struct {
	directory venue.Directory
}

func NewVenueHandler(directory venue.Directory) *VenueHandler {
	return &VenueHandler{directory: directory}
}

type VenueResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string `json:"name" example:"大阪フェスティバルホール"`
	Address   string `json:"address" example:"大阪府大阪市北区中之島2-3-18"`
	CreatedAt string `json:"created_at" example:"2026-01-01T10:00:00+09:00"`
}

// List godoc
// @Summary 会場一覧を取得
// @Tags venues
// @Produce json
// @Success 200 {array} VenueResponse
// @Router /venues [get]
func (h *VenueHandler) List(c echo.Context) error {
	venues, err := h.directory.ListVenues(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]*VenueResponse, len(venues))
	for i, v := range venues {
		responses[i] = &VenueResponse{
			ID:        v.ID,
			Name:      v.Name,
			Address:   v.Address,
			CreatedAt: v.CreatedAt.Format(time.RFC3339),
		}
	}
	return c.JSON(http.StatusOK, responses)
}
