package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/courtly/courtly/internal/catalog"
	"github.com/courtly/courtly/internal/dto"
	"github.com/courtly/courtly/internal/service"
	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the slot grid, the court list (optionally filtered by
// availability) and the server clock reference.
type CatalogHandler struct {
	svc      service.BookingService
	timezone string
	location *time.Location
	now      func() time.Time
}

func NewCatalogHandler(svc service.BookingService, timezone string, location *time.Location) *CatalogHandler {
	return &CatalogHandler{
		svc:      svc,
		timezone: timezone,
		location: location,
		now:      time.Now,
	}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/timeslots", h.GetTimeslots)
	e.GET("/api/courts", h.GetCourts)
	e.GET("/api/now", h.GetNow)
}

// GetTimeslots returns the daily grid. A date query parameter is accepted for
// compatibility but the grid is the same every day.
func (h *CatalogHandler) GetTimeslots(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.TimeslotsResponse{Timeslots: catalog.Timeslots()})
}

func (h *CatalogHandler) GetCourts(c echo.Context) error {
	date := c.QueryParam("date")
	csv := c.QueryParam("timeslots")
	if csv == "" {
		csv = c.QueryParam("timeslot")
	}
	timeslots := splitTimeslots(csv)

	if date == "" || len(timeslots) == 0 {
		return c.JSON(http.StatusOK, dto.CourtsResponse{Courts: catalog.Courts()})
	}

	courts, err := h.svc.AvailableCourts(c.Request().Context(), date, timeslots)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check availability")
	}
	return c.JSON(http.StatusOK, dto.CourtsResponse{Courts: courts})
}

// GetNow pins the client's "has this slot passed" math to server time in the
// venue timezone instead of the browser clock.
func (h *CatalogHandler) GetNow(c echo.Context) error {
	now := h.now().In(h.location)
	_, offsetSeconds := now.Zone()

	return c.JSON(http.StatusOK, dto.NowResponse{
		NowUnixMs:        now.UnixMilli(),
		NowISO:           now.Format(time.RFC3339),
		Timezone:         h.timezone,
		UTCOffsetMinutes: offsetSeconds / 60,
	})
}

func splitTimeslots(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
