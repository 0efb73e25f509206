package api

import (
	"net/http"

	"github.com/fansync/fansync/internal/hwio"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func (s *restService) registerReadingEndpoints(rest *echo.Echo) {
	group := rest.Group("/reading")

	group.GET("/", s.getReadings)
	group.GET("/:"+urlParamId+"/", s.getReading)
}

// returns the latest reading snapshot of all sensor channels
func (s *restService) getReadings(c echo.Context) error {
	var data []hwio.Reading
	if err := reprint.FromTo(s.readings.All(), &data); err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

type readingResponse struct {
	hwio.Reading
	MovingAvg float64 `json:"movingAvg"`
}

// returns a single sensor channel together with its smoothed value
func (s *restService) getReading(c echo.Context) error {
	id := c.Param(urlParamId)
	reading, ok := s.readings.Get(id)
	if !ok {
		return returnNotFound(c, id)
	}
	avg, _ := s.readings.MovingAvg(id)
	return c.JSONPretty(http.StatusOK, readingResponse{
		Reading:   reading,
		MovingAvg: avg,
	}, indentationChar)
}
