package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fansync/fansync/internal/curve"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func (s *restService) registerCurveEndpoints(rest *echo.Echo) {
	group := rest.Group("/curve")

	group.GET("/", s.getCurves)
	group.GET("/:"+urlParamHeader+"/:"+urlParamMode+"/", s.getCurve)
	group.POST("/:"+urlParamHeader+"/:"+urlParamMode+"/reload/", s.reloadCurve)
	group.POST("/", s.applyCurve)
}

func (s *restService) curveParams(c echo.Context) (hwio.HeaderID, hwio.ControlMode, error) {
	header, err := strconv.Atoi(c.Param(urlParamHeader))
	if err != nil {
		return 0, "", err
	}
	mode, err := hwio.ParseControlMode(c.Param(urlParamMode))
	if err != nil {
		return 0, "", err
	}
	return hwio.HeaderID(header), mode, nil
}

// returns all cached curves, keyed by "<headerId>_<mode>"
func (s *restService) getCurves(c echo.Context) error {
	var data map[string]hwio.Curve
	if err := reprint.FromTo(s.curves.Curves(), &data); err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

// returns the curve of the given (header, mode) pair, fetching it
// from the backend if it has never been seen
func (s *restService) getCurve(c echo.Context) error {
	header, mode, err := s.curveParams(c)
	if err != nil {
		return returnBadRequest(c, err)
	}
	entry, err := s.controller.EnsureCurve(c.Request().Context(), header, mode)
	if err != nil {
		return returnError(c, err)
	}
	if entry.Unsupported {
		return returnNotFound(c, hwio.CurveKey(header, mode))
	}
	var copied hwio.Curve
	if err := reprint.FromTo(&entry.Curve, &copied); err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, copied, indentationChar)
}

// drops the cached entry and fetches the hardware value again
func (s *restService) reloadCurve(c echo.Context) error {
	header, mode, err := s.curveParams(c)
	if err != nil {
		return returnBadRequest(c, err)
	}
	entry, err := s.controller.ReloadCurve(c.Request().Context(), header, mode)
	if err != nil {
		return returnError(c, err)
	}
	if entry.Unsupported {
		return returnNotFound(c, hwio.CurveKey(header, mode))
	}
	return c.JSONPretty(http.StatusOK, entry.Curve, indentationChar)
}

// applies the given curve optimistically and pushes it to the backend
func (s *restService) applyCurve(c echo.Context) error {
	var submitted hwio.Curve
	if err := c.Bind(&submitted); err != nil {
		return returnBadRequest(c, err)
	}
	err := s.controller.SetCurve(c.Request().Context(), submitted)
	var validationErr *curve.ValidationError
	if errors.As(err, &validationErr) {
		return returnBadRequest(c, err)
	}
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, submitted, indentationChar)
}
