package api

import (
	"fmt"
	"net/http"

	"github.com/fansync/fansync/internal/exchange"
	"github.com/labstack/echo/v4"
)

func (s *restService) registerExchangeEndpoints(rest *echo.Echo) {
	rest.GET("/export/", s.exportState)
	rest.POST("/import/", s.importState)
}

// returns the cached policy and curve state as a portable document
func (s *restService) exportState(c echo.Context) error {
	document := exchange.Export(s.policies, s.curves)
	return c.JSONPretty(http.StatusOK, document, indentationChar)
}

// replays the curves of an export document through the sync
// controller, skipping entries the backend rejects
func (s *restService) importState(c echo.Context) error {
	var document exchange.Document
	if err := c.Bind(&document); err != nil {
		return returnBadRequest(c, err)
	}
	imported, err := exchange.Import(c.Request().Context(), s.controller, document)
	if err != nil {
		return returnBadRequest(c, err)
	}
	return c.JSONPretty(http.StatusOK, &Result{
		Name:    "Import",
		Message: fmt.Sprintf("Imported %d curve(s)", imported),
	}, indentationChar)
}
