package api

import (
	"net/http"
	"strconv"

	"github.com/fansync/fansync/internal/hwio"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func (s *restService) registerPolicyEndpoints(rest *echo.Echo) {
	group := rest.Group("/policy")

	group.GET("/", s.getPolicies)
	group.GET("/:"+urlParamHeader+"/", s.getPolicy)
	group.POST("/", s.applyPolicy)
}

// returns the cached policy of all fan headers
func (s *restService) getPolicies(c echo.Context) error {
	data := map[hwio.HeaderID]hwio.Policy{}
	for _, policy := range s.policies.All() {
		var copied hwio.Policy
		if err := reprint.FromTo(&policy, &copied); err != nil {
			return returnError(c, err)
		}
		data[policy.HeaderID] = copied
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

// returns the cached policy of the fan header with the given id
func (s *restService) getPolicy(c echo.Context) error {
	param := c.Param(urlParamHeader)
	header, err := strconv.Atoi(param)
	if err != nil {
		return returnBadRequest(c, err)
	}
	policy, ok := s.policies.Get(hwio.HeaderID(header))
	if !ok {
		return returnNotFound(c, param)
	}
	var copied hwio.Policy
	if err := reprint.FromTo(&policy, &copied); err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, copied, indentationChar)
}

// applies the given policy optimistically and pushes it to the backend
func (s *restService) applyPolicy(c echo.Context) error {
	var policy hwio.Policy
	if err := c.Bind(&policy); err != nil {
		return returnBadRequest(c, err)
	}
	if !policy.Mode.Valid() {
		return returnBadRequest(c, hwio.ErrUnsupportedMode)
	}
	if err := s.controller.SetPolicy(c.Request().Context(), policy); err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, policy, indentationChar)
}
