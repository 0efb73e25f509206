package api

import (
	"net/http"

	"github.com/fansync/fansync/internal/controller"
	"github.com/fansync/fansync/internal/store"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	urlParamHeader  = "header"
	urlParamMode    = "mode"
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

type restService struct {
	controller controller.SyncController
	policies   *store.PolicyStore
	curves     *store.CurveStore
	readings   *store.ReadingStore
}

func CreateRestService(
	syncController controller.SyncController,
	policies *store.PolicyStore,
	curves *store.CurveStore,
	readings *store.ReadingStore,
) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())

	echoRest.Use(middleware.Logger())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddleware("fansync"))

	service := &restService{
		controller: syncController,
		policies:   policies,
		curves:     curves,
		readings:   readings,
	}

	echoRest.GET("/alive/", isAlive)
	echoRest.GET("/error/", service.getLastError)

	service.registerPolicyEndpoints(echoRest)
	service.registerCurveEndpoints(echoRest)
	service.registerReadingEndpoints(echoRest)
	service.registerExchangeEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// returns the dismissible last-error slot of the sync controller, ""
// when the last operation succeeded
func (s *restService) getLastError(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, &Result{
		Name:    "Last error",
		Message: s.controller.LastError(),
	}, indentationChar)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "bad request" message for rejected input
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
