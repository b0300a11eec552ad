package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/request"
)

type requestApi struct {
	svc      *request.Service
	validate *validator.Validate
}

func registerRequestAPI(g *echo.Group, svc *request.Service, validate *validator.Validate) {
	api := requestApi{
		svc:      svc,
		validate: validate,
	}

	rg := g.Group("/requests")
	rg.GET("", api.query)
	rg.POST("", api.create)
	rg.PUT("/:id/decide", api.decide)
}

// Handlers

func (api *requestApi) create(ctx echo.Context) error {
	var data request.NewRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	req, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}

	return ctx.JSON(http.StatusCreated, req)
}

func (api *requestApi) query(ctx echo.Context) error {
	views, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying requests")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *requestApi) decide(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return errHttpNotFound
	}

	var data request.DecideRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DecideRequest")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	req, err := api.svc.Decide(ctx.Request().Context(), id, data)
	if err != nil {
		if errors.Cause(err) == request.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deciding request")
	}

	return ctx.JSON(http.StatusOK, req)
}
