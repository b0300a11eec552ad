package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/schedule"
)

type scheduleApi struct {
	svc *schedule.Service
}

func registerScheduleAPI(g *echo.Group, svc *schedule.Service) {
	api := scheduleApi{svc: svc}

	cg := g.Group("/classes/:id")
	cg.GET("/sessions", api.sessions)
	cg.GET("/attendance", api.attendance)
	cg.GET("/calendar", api.calendar)
}

// Handlers

func (api *scheduleApi) sessions(ctx echo.Context) error {
	classID, studentID, err := pathClassAndStudent(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.Attendance(ctx.Request().Context(), classID, studentID)
	if err != nil {
		return errors.Wrap(err, "fetching attendance")
	}

	return ctx.JSON(http.StatusOK, view.Records)
}

func (api *scheduleApi) attendance(ctx echo.Context) error {
	classID, studentID, err := pathClassAndStudent(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.Attendance(ctx.Request().Context(), classID, studentID)
	if err != nil {
		return errors.Wrap(err, "fetching attendance")
	}

	return ctx.JSON(http.StatusOK, view)
}

func (api *scheduleApi) calendar(ctx echo.Context) error {
	classID, studentID, err := pathClassAndStudent(ctx)
	if err != nil {
		return err
	}

	var rng DateRange
	if err = rng.Bind(ctx); err != nil {
		return err
	}

	view, err := api.svc.Calendar(ctx.Request().Context(), classID, studentID, rng.Start, rng.End)
	if err != nil {
		return errors.Wrap(err, "projecting calendar")
	}

	return ctx.JSON(http.StatusOK, view)
}

func pathClassAndStudent(ctx echo.Context) (classID, studentID int, err error) {
	if classID, err = strconv.Atoi(ctx.Param("id")); err != nil || classID <= 0 {
		return 0, 0, errHttpNotFound
	}
	if studentID, err = strconv.Atoi(ctx.QueryParam("student")); err != nil || studentID <= 0 {
		return 0, 0, errHttpNotFound
	}
	return classID, studentID, nil
}
