package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core"
)

var (
	startParam = "start"
	endParam   = "end"
)

// DateRange binds optional `start` and `end` query params. Either bound may
// be absent; a malformed value is a field error, not a silent nil.
type DateRange struct {
	Start *core.Date
	End   *core.Date
}

func (dr *DateRange) Bind(ctx echo.Context) error {
	var fldErrs []core.FieldError

	dr.Start = bindDateParam(ctx, startParam, &fldErrs)
	dr.End = bindDateParam(ctx, endParam, &fldErrs)

	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}

func bindDateParam(ctx echo.Context, param string, fldErrs *[]core.FieldError) *core.Date {
	val := core.CleanString(ctx.QueryParam(param))
	if val == "" {
		return nil
	}
	date, err := core.ParseDate(val)
	if err != nil {
		*fldErrs = append(*fldErrs, core.FieldError{Field: param, Error: "invalid date; expected YYYY-MM-DD"})
		return nil
	}
	return &date
}
