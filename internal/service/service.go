// Package service maps tool parameters onto the brokerage API: request
// normalization in, account gate in the middle, response normalization out.
// Every method performs exactly one upstream call and never retries.
package service

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tinvest-mcp/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct runs the static field rules and converts the first violation
// into a ValidationError naming the offending field.
func checkStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return domain.Validationf(fe.Field(), "is required")
		case "gt":
			return domain.Validationf(fe.Field(), "must be greater than %s", fe.Param())
		case "gte":
			return domain.Validationf(fe.Field(), "must be at least %s", fe.Param())
		case "min":
			return domain.Validationf(fe.Field(), "needs at least %s element(s)", fe.Param())
		default:
			return domain.Validationf(fe.Field(), "failed %q constraint", fe.Tag())
		}
	}
	return err
}

// infoProvider enriches market-data responses with instrument names.
type infoProvider interface {
	Info(ctx context.Context, uid string) (name, ticker string)
}
