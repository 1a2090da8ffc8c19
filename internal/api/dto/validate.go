package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a request struct and reports the first failure as a malformed request.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return apperrors.NewMalformedRequest(fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			return apperrors.NewMalformedRequest(fmt.Sprintf("%s is too long", fe.Field()))
		default:
			return apperrors.NewMalformedRequest(fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return apperrors.NewMalformedRequest("invalid payload")
}
