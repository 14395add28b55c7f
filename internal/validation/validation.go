// Package validation checks request structs before they are sent, using the
// validate struct tags on the xmoney request types.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}

		return tag
	})

	return v
}

// Struct validates request. A nil pointer is rejected. Violations are
// returned as a KindInvalidRequest error with one Validation detail per field.
func Struct(request interface{}) error {
	if request == nil {
		return xmoney.WrapError(xmoney.KindInvalidRequest, xmoney.ErrNilRequest.Error(), xmoney.ErrNilRequest)
	}

	value := reflect.ValueOf(request)
	if value.Kind() == reflect.Ptr && value.IsNil() {
		return xmoney.WrapError(xmoney.KindInvalidRequest, xmoney.ErrNilRequest.Error(), xmoney.ErrNilRequest)
	}

	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return xmoney.WrapError(xmoney.KindInvalidRequest, constants.ErrRequestValidation.Error(), err)
	}

	details := make([]xmoney.ErrorDetail, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		details = append(details, xmoney.ErrorDetail{
			Message: fieldErr.Field() + " " + message(fieldErr),
			Type:    xmoney.ErrorTypeValidation,
			Field:   fieldErr.Field(),
		})
	}

	return &xmoney.Error{
		Kind:    xmoney.KindInvalidRequest,
		Message: details[0].Message,
		Details: details,
		Err:     constants.ErrRequestValidation,
	}
}

// ID rejects non-positive resource ids.
func ID(id int64) error {
	if id <= 0 {
		return xmoney.WrapError(xmoney.KindInvalidRequest, fmt.Sprintf("%s: %d", constants.ErrInvalidID, id), constants.ErrInvalidID)
	}

	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "len":
		return fmt.Sprintf("must be %s characters long", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "ip":
		return "must be a valid IP address"
	}

	return "is invalid"
}
