package serverutils

import (
	"fmt"
	"strings"

	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts the first failure
// into a validation error the central error handler can map to 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if vErrs, ok := err.(validator.ValidationErrors); ok {
		errs = vErrs
	} else {
		return apperror.Validation("request", "", err.Error())
	}

	first := errs[0]
	field := strings.ToLower(first.Field())
	msg := fmt.Sprintf("field '%s' failed on rule '%s'", field, first.Tag())
	return apperror.Validation("request", field, msg)
}
