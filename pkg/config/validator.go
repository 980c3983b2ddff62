package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("caseinsensitiveoneof", caseInsensitiveOneOf)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func caseInsensitiveOneOf(fl validator.FieldLevel) bool {
	val := strings.ToLower(fl.Field().String())
	for _, c := range strings.Fields(strings.ToLower(fl.Param())) {
		if val == c {
			return true
		}
	}
	return false
}

// fieldMessage renders a validation failure using the TOML key path,
// e.g. "canvas.width must be greater than 0".
func fieldMessage(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", ns, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", ns, fe.Param())
	case "eq=0|gte=1":
		return fmt.Sprintf("%s must be 0 (unset) or at least 1", ns)
	case "required":
		return fmt.Sprintf("%s is required", ns)
	case "oneof", "caseinsensitiveoneof":
		return fmt.Sprintf("%s must be one of: %s", ns, fe.Param())
	}
	return fmt.Sprintf("%s failed %s", ns, fe.Tag())
}
