package helpers

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom rules on gin's validator and makes
// validation errors report JSON field names. Safe to call more than once;
// later calls return the first call's result.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("helpers: unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})

		if err := v.RegisterValidation("password", validatePassword); err != nil {
			registerErr = fmt.Errorf("helpers: register password rule: %w", err)
		}
	})
	return registerErr
}

func validatePassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword reports whether pw is 8 to 32 characters and mixes upper
// and lower case letters, digits and one of !@#$%^&*(),.?":{}|<>
func IsStrongPassword(pw string) bool {
	n := utf8.RuneCountInString(pw)
	if n < 8 || n > 32 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case unicode.IsDigit(r) && r < utf8.RuneSelf:
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// validationMessage renders the first failed rule the way clients expect, e.g. "email" must be a valid email
func validationMessage(errs validator.ValidationErrors) string {
	fe := errs[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "password":
		return fmt.Sprintf("%q must be 8-32 characters and include upper and lower case letters, a number and a special character", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
