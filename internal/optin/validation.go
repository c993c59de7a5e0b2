package optin

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// PhoneTag is the validator tag for US numbers in E.164 form (+1 and ten digits).
const PhoneTag = "us_e164"

var usE164 = regexp.MustCompile(`^\+1\d{10}$`)

// RegisterValidations installs the package's custom rules on v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(PhoneTag, func(fl validator.FieldLevel) bool {
		return usE164.MatchString(fl.Field().String())
	})
}

// IsValidPhone reports whether phone is a US number in E.164 form.
func IsValidPhone(phone string) bool {
	return usE164.MatchString(phone)
}
