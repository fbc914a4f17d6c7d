// Package validation holds field format checks shared by the domain and the
// use cases.
package validation

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Email reports whether s is a single bare address such as "ana@tsmit.com".
func Email(s string) bool {
	return validate.Var(s, "required,email") == nil
}
