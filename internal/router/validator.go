package router

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

func registerValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", usernameValidator)
	}
}

// Usernames: 3-32 characters, letters, digits and underscores.
func usernameValidator(fl validator.FieldLevel) bool {
	return usernameRegexp.MatchString(fl.Field().String())
}
