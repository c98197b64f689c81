package request

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validSeasons = map[string]bool{
	"spring": true,
	"summer": true,
	"autumn": true,
	"winter": true,
	"all":    true,
}

// RegisterValidations hooks the custom binding tags into gin's validator.
// Must be called once before the routes are registered.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("season", func(fl validator.FieldLevel) bool {
			return validSeasons[fl.Field().String()]
		})
	}
}
