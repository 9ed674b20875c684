package validator

import "github.com/go-playground/validator/v10"

var alertCategories = map[string]struct{}{
	"medical":  {},
	"fire":     {},
	"police":   {},
	"rescue":   {},
	"crime":    {},
	"accident": {},
	"natural":  {},
	"SOS":      {},
	"other":    {},
}

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("category", validateCategory)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180.0 && lng <= 180.0
}

func validateCategory(fl validator.FieldLevel) bool {
	_, ok := alertCategories[fl.Field().String()]
	return ok
}
