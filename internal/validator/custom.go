package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var observedDateLayouts = []string{time.RFC3339, "2006-01-02"}

func statusValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch val {
	case "Draft":
		fallthrough
	case "Applied":
		fallthrough
	case "Interview":
		fallthrough
	case "Offer":
		fallthrough
	case "Rejected":
		fallthrough
	case "Other":
		return true
	default:
		return false
	}
}

func observedDateValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	for _, layout := range observedDateLayouts {
		if _, err := time.Parse(layout, val); err == nil {
			return true
		}
	}

	return false
}
