package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Attribute turns a json field name into the label used inside messages.
func Attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func TakenMessage(field string) string {
	return fmt.Sprintf("The %s has already been taken.", Attribute(field))
}

func NumericMessage(field string) string {
	return fmt.Sprintf("The %s field must be a number.", Attribute(field))
}

func StringMessage(field string) string {
	return fmt.Sprintf("The %s field must be a string.", Attribute(field))
}

func Message(fe validator.FieldError) string {
	attr := Attribute(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "min":
		if isText(fe.Kind()) {
			return fmt.Sprintf("The %s field must be at least %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", attr, fe.Param())
	case "max":
		if isText(fe.Kind()) {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", attr, fe.Param())
	case "numeric":
		return NumericMessage(fe.Field())
	case "money":
		return fmt.Sprintf("The %s field must be between 0 and %s.", attr, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "dimensions":
		return fmt.Sprintf("The %s field format is invalid.", attr)
	case "calendar_date":
		return fmt.Sprintf("The %s field must be a valid date.", attr)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	}
	return fmt.Sprintf("The %s field is invalid.", attr)
}

func isText(kind reflect.Kind) bool {
	return kind == reflect.String
}
