package validator

import (
	"fmt"
	"reflect"
	"strings"

	"moviehub/proj/internal/utils"

	govalidator "github.com/go-playground/validator/v10"
)

// lookupField resolves a FieldError's StructField back to the struct field.
// Slice and map elements are reported with an index suffix ("IDs[0]") which is
// not part of the field name, so the suffix is cut before the lookup.
func lookupField(obj any, structField string) reflect.StructField {
	if i := strings.IndexByte(structField, '['); i != -1 {
		structField = structField[:i]
	}
	t := reflect.TypeOf(obj)
	field, found := t.FieldByName(structField)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", structField, t.Name()))
	}
	return field
}

func getFieldName(obj any, origFieldName string) (fieldName string) {
	field := lookupField(obj, origFieldName)
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		jsonName := strings.Split(tag, ",")[0]
		if jsonName != "" {
			fieldName = jsonName
		}
	} else {
		fieldName = utils.CamelToSnake(field.Name)
	}
	return
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	field := lookupField(obj, err.StructField())
	errorMsg = field.Tag.Get("errorMsg")
	if errorMsg == "" {
		switch err.Tag() {
		case "required":
			errorMsg = "This field is required"
		case "required_without":
			errorMsg = fmt.Sprintf("This field is required when %s is missing", err.Param())
		case "max":
			errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
		case "min":
			errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
		case "gte":
			errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
		case "lte":
			errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
		case "lt":
			errorMsg = fmt.Sprintf("Value should be less than %s", err.Param())
		case "gt":
			errorMsg = fmt.Sprintf("Value should be greater than %s", err.Param())
		case "oneof":
			errorMsg = fmt.Sprintf("Value should be one of %s", err.Param())
		case "len":
			errorMsg = fmt.Sprintf("Length should be equal to %s", err.Param())
		case "unique":
			errorMsg = "Value must not contain duplicate values"
		case "url":
			errorMsg = "Value must be a valid URL"
		case "email":
			errorMsg = "Value must be a valid email address"
		case "alphanum":
			errorMsg = "Value must be alphanumeric"
		default:
			errorMsg = "This field is invalid"
		}
	}
	return
}
