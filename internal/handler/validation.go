package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// oneOf accepts a value equal to one of the space separated parameters, ignoring case. Clients
// have sent both "sms" and "SMS" for the same notification type.
func oneOf(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, match := range strings.Fields(fl.Param()) {
		if strings.EqualFold(match, value) {
			return true
		}
	}
	return false
}

// jsonName reports fields by the name clients send them under.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// RegisterValidation adds the custom validations to gin's validation engine. It must be called
// before any request is bound.
func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin isn't using the go-playground validator")
	}

	v.RegisterTagNameFunc(jsonName)
	return v.RegisterValidation("oneOf", oneOf)
}

// describe turns a validation failure into a sentence about the offending field.
func describe(fieldError validator.FieldError) string {
	field := fieldError.Field()
	switch fieldError.Tag() {
	case "required":
		return field + " is required"
	case "oneOf":
		return field + " must be one of " + strings.Join(strings.Fields(fieldError.Param()), ", ")
	case "email":
		return field + " must be an email address"
	case "gte":
		return field + " must be at least " + fieldError.Param() + " characters"
	case "lte":
		return field + " must be at most " + fieldError.Param() + " characters"
	}
	return field + " failed on " + fieldError.Tag()
}
