// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

// Package validation wraps go-playground/validator with the custom rules the
// request payloads need and converts failures into field-keyed detail maps
// for error responses.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// "HH:MM" wall-clock strings, e.g. medication times of day.
	must(v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	}))

	// IANA timezone identifiers ("Europe/Berlin").
	must(v.RegisterValidation("iana_tz", func(fl validator.FieldLevel) bool {
		_, err := time.LoadLocation(fl.Field().String())
		return err == nil
	}))

	return v
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("validation: register rule: %v", err))
	}
}

// Struct validates a tagged request struct.
func Struct(s any) error {
	return validate.Struct(s)
}

// Details flattens a validation error into a field -> message map suitable
// for the API error envelope. Non-validation errors yield a single "body"
// entry.
func Details(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fieldName(fe)] = message(fe)
	}
	return details
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace is "Request.Field" or deeper; keep everything after
	// the struct name, lowercased for consistency with JSON payloads.
	ns := fe.StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "hhmm":
		return "must be a time in HH:MM format"
	case "iana_tz":
		return "must be a valid IANA timezone"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
