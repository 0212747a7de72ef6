// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
}

// validateRequest checks obj against its `validate` tags. Failures are
// reported as ErrInvalidDataProvided listing the offending json fields.
func validateRequest(obj any) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidDataProvided, err)
	}

	fields := make([]string, len(vErrs))
	for i, e := range vErrs {
		fields[i] = e.Field() + "(" + e.Tag() + ")"
	}
	return fmt.Errorf("%w: %s", ErrInvalidDataProvided, strings.Join(fields, ", "))
}
