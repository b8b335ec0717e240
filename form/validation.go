// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"errors"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Field names a form input. The values match the HTML input names.
type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
)

// Fields lists every input in page order.
var Fields = []Field{FieldName, FieldEmail, FieldPassword, FieldConfirmPassword}

// Valid reports whether f is one of the form inputs.
func (f Field) Valid() bool {
	switch f {
	case FieldName, FieldEmail, FieldPassword, FieldConfirmPassword:
		return true
	}
	return false
}

// PasswordSymbols is the fixed set of symbols a password may (and must) use.
const PasswordSymbols = "@$!%*#?&"

var (
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*#?&]{8,}$`)
	passwordLetter  = regexp.MustCompile(`[A-Za-z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
	passwordSymbol  = regexp.MustCompile(`[@$!%*#?&]`)
)

// Values holds the raw input of the sign-up form.
type Values struct {
	Name            string `form:"name" validate:"min=2,max=60,required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,max=30,password"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
}

// Get returns the value of a single field.
func (v Values) Get(f Field) string {
	switch f {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldPassword:
		return v.Password
	case FieldConfirmPassword:
		return v.ConfirmPassword
	}
	return ""
}

// Set returns a copy of v with a single field replaced.
func (v Values) Set(f Field, value string) Values {
	switch f {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldPassword:
		v.Password = value
	case FieldConfirmPassword:
		v.ConfirmPassword = value
	}
	return v
}

// Errors maps a field to its human readable validation message.
type Errors map[Field]string

// StringMap converts the errors for JSON encoding.
func (e Errors) StringMap() map[string]string {
	out := make(map[string]string, len(e))
	for f, msg := range e {
		out[string(f)] = msg
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return sf.Tag.Get("form")
	})
	// RegisterValidation only fails on an empty tag or a nil func
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return MatchesPasswordPattern(fl.Field().String())
	})
	return v
}

// MatchesPasswordPattern checks the combined password rule: at least 8
// characters drawn from letters, digits and PasswordSymbols, with at least one
// of each class. RE2 has no lookahead, so the classes are separate expressions.
func MatchesPasswordPattern(s string) bool {
	return passwordCharset.MatchString(s) &&
		passwordLetter.MatchString(s) &&
		passwordDigit.MatchString(s) &&
		passwordSymbol.MatchString(s)
}

// Validate evaluates every rule against v. The first failing rule of each
// field wins; a valid form yields an empty map.
func Validate(v Values) Errors {
	errs := Errors{}

	err := validate.Struct(v)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs
	}

	for _, fe := range fieldErrs {
		f := Field(fe.Field())
		if _, seen := errs[f]; seen {
			continue
		}
		errs[f] = message(f, fe.Tag())
	}

	return errs
}

func message(f Field, tag string) string {
	switch f {
	case FieldName:
		switch tag {
		case "required":
			return "Name is required"
		case "min":
			return "Name must contain at least 2 characters"
		case "max":
			return "Name should not be more than 60 characters"
		}
	case FieldEmail:
		if tag == "required" {
			return "Email is required"
		}
		return "Invalid email address"
	case FieldPassword:
		switch tag {
		case "required":
			return "Please enter your password"
		case "max":
			return "Password should not be more than 30 characters"
		case "password":
			return "Password must contain at least 8 characters with at least 1 letter, 1 number and 1 special character"
		}
	case FieldConfirmPassword:
		return "Password and Confirm Password must match"
	}
	return "Invalid value"
}
