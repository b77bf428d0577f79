// Package validation checks request payload shape before anything reaches
// storage. All checks are pure: no I/O, no side effects. Failures aggregate
// every violated constraint into a single message instead of failing fast.
package validation

import (
	"bytes"
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	util "github.com/cvforge/cv-service/pkg/util"
)

var (
	passwordUppercase = regexp.MustCompile(`[A-Z]`)
	passwordDigit     = regexp.MustCompile(`[0-9]`)
	objectIDPattern   = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their json names so messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		return passwordUppercase.MatchString(val) && passwordDigit.MatchString(val)
	})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return objectIDPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("eduyear", func(fl validator.FieldLevel) bool {
		year := int(fl.Field().Int())
		return year >= 1900 && year <= time.Now().Year()
	})

	return v
}

// fieldMessages maps json field names to their constraint description.
// Any tag failure on a field yields the field's full constraint text so a
// single message names everything the caller must fix.
var fieldMessages = map[string]string{
	"personalInfo": "personalInfo is required",
	"firstName":    "firstName must be 3 to 50 characters long",
	"lastName":     "lastName must be 3 to 50 characters long",
	"description":  "description must be at least 5 characters long",
	"education":    "education is required",
	"experience":   "experience is required",
	"degree":       "degree must be at least 2 characters long",
	"institution":  "institution must be at least 2 characters long",
	"year":         "year must be an integer between 1900 and the current year",
	"jobTitle":     "jobTitle must be at least 2 characters long",
	"company":      "company must be at least 2 characters long",
	"years":        "years must be an integer between 0 and 50",
	"name":         "name must be 1 to 20 characters long",
	"email":        "email is missing or incorrect",
	"password":     "password must be at least 6 characters and contain an uppercase letter and a digit",
	"cvId":         "cvId is required and must be a valid ObjectId",
	"comment":      "comment is required and must be between 1 and 500 characters",
	"isVisible":    "isVisible is required and must be a boolean",
}

// checkStruct validates a payload struct and aggregates all violations into
// one VALIDATION_FAILED error.
func checkStruct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return util.NewValidationError("invalid payload", nil)
	}

	messages := make([]string, 0, len(verrs))
	fields := map[string]any{}
	for _, fe := range verrs {
		msg, known := fieldMessages[fe.Field()]
		if !known {
			msg = fe.Field() + " is invalid"
		}
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = msg
		messages = append(messages, msg)
	}

	return util.NewValidationError(strings.Join(messages, ", "), map[string]any{"fields": fields})
}

// DecodeStrict unmarshals JSON into dst, rejecting unrecognized fields at
// any nesting level and trailing garbage.
func DecodeStrict(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return util.NewValidationError("invalid payload: "+err.Error(), nil)
	}
	if dec.More() {
		return util.NewValidationError("invalid payload: unexpected trailing data", nil)
	}
	return nil
}
