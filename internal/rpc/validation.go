package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func isEmptyInput(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeInput parses raw into I and runs the struct tag rules. Every failure
// is reported as ErrValidation with per-field details.
func decodeInput[I any](raw json.RawMessage) (I, error) {
	var input I
	if !isEmptyInput(raw) {
		if err := json.Unmarshal(raw, &input); err != nil {
			return input, ErrValidation.
				WithCause(err).
				WithDetails(map[string]any{"input": decodeErrorDetail(err)})
		}
	}

	if reflect.Indirect(reflect.ValueOf(&input)).Kind() != reflect.Struct {
		return input, nil
	}

	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return input, ErrValidation.WithCause(err)
		}
		details := make(map[string]any, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		return input, ErrValidation.WithCause(err).WithDetails(details)
	}

	return input, nil
}

func decodeErrorDetail(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return "field " + typeErr.Field + " must be " + typeErr.Type.String()
	}
	return "malformed JSON"
}
