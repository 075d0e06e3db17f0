// Package bind decodes and validates JSON request bodies.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

// Error is a body that could not be bound. Fields is set only when the
// body decoded but failed its `validate` tags.
type Error struct {
	Status int
	Detail string
	Fields map[string]string
}

func (e *Error) Error() string { return e.Detail }

// JSON decodes r.Body into dest and runs its `validate` tags. An empty body
// decodes to the zero value of dest, so a missing field is reported by its
// rule rather than as malformed input.
//
// Failures are *Error: 413 when the body exceeds MAX_BODY_BYTES, 400 when
// it is not JSON, 422 when validation fails.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &Error{
				Status: http.StatusRequestEntityTooLarge,
				Detail: fmt.Sprintf("Request body too large (max %d bytes)", maxErr.Limit),
			}
		}
		return &Error{Status: http.StatusBadRequest, Detail: "Invalid JSON: " + err.Error()}
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return &Error{Status: http.StatusUnprocessableEntity, Detail: "Validation failed", Fields: errs}
	}
	return nil
}
