package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	commonerrors "github.com/akarpovich/notes-service/internal/common/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeAndValidate decodes the JSON body into v and runs struct validation.
// Both failure modes surface as a VALIDATION domain error so handlers map them
// to a single 400 path.
func DecodeAndValidate(r *http.Request, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		return commonerrors.ErrValidation.WithCause(err)
	}

	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return commonerrors.ErrValidation.WithCause(err)
		}

		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s is invalid (%s)", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return commonerrors.ErrValidation.WithCause(errors.New(strings.Join(parts, "; ")))
	}

	return nil
}

// ParseUUIDPath extracts and parses the {id} path value of the request.
func ParseUUIDPath(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return uuid.Nil, commonerrors.ErrValidation.WithCause(errors.New("id path parameter is required"))
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, commonerrors.ErrValidation.WithCause(errors.New("id is not a valid uuid"))
	}

	return id, nil
}
