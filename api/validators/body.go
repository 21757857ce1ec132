package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/angelmondragon/orderdesk-backend/pkg/validation"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// DecodeJSONBody fills dest from the request body. Unknown keys are ignored and
// an empty body decodes to the zero value, leaving required-field reporting to
// the service rules. Type mismatches are reported against the offending field.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer func() {
		_, _ = io.Copy(io.Discard, body)
	}()

	if err := json.NewDecoder(body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return decodeError(err).Err()
	}
	return nil
}

func decodeError(err error) validation.FieldErrors {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		if idx := strings.LastIndex(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		return validation.Single(field, typeMessage(field, typeErr.Type))
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return validation.Single("body", fmt.Sprintf("The request body must not be greater than %d bytes.", tooLarge.Limit))
	}
	return validation.Single("body", "The request body must be valid JSON.")
}

func typeMessage(field string, target reflect.Type) string {
	for target != nil && target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if target == nil {
		return fmt.Sprintf("The %s field is invalid.", validation.Attribute(field))
	}
	switch target.Kind() {
	case reflect.String:
		return validation.StringMessage(field)
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64, reflect.Float64:
		return validation.NumericMessage(field)
	}
	return fmt.Sprintf("The %s field is invalid.", validation.Attribute(field))
}
