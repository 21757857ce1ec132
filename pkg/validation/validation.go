package validation

import (
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
	"github.com/angelmondragon/orderdesk-backend/pkg/types"
)

// InvalidDataMessage is the error message attached to every field-level failure.
const InvalidDataMessage = "The given data was invalid."

var dimensionsPattern = regexp.MustCompile(`^\d+(\.\d+)?\s*x\s*\d+(\.\d+)?$`)

var validate = New()

// New builds a validator that reports json field names and knows the custom rules.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("dimensions", isDimensions)
	_ = v.RegisterValidation("calendar_date", isCalendarDate)
	_ = v.RegisterValidation("money", isMoney)
	return v
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func isDimensions(fl validator.FieldLevel) bool {
	return dimensionsPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func isCalendarDate(fl validator.FieldLevel) bool {
	_, err := types.ParseDate(fl.Field().String())
	return err == nil
}

// isMoney accepts a non-negative decimal no larger than the rule parameter.
func isMoney(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	if err != nil || amount.IsNegative() {
		return false
	}
	if param := fl.Param(); param != "" {
		limit, err := decimal.NewFromString(param)
		if err == nil && amount.GreaterThan(limit) {
			return false
		}
	}
	return true
}

// FieldErrors collects messages per json field name.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	for _, existing := range f[field] {
		if existing == message {
			return
		}
	}
	f[field] = append(f[field], message)
}

func (f FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		for _, message := range messages {
			f.Add(field, message)
		}
	}
}

func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Fields returns the failing field names in sorted order.
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for field := range f {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Err converts the collected messages into a validation error, or nil when empty.
func (f FieldErrors) Err() error {
	if f.Empty() {
		return nil
	}
	details := make(map[string][]string, len(f))
	for field, messages := range f {
		details[field] = append([]string(nil), messages...)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, InvalidDataMessage).WithDetails(details)
}

// Struct runs the struct tags of v and returns every failure. The result is never nil.
func Struct(v any) FieldErrors {
	out := FieldErrors{}
	err := validate.Struct(v)
	if err == nil {
		return out
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		out.Add("body", "The request body is invalid.")
		return out
	}
	for _, fe := range errs {
		out.Add(fe.Field(), Message(fe))
	}
	return out
}

// Single returns a FieldErrors holding one message.
func Single(field, message string) FieldErrors {
	out := FieldErrors{}
	out.Add(field, message)
	return out
}

// Unique reports a taken value for field.
func Unique(field string) FieldErrors {
	return Single(field, TakenMessage(field))
}

// Clean trims an optional string and maps blank input to nil, so "" is stored as NULL.
func Clean(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
