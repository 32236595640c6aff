package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"loan-ledger/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted calendar date format on the wire.
const DateLayout = time.DateOnly

var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// Validator performs syntactic field checks and reports every violation at once.
type Validator interface {
	Validate(s any) error
}

// FieldMessenger lets a struct override the generic message for a field.
type FieldMessenger interface {
	FieldMessages() map[string]string
}

type playgroundValidator struct {
	v *validator.Validate
}

var _ Validator = (*playgroundValidator)(nil)

func New() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})

	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	})
	_ = v.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		d := decimal.NewFromFloat(fl.Field().Float())
		return d.Equal(d.Round(2))
	})

	return &playgroundValidator{v: v}
}

// Validate returns nil or apperrors.ValidationErrors, in struct field order.
func (p *playgroundValidator) Validate(s any) error {
	err := p.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.ValidationErrors{}.Add("", err.Error())
	}

	var overrides map[string]string
	if m, ok := s.(FieldMessenger); ok {
		overrides = m.FieldMessages()
	}

	out := apperrors.ValidationErrors{}
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		msg, ok := overrides[field]
		if !ok {
			msg = messageFor(fe)
		}
		out = out.Add(field, msg)
	}
	return out
}

// ParseDate parses a wire date; the result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required"
	case "mobile":
		return "Must be a 10-digit mobile number starting with 6-9"
	case "isodate":
		return "Must be a date in YYYY-MM-DD format"
	case "email":
		return "Invalid email format"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "eq":
		return "Must be " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return "Must be at least " + fe.Param() + " characters"
		}
		return "Must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "Must be at most " + fe.Param() + " characters"
		}
		return "Must be at most " + fe.Param()
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	case "lte":
		return "Must be at most " + fe.Param()
	case "maxbytes":
		return "Must be at most " + fe.Param() + " bytes"
	case "cents":
		return "Must have at most 2 decimal places"
	default:
		return "Invalid value"
	}
}
