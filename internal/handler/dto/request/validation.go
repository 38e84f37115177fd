package request

import (
	"errors"

	"slot-booking-manager/internal/domain/slot"

	"github.com/go-playground/validator/v10"
)

const (
	tagBookerName = "booker_name"
	tagSlotNotes  = "slot_notes"
)

// FieldViolation is the per-field detail returned with a 400.
type FieldViolation struct {
	Field  string `json:"field"`
	Rule   string `json:"rule"`
	Reason string `json:"reason,omitempty"`
}

// RegisterValidators adds the slot binding tags to v.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation(tagBookerName, func(fl validator.FieldLevel) bool {
		_, err := slot.NewBookerName(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation(tagSlotNotes, func(fl validator.FieldLevel) bool {
		_, err := slot.NewNotes(fl.Field().String())
		return err == nil
	})
}

// Violations turns a binding error into field details. It returns nil for
// errors that are not validation failures (malformed JSON and the like).
func Violations(err error) []FieldViolation {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldViolation{
			Field:  fe.Field(),
			Rule:   fe.Tag(),
			Reason: reason(fe),
		})
	}
	return out
}

func reason(fe validator.FieldError) string {
	value, _ := fe.Value().(string)
	switch fe.Tag() {
	case tagBookerName:
		if _, err := slot.NewBookerName(value); err != nil {
			return err.Error()
		}
	case tagSlotNotes:
		if _, err := slot.NewNotes(value); err != nil {
			return err.Error()
		}
	case "required":
		return "is required"
	}
	return ""
}
