package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/quizdash/quiz-service/internal/models"
)

// Validator wraps struct-tag validation plus the quiz-specific rules the
// tags cannot express.
type Validator struct {
	structValidator *validator.Validate
}

// New creates the shared validator instance.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)
	return &Validator{structValidator: structValidator}
}

// Validate checks struct tags.
func (v *Validator) Validate(s interface{}) error {
	return v.structValidator.Struct(s)
}

// ValidateOptions enforces the question invariant: at least two options,
// none blank, exactly one marked correct.
func (v *Validator) ValidateOptions(opts []models.QuestionOption) error {
	if len(opts) < 2 {
		return errors.New("a question needs at least two options")
	}
	correct := 0
	for i, opt := range opts {
		if strings.TrimSpace(opt.Text) == "" {
			return fmt.Errorf("option %d has no text", i+1)
		}
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("a question needs exactly one correct option, found %d", correct)
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("one_correct", validateOneCorrect)

	// Report json field names in error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateOneCorrect accepts a slice of option structs carrying an IsCorrect
// bool and passes when exactly one of them is set.
func validateOneCorrect(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	correct := 0
	for i := 0; i < field.Len(); i++ {
		item := field.Index(i)
		if item.Kind() == reflect.Ptr {
			item = item.Elem()
		}
		flag := item.FieldByName("IsCorrect")
		if flag.IsValid() && flag.Kind() == reflect.Bool && flag.Bool() {
			correct++
		}
	}
	return correct == 1
}
