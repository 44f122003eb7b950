package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	itemValidator *validator.Validate
)

// problemMessages maps "<StructField>.<tag>" to the message reported for
// that violation.
var problemMessages = map[string]string{
	"Name.notblank":             "Name cannot be empty.",
	"Name.max":                  "Name cannot be more than 50 characters.",
	"Description.notblank":      "Description cannot be empty.",
	"Category.enum":             "Category is not a recognized category.",
	"Action.enum":               "Action is not a recognized action.",
	"DateAdded.calendardate":    "Date added is not a valid date.",
	"LastUpdated.calendardate":  "Last updated is not a valid date.",
	"DateAcquired.calendardate": "Date acquired is not a valid date.",
	"PurchasePrice.gte":         "Purchase price cannot be negative.",
	"EstimatedValue.gte":        "Estimated value cannot be negative.",
}

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		// notblank rejects strings that are empty after trimming whitespace.
		mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		// Dates are validated in their text form so that a stored value
		// always parses back.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			return field.Interface().(Date).String()
		}, Date{})
		mustRegister(v, "calendardate", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		})
		mustRegister(v, "enum", func(fl validator.FieldLevel) bool {
			e, ok := fl.Field().Interface().(interface{ Valid() bool })
			return ok && e.Valid()
		})
		itemValidator = v
	})
	return itemValidator
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s: %v", tag, err))
	}
}

// Validate checks the business rules of an item and returns nil or a
// *ValidationError listing every violation in field order. Each field
// reports at most one problem.
func (i Item) Validate() error {
	err := getValidator().Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating item: %w", err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := problemMessages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s failed the %s rule.", fe.StructField(), fe.Tag())
		}
		problems = append(problems, msg)
	}
	return &ValidationError{Problems: problems}
}
