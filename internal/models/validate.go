package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// formValidate is shared by every form type; validator.Validate caches struct metadata.
var formValidate *validator.Validate

func init() {
	formValidate = validator.New()
	formValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Normalize trims surrounding whitespace from the identifying fields
func (f *ItemForm) Normalize() {
	f.Series = strings.TrimSpace(f.Series)
	f.Issue = strings.TrimSpace(f.Issue)
	f.ConditionID = strings.TrimSpace(f.ConditionID)
	f.PurchasePrice = strings.TrimSpace(f.PurchasePrice)
	f.CurrentValue = strings.TrimSpace(f.CurrentValue)
}

// Validate checks required and length constraints and returns a readable error
func (f *ItemForm) Validate() error {
	err := formValidate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
