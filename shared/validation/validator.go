// Package validation wraps go-playground/validator with English messages
// and maps failures onto apperror kinds.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/vasapolrittideah/todo-api/shared/apperror"
)

// Validator validates request payloads.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, translator: translator}, nil
}

// Struct validates v. A payload with only missing required fields yields
// apperror.ErrMissingFields' message; any other rule failure reports the
// first translated message. Both are BadRequest.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Wrap(apperror.KindInternal, apperror.ErrInternal.Message, err)
	}

	details := make([]error, 0, len(fieldErrs))
	onlyRequired := true
	for _, fe := range fieldErrs {
		details = append(details, errors.New(fe.Translate(v.translator)))
		if fe.Tag() != "required" {
			onlyRequired = false
		}
	}

	message := apperror.ErrMissingFields.Message
	if !onlyRequired {
		message = details[0].Error()
	}

	return apperror.Wrap(apperror.KindBadRequest, message, errors.Join(details...))
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
