package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// rule is a validation tag that ships with every Validator.
type rule struct {
	fn  validator.Func
	msg string
}

var builtinRules = map[string]rule{
	"project_dir": {fn: isProjectDirectory, msg: "{0} must name a new directory: {1}"},
}

// ValidationError is one translated field failure.
type ValidationError struct {
	Field  string
	Detail string
}

func (e ValidationError) Error() string {
	return e.Detail
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("validation error\n")
	for _, e := range ve {
		b.WriteString(e.Detail)
		b.WriteByte('\n')
	}
	return b.String()
}

// Validator checks command inputs and renders failures in English,
// naming fields after their `cli` tag.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() (*Validator, error) {
	locale := en.New()
	trans, ok := ut.New(locale, locale).GetTranslator("en")
	if !ok {
		return nil, errors.New("english translator not found")
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(fieldName)

	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	v := &Validator{validate: validate, trans: trans}
	for tag, r := range builtinRules {
		if err := v.RegisterRule(tag, r.fn, r.msg); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func fieldName(fld reflect.StructField) string {
	if name := fld.Tag.Get("cli"); name != "" {
		return name
	}
	return fld.Name
}

// RegisterRule adds a validation tag backed by fn, translated with msg.
// It suits rules that close over runtime data, like the template catalog.
func (v *Validator) RegisterRule(tag string, fn validator.Func, msg string) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("failed to register validation %s: %w", tag, err)
	}
	return v.RegisterCustomTranslation(tag, msg)
}

// RegisterCustomTranslation replaces the message of tag. {0} is the field
// name and {1} the rejected value.
func (v *Validator) RegisterCustomTranslation(tag, msg string) error {
	err := v.validate.RegisterTranslation(tag, v.trans,
		func(t ut.Translator) error {
			return t.Add(tag, msg, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fmt.Sprint(fe.Value()))
			return s
		},
	)
	if err != nil {
		return fmt.Errorf("failed to register translation for %s: %w", tag, err)
	}
	return nil
}

// Struct validates s. The returned error reads as the translated messages
// and still unwraps to validator.ValidationErrors.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fe.Translate(v.trans))
	}
	return fmt.Errorf("%s: %w", strings.Join(details, "; "), verrs)
}

func (v *Validator) Validate() *validator.Validate {
	return v.validate
}

func (v *Validator) Translator() ut.Translator {
	return v.trans
}

// ParseValidationErrors flattens err into one entry per failed field,
// keyed by struct namespace.
func (v *Validator) ParseValidationErrors(err error) ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	ves := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		ves = append(ves, ValidationError{
			Field:  fe.StructNamespace(),
			Detail: fe.Translate(v.trans),
		})
	}
	return ves
}
