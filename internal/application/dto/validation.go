package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	"github.com/google/uuid"
	"github.com/jhoicas/categories-api/internal/domain"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Los errores se reportan con el nombre JSON del campo.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		o, ok := v.Interface().(OptionalString)
		if !ok || !o.Has() {
			return ""
		}
		return o.Value
	}, OptionalString{})

	// identifier acepta cualquier forma de UUID que entienda uuid.Parse (mayúsculas, sin guiones, urn).
	_ = validate.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		_, err := uuid.Parse(fl.Field().String())
		return err == nil
	})

	// PostgreSQL no admite el carácter NUL en columnas de texto.
	_ = validate.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	})

	locale := es.New()
	uni := ut.New(locale, locale)
	translator, _ = uni.GetTranslator("es")
	_ = es_translations.RegisterDefaultTranslations(validate, translator)

	overrides := map[string]string{
		"required":   MsgRequired,
		"identifier": "debe ser un UUID válido",
		"max":        "no puede tener más de {0} caracteres",
		"nonul":      MsgNullCharacter,
	}
	for tag, text := range overrides {
		tag, text := tag, text
		_ = validate.RegisterTranslation(tag, translator,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, err := t.T(tag, fe.Param())
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		)
	}
}

// validateStruct ejecuta las reglas `validate` y las traduce a mensajes por campo.
func validateStruct(s interface{}) *domain.ValidationError {
	verr := &domain.ValidationError{}
	err := validate.Struct(s)
	if err == nil {
		return verr
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("non_field_errors", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fe.Translate(translator))
	}
	return verr
}
