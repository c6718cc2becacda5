package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator whose error messages name fields by their
// json tag, matching the wire-level field names clients actually send.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// violationMessages converts a validator error into the full list of
// user-facing field messages. Validation is not fail-fast: every violated
// field produces its own message.
func violationMessages(err error) []string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"Datos de la petición inválidos"}
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("El campo '%s' es obligatorio", fe.Field())
	case "email":
		return "El formato del email no es válido"
	case "min":
		if fe.Field() == "password" || fe.Field() == "nuevaPassword" {
			return "La contraseña debe tener al menos 6 caracteres"
		}
		return fmt.Sprintf("El campo '%s' es demasiado corto", fe.Field())
	case "gt":
		return fmt.Sprintf("El campo '%s' debe ser un número entero válido", fe.Field())
	default:
		return fmt.Sprintf("El campo '%s' no es válido", fe.Field())
	}
}
