package customers

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/cs-portfolio/internal/application/dto"
	"github.com/jhoicas/cs-portfolio/internal/domain"
)

// ValidationError errores por campo (nombre JSON → mensaje). Envuelve domain.ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// newValidator reporta los campos con su nombre JSON.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// trimInput recorta los campos de texto antes de validar.
func trimInput(in dto.CustomerInput) dto.CustomerInput {
	in.Name = strings.TrimSpace(in.Name)
	in.CVR = strings.TrimSpace(in.CVR)
	in.CommercialContact = strings.TrimSpace(in.CommercialContact)
	in.AdminContact = strings.TrimSpace(in.AdminContact)
	return in
}

// validateInput aplica las reglas de la entrada ya recortada.
func validateInput(v *validator.Validate, in dto.CustomerInput) error {
	fields := map[string]string{}
	if err := v.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}
	if in.ForecastYearlyRevenue.IsNegative() {
		fields["forecast_yearly_revenue"] = "no puede ser negativo"
	}
	if in.ActualRevenueToDate.IsNegative() {
		fields["actual_revenue_to_date"] = "no puede ser negativo"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "max":
		return fmt.Sprintf("máximo %s caracteres", fe.Param())
	default:
		return fmt.Sprintf("no cumple la regla %q", fe.Tag())
	}
}
