// Package validation checks raw JSON payloads against the catalog field rules.
//
// The same rule table drives both create (Full) and patch (Partial) validation:
// in Full mode every required field must be present, in Partial mode absent
// fields are skipped. Type checks run first, then the go-playground/validator
// tag attached to the field.
package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"catalogo/internal/apierror"
	"catalogo/internal/dto"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Mode selects between full (create) and partial (update) validation.
type Mode int

const (
	Full Mode = iota
	Partial
)

type tipo int

const (
	texto tipo = iota
	numero
	booleano
)

type regla struct {
	campo     string
	tipo      tipo
	requerido bool
	tag       string

	msgRequerido string
	msgTipo      string
	msgTag       map[string]string
}

var validate = validator.New()

var reglasProducto = []regla{
	{
		campo: "nombre", tipo: texto, requerido: true, tag: "min=1",
		msgRequerido: "El nombre es requerido",
		msgTipo:      "El nombre debe ser un string",
		msgTag:       map[string]string{"min": "El nombre no puede estar vacío"},
	},
	{
		campo: "precio", tipo: numero, requerido: true, tag: "gt=0",
		msgRequerido: "El precio es requerido",
		msgTipo:      "El precio debe ser un número",
		msgTag:       map[string]string{"gt": "El precio debe ser mayor a cero"},
	},
	{
		campo: "descripcion", tipo: texto, requerido: true, tag: "min=10",
		msgRequerido: "La descripción es requerida",
		msgTipo:      "La descripción debe ser un string",
		msgTag:       map[string]string{"min": "La descripción debe tener mínimo 10 caracteres"},
	},
	{
		campo: "categoria", tipo: texto, requerido: true, tag: "min=1",
		msgRequerido: "La categoría es requerida",
		msgTipo:      "La categoría debe ser un string",
		msgTag:       map[string]string{"min": "La categoría no puede estar vacía"},
	},
	{
		campo: "disponible", tipo: booleano,
		msgTipo: "El campo disponible debe ser un boolean",
	},
}

var reglasCategoria = []regla{
	{
		campo: "nombre", tipo: texto, requerido: true, tag: "min=3,max=50",
		msgRequerido: "El nombre es requerido",
		msgTipo:      "El nombre debe ser un texto",
		msgTag: map[string]string{
			"min": "El nombre debe tener al menos 3 caracteres",
			"max": "El nombre no puede exceder los 50 caracteres",
		},
	},
}

// Producto validates a product payload and returns the normalized input.
// A non-empty issue list means the input must be rejected.
func Producto(raw map[string]any, mode Mode) (dto.ProductoInput, []apierror.Issue) {
	vals, issues := evaluar(raw, reglasProducto, mode)
	if len(issues) > 0 {
		return dto.ProductoInput{}, issues
	}

	var in dto.ProductoInput
	if v, ok := vals["nombre"].(string); ok {
		in.Nombre = &v
	}
	if v, ok := vals["precio"].(float64); ok {
		d := decimal.NewFromFloat(v)
		in.Precio = &d
	}
	if v, ok := vals["descripcion"].(string); ok {
		in.Descripcion = &v
	}
	if v, ok := vals["categoria"].(string); ok {
		in.Categoria = &v
	}
	if v, ok := vals["disponible"].(bool); ok {
		in.Disponible = &v
	}
	return in, nil
}

// Categoria validates a category payload and returns the normalized input.
func Categoria(raw map[string]any, mode Mode) (dto.CategoriaInput, []apierror.Issue) {
	vals, issues := evaluar(raw, reglasCategoria, mode)
	if len(issues) > 0 {
		return dto.CategoriaInput{}, issues
	}

	var in dto.CategoriaInput
	if v, ok := vals["nombre"].(string); ok {
		in.Nombre = &v
	}
	return in, nil
}

// evaluar applies rules in order. Issues follow the rule order so the output
// is deterministic regardless of map iteration.
func evaluar(raw map[string]any, reglas []regla, mode Mode) (map[string]any, []apierror.Issue) {
	vals := make(map[string]any, len(reglas))
	var issues []apierror.Issue

	for _, r := range reglas {
		v, presente := raw[r.campo]
		if !presente {
			if mode == Full && r.requerido {
				issues = append(issues, apierror.Issue{Field: r.campo, Message: r.msgRequerido})
			}
			continue
		}

		typed, ok := convertir(v, r.tipo)
		if !ok {
			issues = append(issues, apierror.Issue{Field: r.campo, Message: r.msgTipo, Received: v})
			continue
		}

		if r.tag != "" {
			if err := validate.Var(typed, r.tag); err != nil {
				issues = append(issues, apierror.Issue{Field: r.campo, Message: r.mensaje(err), Received: v})
				continue
			}
		}
		vals[r.campo] = typed
	}
	return vals, issues
}

func (r regla) mensaje(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := r.msgTag[verrs[0].Tag()]; ok {
			return msg
		}
	}
	return r.msgTipo
}

// convertir checks the dynamic type of a decoded JSON value. Strings are trimmed.
func convertir(v any, t tipo) (any, bool) {
	switch t {
	case texto:
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		return strings.TrimSpace(s), true
	case numero:
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			f, err := n.Float64()
			return f, err == nil
		}
		return nil, false
	case booleano:
		b, ok := v.(bool)
		return b, ok
	}
	return nil, false
}
