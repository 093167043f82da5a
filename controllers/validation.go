package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"dibs-api/domain"
	"dibs-api/dto"
	"dibs-api/repositories"

	"github.com/gin-gonic/gin"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindDate
)

// fieldSpec describe un campo del body en orden de declaración.
// min/max se aplican a la longitud luego de recortar espacios; 0 = sin límite.
type fieldSpec struct {
	name     string
	kind     fieldKind
	required bool
	min      int
	max      int
	// format es opcional; se evalúa al final con el valor recortado
	format    func(string) bool
	formatMsg string
	// positive exige un número mayor a cero
	positive bool
}

// requestBody guarda los campos crudos para poder distinguir "ausente" de "vacío"
type requestBody map[string]json.RawMessage

var errMalformedBody = errors.New("malformed request body")

// readBody decodifica el body como objeto JSON
func readBody(c *gin.Context) (requestBody, error) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errMalformedBody
	}
	body := requestBody{}
	if len(bytes.TrimSpace(data)) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(data, &body); err != nil || body == nil {
		return nil, errMalformedBody
	}
	return body, nil
}

func (b requestBody) has(field string) bool {
	_, ok := b[field]
	return ok
}

func (b requestBody) str(field string) (string, bool) {
	var s string
	if err := json.Unmarshal(b[field], &s); err != nil {
		return "", false
	}
	return s, true
}

func (b requestBody) number(field string) (int, bool) {
	var n int
	if err := json.Unmarshal(b[field], &n); err != nil {
		return 0, false
	}
	return n, true
}

// validateCreate aplica, en este orden y cortando en el primer error:
// obligatorios, longitud mínima, longitud máxima, tipos y formato.
// Un campo con límites de longitud tiene que ser string; eso se controla en su paso de longitud.
func validateCreate(body requestBody, specs []fieldSpec) *domain.ValidationError {
	// 1. Campos obligatorios
	for _, f := range specs {
		if f.required && !body.has(f.name) {
			return domain.NewValidationError(f.name, "Missing field")
		}
	}

	// 2. Longitud mínima
	for _, f := range specs {
		if f.min == 0 || !body.has(f.name) {
			continue
		}
		s, ok := body.str(f.name)
		if !ok {
			return typeError(f)
		}
		if utf8.RuneCountInString(strings.TrimSpace(s)) < f.min {
			return domain.NewValidationError(f.name, fmt.Sprintf("Must be at least %d characters long", f.min))
		}
	}

	// 3. Longitud máxima
	for _, f := range specs {
		if f.max == 0 || !body.has(f.name) {
			continue
		}
		s, ok := body.str(f.name)
		if !ok {
			return typeError(f)
		}
		if utf8.RuneCountInString(strings.TrimSpace(s)) > f.max {
			return domain.NewValidationError(f.name, fmt.Sprintf("Must be at most %d characters long", f.max))
		}
	}

	// 4. Tipos de los campos sin límites de longitud
	for _, f := range specs {
		if f.min != 0 || f.max != 0 || !body.has(f.name) {
			continue
		}
		var ok bool
		if f.kind == kindNumber {
			_, ok = body.number(f.name)
		} else {
			_, ok = body.str(f.name)
		}
		if !ok {
			return typeError(f)
		}
	}

	// 5. Formato (fechas, enumeraciones, números positivos)
	for _, f := range specs {
		if !body.has(f.name) {
			continue
		}
		if f.kind == kindNumber {
			if n, _ := body.number(f.name); f.positive && n <= 0 {
				return domain.NewValidationError(f.name, "Must be a positive number")
			}
			continue
		}
		s, _ := body.str(f.name)
		if f.kind == kindDate {
			if _, err := parseDate(s); err != nil {
				return domain.NewValidationError(f.name, "Must be a valid date")
			}
		}
		if f.format != nil && !f.format(strings.TrimSpace(s)) {
			return domain.NewValidationError(f.name, f.formatMsg)
		}
	}
	return nil
}

func typeError(f fieldSpec) *domain.ValidationError {
	if f.kind == kindNumber {
		return domain.NewValidationError(f.name, "Incorrect field type: expected number")
	}
	return domain.NewValidationError(f.name, "Incorrect field type: expected string")
}

// updateFields verifica el body de un PUT y arma los campos a reemplazar.
// Devuelve el mensaje de error en texto plano (400) si algo falla.
func updateFields(pathID string, body requestBody, specs []fieldSpec) (repositories.Fields, string) {
	for _, f := range specs {
		if f.required && !body.has(f.name) {
			return nil, fmt.Sprintf("Missing `%s` in request body", f.name)
		}
	}
	if !body.has("id") {
		return nil, "Missing `id` in request body"
	}

	bodyID, ok := body.str("id")
	if !ok || bodyID != pathID {
		return nil, fmt.Sprintf("Request path id (%s) and request body id (%s) must match", pathID, rawText(body["id"], bodyID, ok))
	}

	fields := make(repositories.Fields, len(specs))
	for _, f := range specs {
		if !body.has(f.name) {
			continue
		}
		switch f.kind {
		case kindNumber:
			n, ok := body.number(f.name)
			if !ok {
				return nil, fmt.Sprintf("Incorrect type for `%s`: expected number", f.name)
			}
			fields[f.name] = n
		case kindDate:
			s, ok := body.str(f.name)
			if !ok {
				return nil, fmt.Sprintf("Incorrect type for `%s`: expected string", f.name)
			}
			t, err := parseDate(s)
			if err != nil {
				return nil, fmt.Sprintf("Invalid date for `%s`", f.name)
			}
			fields[f.name] = t
		default:
			s, ok := body.str(f.name)
			if !ok {
				return nil, fmt.Sprintf("Incorrect type for `%s`: expected string", f.name)
			}
			fields[f.name] = s
		}
	}
	return fields, ""
}

// rawText muestra el id del body tal como llegó cuando no es un string
func rawText(raw json.RawMessage, s string, isString bool) string {
	if isString {
		return s
	}
	return string(raw)
}

// dateLayouts son los formatos aceptados para start/end
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// writeValidationError escribe el 422 estructurado
func writeValidationError(c *gin.Context, err *domain.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, err)
}

// writeInternalError escribe el 500 genérico, sin detalles
func writeInternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, dto.MessageResponse{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}
