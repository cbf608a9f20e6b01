package dto

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// TimestampLayout formato de fechas en las respuestas: UTC, precisión de segundos, sufijo Z.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Timestamp serializa un time.Time con TimestampLayout.
type Timestamp time.Time

// MarshalJSON implementa json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(TimestampLayout) + `"`), nil
}

// Time devuelve el valor como time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// String devuelve la fecha con TimestampLayout.
func (t Timestamp) String() string {
	return time.Time(t).UTC().Format(TimestampLayout)
}

// ErrorResponse cuerpo de error HTTP. Fields solo se envía en errores de validación.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// normalizeText recorta espacios y normaliza a Unicode NFC.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
