package healthscore

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Magnitude es un valor numérico con su unidad tal como vino en el texto.
type Magnitude struct {
	Value float64
	Unit  string
}

// El signo se conserva: "-1 yrs" es -1, no 1.
var magnitudeRe = regexp.MustCompile(`(-?\d+(?:[.,]\d+)?)\s*([[:alpha:]]+)?`)

// ParseMagnitudeUnit extrae "12.5 kg" -> {12.5, "kg"}, "3 yrs" -> {3, "yrs"}.
// Devuelve false si no hay número; el texto sin número se trata como ausente.
func ParseMagnitudeUnit(text string) (Magnitude, bool) {
	m := magnitudeRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Magnitude{}, false
	}

	v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return Magnitude{}, false
	}

	return Magnitude{Value: v, Unit: strings.ToLower(m[2])}, true
}

// MentionsWeight: heurística sobre texto libre ("Weight check: 12kg").
func MentionsWeight(text string) bool {
	return strings.Contains(strings.ToLower(text), "weight")
}

// MentionsVisit: heurística sobre el título ("Vet visit", "Annual visit").
func MentionsVisit(text string) bool {
	return strings.Contains(strings.ToLower(text), "visit")
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate acepta los formatos que produce la capa de datos.
// Cadena vacía o inválida => false (sin señal), nunca error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
