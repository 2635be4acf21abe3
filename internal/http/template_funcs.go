package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"strconv"
	"strings"

	"github.com/medipharm/medipharm-console/internal/domain/model"
)

// templateFuncs returns the helpers available to every template. current
// resolves the parsed set lazily so renderSection can execute siblings.
func templateFuncs(current func() *template.Template) template.FuncMap {
	return template.FuncMap{
		"renderSection": func(page string, data any) (template.HTML, error) {
			t := current()
			if t == nil {
				return "", errors.New("template not initialized")
			}
			var buf bytes.Buffer
			if err := t.ExecuteTemplate(&buf, ContentTemplateFor(page), data); err != nil {
				return "", err
			}
			// #nosec G203 - produced by our own html/template set; values were escaped during execution.
			return template.HTML(buf.String()), nil
		},
		"formatNumber":    formatNumber,
		"formatPrice":     formatPrice,
		"percentOf":       percentOf,
		"deref":           deref,
		"formLabel":       formLabel,
		"join":            strings.Join,
		"themes":          Themes,
		"medicationForms": model.MedicationForms,
	}
}

// formatNumber groups thousands with commas: 12345 -> "12,345".
func formatNumber(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

// formatPrice renders an amount in CFA francs, which have no minor unit.
func formatPrice(v float64) string {
	return formatNumber(int(v+0.5)) + " FCFA"
}

// percentOf returns n as a whole percentage of max, clamped to 0..100.
func percentOf(n, maxN int) int {
	if maxN <= 0 || n <= 0 {
		return 0
	}
	if n >= maxN {
		return 100
	}
	return n * 100 / maxN
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// formLabel turns a backend form code into its label; unknown codes pass through.
func formLabel(code string) string {
	if f, ok := model.ParseMedicationForm(code); ok {
		return f.Label()
	}
	return code
}
