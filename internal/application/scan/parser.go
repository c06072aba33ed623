package scan

import (
	"regexp"
	"strconv"
	"strings"
)

// parsedLine renglón bruto detectado en el texto OCR, antes del matching
// contra el catálogo.
type parsedLine struct {
	RawText  string
	SKUGuess string
	Text     string
	Quantity int64
}

var (
	// Etiqueta de remesa: "Remesa: ABC-123", "Shipment #2024-001", "Guía 555".
	shipmentIDRe = regexp.MustCompile(`(?i)(?:remesa|shipment|gu[ií]a|env[ií]o|albar[aá]n)\s*(?:id|#|n[oº°]\.?|:)?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9_/-]{1,31})`)

	// Cantidad al final del renglón: "Tornillo M6 x 24", "Cable UTP 12 uds".
	trailingQtyRe = regexp.MustCompile(`(?i)[x×*]?\s*(\d{1,6})\s*(?:uds?|unidades|pcs?|piezas|cajas|u)?\.?\s*$`)

	// Cantidad al inicio: "24 Tornillo M6", "12x Cable UTP".
	leadingQtyRe = regexp.MustCompile(`(?i)^(\d{1,6})\s*[x×*]?\s+(.+)$`)

	// Token con pinta de SKU: mayúsculas/dígitos con guion o dígitos intercalados.
	skuTokenRe = regexp.MustCompile(`^[A-Z0-9]{2,}(?:[-_][A-Z0-9]+)+$|^[A-Z]+\d+[A-Z0-9]*$|^\d+[A-Z]+[A-Z0-9]*$`)
)

// parseShipmentID busca una etiqueta de remesa en el texto completo.
// Devuelve cadena vacía si no encuentra nada plausible.
func parseShipmentID(text string) string {
	m := shipmentIDRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// parseLines convierte el texto OCR en renglones candidatos. Heurísticas de
// mejor esfuerzo: se descartan renglones sin cantidad ni texto útil, nunca se
// falla por texto raro.
func parseLines(text string) []parsedLine {
	var out []parsedLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || len(line) < 3 {
			continue
		}
		if shipmentIDRe.MatchString(line) && len(strings.Fields(line)) <= 4 {
			// Renglón de cabecera, no de mercancía.
			continue
		}
		qty := int64(1)
		body := line
		if m := leadingQtyRe.FindStringSubmatch(line); m != nil {
			if n, err := strconv.ParseInt(m[1], 10, 64); err == nil && n > 0 {
				qty = n
				body = strings.TrimSpace(m[2])
			}
		} else if m := trailingQtyRe.FindStringSubmatch(line); m != nil {
			if n, err := strconv.ParseInt(m[1], 10, 64); err == nil && n > 0 {
				qty = n
				body = strings.TrimSpace(line[:len(line)-len(m[0])])
			}
		}
		if body == "" {
			continue
		}
		out = append(out, parsedLine{
			RawText:  line,
			SKUGuess: guessSKU(body),
			Text:     body,
			Quantity: qty,
		})
	}
	return out
}

// guessSKU busca el primer token del renglón con forma de SKU.
func guessSKU(body string) string {
	for _, tok := range strings.Fields(body) {
		tok = strings.Trim(tok, ".,;:()[]")
		if skuTokenRe.MatchString(strings.ToUpper(tok)) {
			return tok
		}
	}
	return ""
}
