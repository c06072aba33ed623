package scan

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer quita acentos: NFD + eliminación de marcas combinantes.
// "Tornillería" y "TORNILLERIA" comparan igual.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// catalogEntry vista mínima del catálogo para el matching.
type catalogEntry struct {
	SKU         string
	Description string
}

// matchResult coincidencia contra el catálogo con su confianza [0,1].
type matchResult struct {
	SKU         string
	Description string
	Confidence  float64
}

// matchLine empareja un renglón parseado contra el catálogo. Orden de intento:
// SKU exacto (plegado), SKU como subcadena, solape de palabras con la
// descripción. Devuelve nil si ninguna coincidencia supera el umbral.
func matchLine(line parsedLine, catalog []catalogEntry) *matchResult {
	if line.SKUGuess != "" {
		guess := fold(line.SKUGuess)
		for _, e := range catalog {
			if fold(e.SKU) == guess {
				return &matchResult{SKU: e.SKU, Description: e.Description, Confidence: 1.0}
			}
		}
		for _, e := range catalog {
			es := fold(e.SKU)
			if len(guess) >= 4 && (strings.Contains(es, guess) || strings.Contains(guess, es)) {
				return &matchResult{SKU: e.SKU, Description: e.Description, Confidence: 0.8}
			}
		}
	}
	// Solape de palabras entre el texto del renglón y la descripción.
	words := foldedWords(line.Text)
	if len(words) == 0 {
		return nil
	}
	var best *matchResult
	for _, e := range catalog {
		descWords := foldedWords(e.Description)
		if len(descWords) == 0 {
			continue
		}
		overlap := 0
		for w := range words {
			if descWords[w] {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		denom := len(descWords)
		if len(words) < denom {
			denom = len(words)
		}
		score := float64(overlap) / float64(denom)
		if score >= 0.5 && (best == nil || score > best.Confidence) {
			best = &matchResult{SKU: e.SKU, Description: e.Description, Confidence: score * 0.7}
		}
	}
	return best
}

func foldedWords(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(fold(s)) {
		w = strings.Trim(w, ".,;:()[]")
		if len(w) >= 3 {
			out[w] = true
		}
	}
	return out
}
