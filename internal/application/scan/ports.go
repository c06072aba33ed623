package scan

import "context"

// TextExtractor puerto hacia el servicio OCR externo. Recibe la imagen del
// documento y devuelve el texto plano extraído.
type TextExtractor interface {
	ExtractText(ctx context.Context, imageBase64, mimeType string) (string, error)
}
