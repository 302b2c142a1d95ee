package extractor

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"notepilot/internal/config"
)

// Recognizer runs OCR over an encoded image and returns the raw recognised text.
type Recognizer interface {
	Recognize(ctx context.Context, img []byte) (string, error)
}

// Tesseract recognises images with a fixed language and page segmentation mode.
// A fresh client is created per call, so it is safe for concurrent use.
type Tesseract struct {
	language      string
	psm           gosseract.PageSegMode
	clientFactory func() *gosseract.Client
}

// NewTesseract builds a Tesseract recognizer from the OCR settings.
func NewTesseract(cfg config.OCRConfig) *Tesseract {
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	psm := gosseract.PageSegMode(cfg.PSM)
	if cfg.PSM <= 0 {
		psm = gosseract.PSM_SINGLE_BLOCK
	}
	return &Tesseract{language: lang, psm: psm, clientFactory: gosseract.NewClient}
}

// Recognize returns Tesseract's output as is, without trimming.
func (t *Tesseract) Recognize(ctx context.Context, img []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := t.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := c.SetPageSegMode(t.psm); err != nil {
		return "", fmt.Errorf("set page seg mode: %w", err)
	}
	if err := c.SetImageFromBytes(img); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
