// Package extractor turns uploaded images and PDFs into plain text.
//
// PDF pages carrying a text layer are read directly; pages without one are
// rasterised and passed through OCR. Images always go through OCR.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultDPI is the rasterisation resolution for scanned PDF pages.
const DefaultDPI = 300

// Mode tells how the text of a page was obtained.
type Mode string

const (
	ModeDigital Mode = "Digital Text"
	ModeScanned Mode = "Scanned OCR"
)

// Kind is the coarse media family derived from a content type.
type Kind int

const (
	KindUnsupported Kind = iota
	KindImage
	KindPDF
)

// KindOf classifies a content type. "image" takes precedence over "pdf".
func KindOf(contentType string) Kind {
	switch {
	case strings.Contains(contentType, "image"):
		return KindImage
	case strings.Contains(contentType, "pdf"):
		return KindPDF
	default:
		return KindUnsupported
	}
}

// UnsupportedMediaTypeError is returned for content types that are neither images nor PDFs.
type UnsupportedMediaTypeError struct {
	ContentType string
}

func (e *UnsupportedMediaTypeError) Error() string {
	return "Unsupported file type: " + e.ContentType
}

// Page records how one PDF page was read.
type Page struct {
	Number int
	Mode   Mode
}

// Result is the outcome of an extraction.
type Result struct {
	// Text is the concatenated raw text, page headers included for PDFs.
	Text string
	// Summary is a short human-readable description of what was done.
	Summary string
	// Pages is empty for images.
	Pages []Page
}

// Extractor extracts raw text from file bytes.
type Extractor interface {
	Extract(ctx context.Context, data []byte, filename, contentType string) (*Result, error)
}

type hybridExtractor struct {
	recognizer Recognizer
	open       Opener
	dpi        float64
}

// New builds an Extractor. A non-positive dpi falls back to DefaultDPI.
func New(recognizer Recognizer, open Opener, dpi int) Extractor {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &hybridExtractor{recognizer: recognizer, open: open, dpi: float64(dpi)}
}

func (e *hybridExtractor) Extract(ctx context.Context, data []byte, filename, contentType string) (*Result, error) {
	kind := KindOf(contentType)
	if kind == KindUnsupported {
		return nil, &UnsupportedMediaTypeError{ContentType: contentType}
	}

	ctx, span := otel.Tracer("notepilot/extractor").Start(ctx, "extractor.Extract")
	defer span.End()
	span.SetAttributes(
		attribute.String("file.name", filename),
		attribute.String("file.content_type", contentType),
		attribute.Int("file.size", len(data)),
	)

	var (
		res *Result
		err error
	)
	if kind == KindImage {
		res, err = e.extractImage(ctx, data, filename)
	} else {
		res, err = e.extractPDF(ctx, data, filename)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("pdf.pages", len(res.Pages)))
	return res, nil
}

func (e *hybridExtractor) extractImage(ctx context.Context, data []byte, filename string) (*Result, error) {
	normalized, err := normalizeImage(data)
	if err != nil {
		return nil, err
	}
	text, err := e.recognizer.Recognize(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("recognize image: %w", err)
	}
	return &Result{
		Text:    text,
		Summary: fmt.Sprintf("Image '%s' OCR extracted.", filename),
	}, nil
}

func (e *hybridExtractor) extractPDF(ctx context.Context, data []byte, filename string) (*Result, error) {
	doc, err := e.open(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]Page, 0, n)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, mode, err := e.readPage(ctx, doc, i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		fmt.Fprintf(&sb, "\n--- Page %d (%s) ---\n%s", i+1, mode, text)
		pages = append(pages, Page{Number: i + 1, Mode: mode})
	}

	return &Result{
		Text:    sb.String(),
		Summary: fmt.Sprintf("PDF '%s' extracted (Hybrid Text + OCR).", filename),
		Pages:   pages,
	}, nil
}

// readPage prefers the text layer and rasterises only when it is blank.
func (e *hybridExtractor) readPage(ctx context.Context, doc Document, i int) (string, Mode, error) {
	text, err := doc.Text(i)
	if err != nil {
		return "", "", fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) != "" {
		return text, ModeDigital, nil
	}

	img, err := doc.ImageDPI(i, e.dpi)
	if err != nil {
		return "", "", fmt.Errorf("render: %w", err)
	}
	png, err := encodePNG(img)
	if err != nil {
		return "", "", err
	}
	ocrText, err := e.recognizer.Recognize(ctx, png)
	if err != nil {
		return "", "", fmt.Errorf("recognize: %w", err)
	}
	return ocrText, ModeScanned, nil
}
