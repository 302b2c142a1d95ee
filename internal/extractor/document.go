package extractor

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

// Document is a paged document handle. Page indexes are zero-based.
type Document interface {
	NumPage() int
	Text(page int) (string, error)
	ImageDPI(page int, dpi float64) (*image.RGBA, error)
	Close() error
}

// Opener opens an in-memory PDF.
type Opener func(data []byte) (Document, error)

// OpenMuPDF opens data with MuPDF.
func OpenMuPDF(data []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
