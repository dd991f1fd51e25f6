// Package extractor converts raw resume documents into plain text.
//
// It decodes PDF and DOCX payloads by straight sequential text
// concatenation: per-page text in page order for PDF, per-paragraph text
// (each followed by a newline) for DOCX. No OCR and no layout
// reconstruction. This is the only stage of the pipeline that can fail.
package extractor

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/resume-insight/internal/domain"
	"github.com/fairyhunter13/resume-insight/pkg/textx"
)

// Extractor decodes raw documents into plain text.
type Extractor struct{}

// New constructs an Extractor.
func New() *Extractor { return &Extractor{} }

// Extract returns the plain text of the document.
//
// The declared format is checked before any decoding: an unknown format
// fails with domain.ErrUnsupportedFormat without touching the payload.
// Decoder faults surface as domain.ErrExtractionFailure wrapping the
// cause, and a decode that yields only whitespace fails with
// domain.ErrEmptyExtraction.
func (e *Extractor) Extract(ctx context.Context, doc domain.RawDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch doc.Format {
	case domain.FormatPDF:
		text, err = extractPDF(doc.Data)
	case domain.FormatDOCX:
		text, err = extractDOCX(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, doc.Format)
	}
	if err != nil {
		return "", fmt.Errorf("%w: format=%s: %v", domain.ErrExtractionFailure, doc.Format, err)
	}

	// PDF decoders occasionally leak control bytes into the text.
	text = textx.SanitizeText(textx.NormalizeNewlines(text))
	if text == "" {
		return "", fmt.Errorf("%w: format=%s", domain.ErrEmptyExtraction, doc.Format)
	}
	return text, nil
}
