// ABOUTME: Renders invoice text to PDF bytes with a monospace layout
// ABOUTME: Pure-Go via go-pdf/fpdf; availability is a server configuration toggle
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Renderer produces PDF documents from plain invoice text.
type Renderer struct{}

// NewRenderer returns a ready renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render lays the text out line by line in Courier, matching the plain
// monospace presentation of the text invoice.
func (r *Renderer) Render(text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("invoice text is empty")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Courier", "", 11)

	// Core PDF fonts are cp1252; the rupee sign has no glyph there.
	text = strings.ReplaceAll(text, "₹", "Rs. ")

	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(text, "\n") {
		doc.MultiCell(0, 5, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	return buf.Bytes(), nil
}
