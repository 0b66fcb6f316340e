// Package report renders posts to simple PDF documents.
package report

import (
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/V2-Digital/v2-ai-mcp/internal/post"
)

// WritePost renders p as a minimal single-column PDF: title, byline, then the
// body paragraph by paragraph. No attempt is made at rich layout.
func WritePost(p post.Post, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, p.Title, "", "L", false)

	meta := strings.TrimSpace(p.Author + "  " + p.Date)
	if meta != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, meta, "", "L", false)
	}
	if p.URL != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.WriteLinkString(5, p.URL, p.URL)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, paragraph := range strings.Split(p.Content, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		pdf.MultiCell(0, 5, paragraph, "", "L", false)
		pdf.Ln(3)
	}

	return pdf.OutputFileAndClose(outPath)
}
