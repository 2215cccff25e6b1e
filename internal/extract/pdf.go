package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
)

// pdfText concatenates the text of every page in document order with no
// separator. Pages that carry only images or undecodable content streams
// contribute nothing.
func pdfText(path string) (string, error) {
	// Validate the file and get the page count up front; a truncated or
	// non-PDF upload fails here rather than deep inside text extraction.
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := pdfcpu.PageCount(f, nil)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("invalid PDF %s: %w", path, err)
	}
	if pageCount == 0 {
		return "", nil
	}

	rf, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}
	defer rf.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or malformed page; the rest may still be usable.
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
