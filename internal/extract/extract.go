// Package extract pulls raw text out of stored contract documents.
package extract

import (
	"fmt"

	"github.com/vclens/vclens/internal/store"
)

// Text extracts the raw text of the document at path.
// An empty result means the document has no usable text (e.g. a scanned
// PDF); callers must treat that as a hard error, not a retry condition.
func Text(path string, kind store.Kind) (string, error) {
	switch kind {
	case store.KindPDF:
		return pdfText(path)
	case store.KindDOCX:
		return docxText(path)
	default:
		return "", fmt.Errorf("%w: %q", store.ErrUnsupportedKind, kind)
	}
}
