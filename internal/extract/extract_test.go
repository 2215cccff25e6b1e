package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vclens/vclens/internal/store"
)

func TestText_UnsupportedKind(t *testing.T) {
	if _, err := Text("whatever", store.Kind("txt")); !errors.Is(err, store.ErrUnsupportedKind) {
		t.Errorf("Text() error = %v, want ErrUnsupportedKind", err)
	}
}

func TestText_MissingFile(t *testing.T) {
	for _, kind := range []store.Kind{store.KindPDF, store.KindDOCX} {
		if _, err := Text(filepath.Join(t.TempDir(), "missing"), kind); err == nil {
			t.Errorf("Text(missing, %s) expected error", kind)
		}
	}
}

func TestText_InvalidPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Text(path, store.KindPDF); err == nil {
		t.Error("Text() accepted a non-PDF file")
	}
}

func TestText_PDFSinglePage(t *testing.T) {
	path := writePDF(t, "Vendor name Acme")

	got, err := Text(path, store.KindPDF)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if !strings.Contains(got, "Vendor name Acme") {
		t.Errorf("Text() = %q, missing page text", got)
	}
}

func TestText_PDFPagesInDocumentOrder(t *testing.T) {
	path := writePDF(t, "Vendor name Acme", "Total value 9000", "Renewal year 2027")

	got, err := Text(path, store.KindPDF)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	pages := []string{"Vendor name Acme", "Total value 9000", "Renewal year 2027"}
	last := -1
	for _, want := range pages {
		idx := strings.Index(got, want)
		if idx < 0 {
			t.Fatalf("Text() = %q, missing %q", got, want)
		}
		if idx < last {
			t.Errorf("Text() = %q, %q appears out of document order", got, want)
		}
		last = idx
	}
}

func TestText_DOCX(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []string
		want       string
	}{
		{
			name:       "paragraphs joined with newline",
			paragraphs: []string{"Master Services Agreement", "Vendor: Acme Corp"},
			want:       "Master Services Agreement\nVendor: Acme Corp",
		},
		{
			name:       "empty paragraphs kept as empty lines",
			paragraphs: []string{"Section 1", "", "Section 2"},
			want:       "Section 1\n\nSection 2",
		},
		{
			name:       "no paragraphs yields empty text",
			paragraphs: nil,
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDOCX(t, tt.paragraphs)
			got, err := Text(path, store.KindDOCX)
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestText_DOCXMultipleRuns(t *testing.T) {
	// A paragraph split into several runs is still a single line.
	body := `<w:p><w:r><w:t>Total contract value: </w:t></w:r><w:r><w:t>120000</w:t></w:r></w:p>`
	path := writeDOCXBody(t, body)

	got, err := Text(path, store.KindDOCX)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := "Total contract value: 120000"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestText_DOCXMissingDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := Text(path, store.KindDOCX); err == nil {
		t.Error("Text() accepted a DOCX without word/document.xml")
	}
}

// writePDF builds a minimal uncompressed PDF with one page of Helvetica
// text per entry, computing the xref offsets as objects are emitted.
func writePDF(t *testing.T, pageTexts ...string) string {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	// Objects: 1 catalog, 2 page tree, 3 font, then a page/contents pair
	// per entry (4+2i, 5+2i).
	kids := make([]string, len(pageTexts))
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), len(pageTexts)))
	addObj("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	for i, text := range pageTexts {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			4+2*i, 5+2*i))
		addObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			5+2*i, len(content), content))
	}

	xrefOffset := buf.Len()
	size := len(offsets) + 1
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", size)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		size, xrefOffset)

	path := filepath.Join(t.TempDir(), "contract.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeDOCX builds a minimal DOCX file with one <w:p> per paragraph.
func writeDOCX(t *testing.T, paragraphs []string) string {
	t.Helper()

	var body string
	for _, p := range paragraphs {
		if p == "" {
			body += "<w:p/>"
			continue
		}
		body += fmt.Sprintf("<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	return writeDOCXBody(t, body)
}

func writeDOCXBody(t *testing.T, body string) string {
	t.Helper()

	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body + `</w:body></w:document>`

	path := filepath.Join(t.TempDir(), "contract.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
