package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxDocumentPath = "word/document.xml"

// docxText joins every paragraph's text with a newline, in document order,
// including empty paragraphs as empty lines. A DOCX file is a zip archive;
// the body lives in word/document.xml as WordprocessingML, where <w:p> is a
// paragraph and <w:t> holds run text.
func docxText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer zr.Close()

	var body io.ReadCloser
	for _, f := range zr.File {
		if f.Name == docxDocumentPath {
			body, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to open %s: %w", docxDocumentPath, err)
			}
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("invalid DOCX %s: missing %s", path, docxDocumentPath)
	}
	defer body.Close()

	return documentText(body)
}

// documentText walks the WordprocessingML token stream and collects
// paragraph text.
func documentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					current.WriteByte('\t')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inPara {
					paragraphs = append(paragraphs, current.String())
				}
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
