// Package store persists uploaded contract documents on the filesystem and
// resolves document identifiers for later chat requests.
package store

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// Kind is the declared media kind of a stored document.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

var (
	// ErrNotFound indicates the document identifier is not in the store.
	ErrNotFound = errors.New("document not found")

	// ErrUnsupportedKind indicates a file extension that is neither PDF nor DOCX.
	ErrUnsupportedKind = errors.New("unsupported document kind")
)

// Document describes a stored upload.
type Document struct {
	// ID addresses the document in the store. In the flat layout this is
	// the file name; in the contract-id layout it is a generated uuid.
	ID       string
	FileName string
	Path     string
	Kind     Kind
}

// KindOf maps a file name to its document kind by extension.
func KindOf(fileName string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	default:
		return "", ErrUnsupportedKind
	}
}

// Store is the upload/session store. Documents are immutable once saved and
// are never deleted; a second save under the same name overwrites it
// (last writer wins, no locking).
type Store interface {
	// Save persists an uploaded file and returns its document record.
	Save(fileName string, src io.Reader) (Document, error)

	// List returns all stored documents with a recognized extension.
	List() ([]Document, error)

	// Resolve looks up a document by identifier. It returns ErrNotFound for
	// an unknown identifier and ErrUnsupportedKind for an unrecognized
	// extension.
	Resolve(id string) (Document, error)
}
