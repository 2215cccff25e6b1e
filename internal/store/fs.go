package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Layout selects how the filesystem store keys documents.
type Layout string

const (
	// LayoutFlat stores uploads directly under the root, keyed by file name.
	LayoutFlat Layout = "flat"

	// LayoutContractID stores each upload in its own uuid-named directory
	// and uses the uuid as the document identifier.
	LayoutContractID Layout = "contract-id"
)

// FSStore is a filesystem-backed Store.
type FSStore struct {
	root   string
	layout Layout
}

var _ Store = (*FSStore)(nil)

// NewFSStore creates a store rooted at dir, creating it if absent.
func NewFSStore(dir string, layout Layout) (*FSStore, error) {
	switch layout {
	case LayoutFlat, LayoutContractID:
	case "":
		layout = LayoutFlat
	default:
		return nil, fmt.Errorf("unknown storage layout: %q", layout)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &FSStore{root: dir, layout: layout}, nil
}

// Root returns the store's root directory.
func (s *FSStore) Root() string { return s.root }

// Save persists src under fileName. In the contract-id layout a fresh uuid
// directory is created per upload, so identical file names never collide.
func (s *FSStore) Save(fileName string, src io.Reader) (Document, error) {
	kind, err := KindOf(fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s", err, fileName)
	}

	// Uploaded names are caller-supplied; keep only the base name.
	fileName = filepath.Base(fileName)

	id := fileName
	dir := s.root
	if s.layout == LayoutContractID {
		id = uuid.NewString()
		dir = filepath.Join(s.root, id)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Document{}, fmt.Errorf("failed to create contract directory: %w", err)
		}
	}

	path := filepath.Join(dir, fileName)
	dst, err := os.Create(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return Document{}, fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return Document{}, fmt.Errorf("failed to close file: %w", err)
	}

	return Document{ID: id, FileName: fileName, Path: path, Kind: kind}, nil
}

// List returns stored documents, filtered to recognized extensions.
func (s *FSStore) List() ([]Document, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		switch s.layout {
		case LayoutFlat:
			if entry.IsDir() {
				continue
			}
			kind, err := KindOf(entry.Name())
			if err != nil {
				continue
			}
			docs = append(docs, Document{
				ID:       entry.Name(),
				FileName: entry.Name(),
				Path:     filepath.Join(s.root, entry.Name()),
				Kind:     kind,
			})
		case LayoutContractID:
			if !entry.IsDir() {
				continue
			}
			doc, err := s.docInDir(entry.Name())
			if err != nil {
				continue
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// Resolve looks up a document by identifier.
func (s *FSStore) Resolve(id string) (Document, error) {
	// Identifiers come from URL paths; refuse anything that escapes the root.
	if id != filepath.Base(id) || id == "." || id == ".." {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	switch s.layout {
	case LayoutContractID:
		if _, err := os.Stat(filepath.Join(s.root, id)); err != nil {
			return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return s.docInDir(id)
	default:
		kind, err := KindOf(id)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %s", err, id)
		}
		path := filepath.Join(s.root, id)
		if _, err := os.Stat(path); err != nil {
			return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Document{ID: id, FileName: id, Path: path, Kind: kind}, nil
	}
}

// docInDir finds the stored document inside a contract-id directory.
func (s *FSStore) docInDir(id string) (Document, error) {
	dir := filepath.Join(s.root, id)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind, err := KindOf(entry.Name())
		if err != nil {
			continue
		}
		return Document{
			ID:       id,
			FileName: entry.Name(),
			Path:     filepath.Join(dir, entry.Name()),
			Kind:     kind,
		}, nil
	}
	return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
