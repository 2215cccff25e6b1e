package store

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{"contract.pdf", KindPDF, false},
		{"Contract.PDF", KindPDF, false},
		{"contract.docx", KindDOCX, false},
		{"contract.DOCX", KindDOCX, false},
		{"contract.txt", "", true},
		{"contract", "", true},
		{"contract.doc", "", true},
	}

	for _, tt := range tests {
		kind, err := KindOf(tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedKind) {
				t.Errorf("KindOf(%q) error = %v, want ErrUnsupportedKind", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("KindOf(%q) error = %v", tt.name, err)
			continue
		}
		if kind != tt.want {
			t.Errorf("KindOf(%q) = %q, want %q", tt.name, kind, tt.want)
		}
	}
}

func TestFSStore_Flat(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), LayoutFlat)
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}

	doc, err := s.Save("a.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if doc.ID != "a.pdf" || doc.FileName != "a.pdf" || doc.Kind != KindPDF {
		t.Errorf("unexpected document: %+v", doc)
	}

	if _, err := s.Save("b.docx", strings.NewReader("docx bytes")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Run("list returns exactly the uploaded names", func(t *testing.T) {
		docs, err := s.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		names := make([]string, len(docs))
		for i, d := range docs {
			names[i] = d.ID
		}
		sort.Strings(names)
		want := []string{"a.pdf", "b.docx"}
		if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
			t.Errorf("List() = %v, want %v", names, want)
		}
	})

	t.Run("resolve known id", func(t *testing.T) {
		doc, err := s.Resolve("a.pdf")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if doc.Kind != KindPDF {
			t.Errorf("Resolve() kind = %q, want %q", doc.Kind, KindPDF)
		}
	})

	t.Run("resolve unknown id", func(t *testing.T) {
		if _, err := s.Resolve("unknown.pdf"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("resolve unsupported extension", func(t *testing.T) {
		if _, err := s.Resolve("notes.txt"); !errors.Is(err, ErrUnsupportedKind) {
			t.Errorf("Resolve() error = %v, want ErrUnsupportedKind", err)
		}
	})

	t.Run("save rejects unsupported extension", func(t *testing.T) {
		if _, err := s.Save("notes.txt", strings.NewReader("x")); !errors.Is(err, ErrUnsupportedKind) {
			t.Errorf("Save() error = %v, want ErrUnsupportedKind", err)
		}
	})

	t.Run("same name overwrites", func(t *testing.T) {
		if _, err := s.Save("a.pdf", strings.NewReader("newer bytes")); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		docs, err := s.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(docs) != 2 {
			t.Errorf("List() returned %d documents after overwrite, want 2", len(docs))
		}
	})
}

func TestFSStore_ContractID(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), LayoutContractID)
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}

	first, err := s.Save("contract.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := s.Save("contract.pdf", strings.NewReader("other bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("identical file names got the same contract id %q", first.ID)
	}
	if first.ID == first.FileName {
		t.Errorf("contract-id layout used file name as id: %q", first.ID)
	}

	docs, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("List() returned %d documents, want 2", len(docs))
	}

	doc, err := s.Resolve(first.ID)
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", first.ID, err)
	}
	if doc.FileName != "contract.pdf" {
		t.Errorf("Resolve() file name = %q, want contract.pdf", doc.FileName)
	}

	if _, err := s.Resolve("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestNewFSStore_UnknownLayout(t *testing.T) {
	if _, err := NewFSStore(t.TempDir(), "ziggurat"); err == nil {
		t.Error("NewFSStore() accepted unknown layout")
	}
}

func TestFSStore_ResolveRejectsPathTraversal(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), LayoutFlat)
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}
	for _, id := range []string{"../etc/passwd.pdf", "..", "a/b.pdf"} {
		if _, err := s.Resolve(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}
