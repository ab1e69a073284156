package app

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/dshills/textstorm/internal/engine/buffer"
)

// filePerm is the mode for files the editor creates.
const filePerm = 0o644

// Document represents an open file and its buffer.
type Document struct {
	// Path is the absolute file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "untitled").
	Name string

	// ReadOnly indicates the document cannot be saved.
	ReadOnly bool

	buf *buffer.Buffer

	// savedRev is the buffer revision at the last load or save.
	// Modified compares it against the current revision.
	savedRev atomic.Uint64
}

// NewDocument creates a document over content associated with path.
func NewDocument(path string, content []byte) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "untitled"
	}

	d := &Document{
		Path: path,
		Name: name,
		buf:  buffer.NewBufferFromString(string(content)),
	}
	d.markSaved()
	return d
}

// NewScratchDocument creates a document with no backing file.
func NewScratchDocument() *Document {
	d := &Document{
		Name: "untitled",
		buf:  buffer.NewBuffer(),
	}
	d.markSaved()
	return d
}

// LoadDocument opens the file at path. A missing file yields an empty
// document that keeps the path, so the first save creates it.
func LoadDocument(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(abs, nil), nil
		}
		return nil, NewOperationError("open", abs, err)
	}

	return NewDocument(abs, content), nil
}

// Buffer returns the document's text buffer.
func (d *Document) Buffer() *buffer.Buffer {
	return d.buf
}

// Content returns the full document text.
func (d *Document) Content() string {
	return d.buf.Text()
}

// IsScratch returns true if this document has no backing file.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Modified returns true if the buffer changed since the last load or
// save.
func (d *Document) Modified() bool {
	return uint64(d.buf.RevisionID()) != d.savedRev.Load()
}

// markSaved records the current revision as the saved state.
func (d *Document) markSaved() {
	d.savedRev.Store(uint64(d.buf.RevisionID()))
}

// Save writes the document to its path.
func (d *Document) Save() error {
	if d.ReadOnly {
		return NewOperationError("save", d.Path, ErrReadOnly)
	}
	if d.Path == "" {
		return NewOperationError("save", d.Name, ErrNoPath)
	}

	if err := os.WriteFile(d.Path, []byte(d.buf.Text()), filePerm); err != nil {
		return NewOperationError("save", d.Path, err)
	}
	d.markSaved()
	return nil
}

// SaveAs writes the document to a new path and adopts it.
func (d *Document) SaveAs(path string) error {
	if d.ReadOnly {
		return NewOperationError("save", path, ErrReadOnly)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return NewOperationError("save", path, err)
	}
	if err := os.WriteFile(abs, []byte(d.buf.Text()), filePerm); err != nil {
		return NewOperationError("save", abs, err)
	}

	d.Path = abs
	d.Name = filepath.Base(abs)
	d.markSaved()
	return nil
}
