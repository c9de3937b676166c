// Package display holds the surfaces a widget renders its output into.
// Every Show replaces the whole content of the surface.
package display

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// ErrNoSurface is returned when a surface is built without a destination
var ErrNoSurface = errors.New("display surface has no destination")

// Surface is the region a widget writes its messages to
type Surface interface {
	// Show replaces the surface content with text
	Show(text string) error
}

// WriterSurface prints each message to a stream, one block per Show
type WriterSurface struct {
	w io.Writer
}

// NewWriterSurface creates a surface printing to w
func NewWriterSurface(w io.Writer) (*WriterSurface, error) {
	if w == nil {
		return nil, ErrNoSurface
	}
	return &WriterSurface{w: w}, nil
}

// Show implements Surface
func (s *WriterSurface) Show(text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		return fmt.Errorf("writing to display: %w", err)
	}
	return nil
}

// FileSurface keeps the current message in a file. Readers never see a
// partially written message.
type FileSurface struct {
	fs   afero.Fs
	path string
}

// NewFileSurface creates a file-backed surface, creating the parent directory
func NewFileSurface(fs afero.Fs, path string) (*FileSurface, error) {
	if path == "" {
		return nil, ErrNoSurface
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating display directory: %w", err)
	}
	return &FileSurface{fs: fs, path: path}, nil
}

// Show implements Surface by writing a temp file and renaming it over path
func (s *FileSurface) Show(text string) error {
	tmpPath := s.path + ".tmp"

	if err := afero.WriteFile(s.fs, tmpPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing display file: %w", err)
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		s.fs.Remove(tmpPath)
		return fmt.Errorf("replacing display file: %w", err)
	}
	return nil
}

// Path returns the file the surface writes to
func (s *FileSurface) Path() string {
	return s.path
}

// MemorySurface keeps the last message in memory
type MemorySurface struct {
	mu    sync.Mutex
	text  string
	shown int
}

// NewMemorySurface creates an empty MemorySurface
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

// Show implements Surface
func (s *MemorySurface) Show(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.shown++
	return nil
}

// Text returns the current content
func (s *MemorySurface) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Shown returns how many times the content was replaced
func (s *MemorySurface) Shown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown
}

// Multi fans a message out to several surfaces, stopping at the first error
type Multi []Surface

// Show implements Surface
func (m Multi) Show(text string) error {
	for _, s := range m {
		if err := s.Show(text); err != nil {
			return err
		}
	}
	return nil
}
