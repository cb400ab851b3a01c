package slidemd

import (
	"errors"
	"fmt"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

var (
	// ErrInvalidFormat indicates the input is not a pptx package.
	ErrInvalidFormat = parser.ErrInvalidFormat
	// ErrLegacyFormat indicates a binary .ppt file.
	ErrLegacyFormat = parser.ErrLegacyFormat
	// ErrEncrypted indicates a password protected presentation.
	ErrEncrypted = parser.ErrEncrypted
	// ErrNoSlides indicates a presentation without slides.
	ErrNoSlides = parser.ErrNoSlides
)

// DocumentOpenError reports a document that could not be opened or parsed.
// It is the only error that triggers the fallback converter.
type DocumentOpenError struct {
	Path string
	Err  error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *DocumentOpenError) Unwrap() error {
	return e.Err
}

// StructureExtractionError reports a fault while assembling the structured
// data of an opened document.
type StructureExtractionError struct {
	Slide     int
	Component string // "order", "content"
	Err       error
}

func (e *StructureExtractionError) Error() string {
	return fmt.Sprintf("extraction error in slide %d (%s): %v", e.Slide, e.Component, e.Err)
}

func (e *StructureExtractionError) Unwrap() error {
	return e.Err
}

// NewStructureExtractionError creates a new StructureExtractionError.
func NewStructureExtractionError(slide int, component string, err error) *StructureExtractionError {
	return &StructureExtractionError{
		Slide:     slide,
		Component: component,
		Err:       err,
	}
}
