package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/richardlehane/mscfb"
)

// ErrLegacyFormat indicates a binary PowerPoint 97-2003 (.ppt) file.
var ErrLegacyFormat = errors.New("legacy binary presentation format")

// ErrEncrypted indicates a password-protected OOXML package.
var ErrEncrypted = errors.New("presentation is encrypted")

// cfbSignature is the header of an OLE compound file.
var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// probeContainer checks the container format before zip parsing so callers
// get a specific reason when the input is not a pptx package.
func probeContainer(r io.ReaderAt, size int64) error {
	header := make([]byte, 8)
	n, err := r.ReadAt(header, 0)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	header = header[:n]

	switch {
	case isZip(header):
		return nil
	case bytes.Equal(header, cfbSignature):
		return probeCompoundFile(io.NewSectionReader(r, 0, size))
	default:
		return ErrInvalidFormat
	}
}

// probeCompoundFile classifies an OLE compound file by its stream names.
func probeCompoundFile(r io.ReaderAt) error {
	doc, err := mscfb.New(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "EncryptedPackage", "EncryptionInfo":
			return ErrEncrypted
		case "PowerPoint Document":
			return ErrLegacyFormat
		}
	}
	return ErrInvalidFormat
}
