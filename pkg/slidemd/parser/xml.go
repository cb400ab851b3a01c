// Package parser reads PresentationML packages into the slide document model.
package parser

import (
	"bytes"
	"encoding/xml"
	"strings"

	"golang.org/x/net/html/charset"
)

// XML namespaces used in PresentationML and DrawingML
const (
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsC = "http://schemas.openxmlformats.org/drawingml/2006/chart"
)

// tokenReader wraps an xml.Decoder and remembers where the most recently
// returned token started, so callers can slice out raw element markup.
type tokenReader struct {
	dec  *xml.Decoder
	data []byte
	last int64
}

func newTokenReader(data []byte) *tokenReader {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	return &tokenReader{dec: dec, data: data}
}

// Token returns the next token, recording its start offset.
func (r *tokenReader) Token() (xml.Token, error) {
	r.last = r.dec.InputOffset()
	return r.dec.Token()
}

// offset is the start of the most recently returned token.
func (r *tokenReader) offset() int64 {
	return r.last
}

// since returns the raw bytes from begin to the current decoder position.
// Offsets refer to the decoded stream, so non-UTF-8 parts yield nil.
func (r *tokenReader) since(begin int64) []byte {
	end := r.dec.InputOffset()
	if begin < 0 || end > int64(len(r.data)) || begin >= end {
		return nil
	}
	out := make([]byte, end-begin)
	copy(out, r.data[begin:end])
	return out
}

// skip consumes the rest of the element whose start tag was just read.
func (r *tokenReader) skip() error {
	return r.dec.Skip()
}

// readText reads character data up to the end of the current element.
func (r *tokenReader) readText() (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		token, err := r.Token()
		if err != nil {
			return b.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return b.String(), nil
}

// attr returns the value of the first attribute with the given local name.
func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// attrNS returns the value of the attribute with the given namespace and local name.
func attrNS(se xml.StartElement, space, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// parseBool interprets an xsd:boolean attribute value.
func parseBool(v string) bool {
	return v == "1" || v == "true"
}
