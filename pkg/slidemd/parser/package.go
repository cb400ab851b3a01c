package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

const presentationPart = "ppt/presentation.xml"

// ErrInvalidFormat indicates the input is not a PresentationML package.
var ErrInvalidFormat = errors.New("invalid pptx format")

// ErrNoSlides indicates the package opened but contains no slides.
var ErrNoSlides = errors.New("presentation has no slides")

// PartError reports a package part that was referenced but could not be read
// or parsed after the package itself opened successfully.
type PartError struct {
	Part string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("part %s: %v", e.Part, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

// relationship is one entry of a .rels part.
type relationship struct {
	Type     string
	Target   string
	External bool
}

// Package is an opened pptx zip package.
type Package struct {
	files  map[string]*zip.File
	rels   map[string]map[string]relationship
	logger *slog.Logger
}

// Option configures how a package is read.
type Option func(*Package)

// WithLogger routes recoverable part failures to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Package) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Open reads the presentation at path into the document model.
func Open(pptxPath string, opts ...Option) (*models.Presentation, error) {
	f, err := os.Open(pptxPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pres, err := Read(f, info.Size(), opts...)
	if err != nil {
		return nil, err
	}
	pres.Metadata.Filename = filepath.Base(pptxPath)
	pres.Metadata.FileSize = info.Size()
	return pres, nil
}

// Read reads a presentation of the given size from r.
func Read(r io.ReaderAt, size int64, opts ...Option) (*models.Presentation, error) {
	if err := probeContainer(r, size); err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	pkg := newPackage(zr)
	for _, opt := range opts {
		opt(pkg)
	}
	slideParts, err := pkg.slideParts()
	if err != nil {
		return nil, err
	}
	if len(slideParts) == 0 {
		return nil, ErrNoSlides
	}

	pres := &models.Presentation{}
	for i, part := range slideParts {
		slide, err := pkg.parseSlide(part, i+1)
		if err != nil {
			return nil, &PartError{Part: part, Err: err}
		}
		pres.Slides = append(pres.Slides, slide)
	}

	pres.Metadata = pkg.metadata()
	pres.Metadata.SlideCount = len(pres.Slides)
	return pres, nil
}

func newPackage(zr *zip.Reader) *Package {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}
	return &Package{
		files:  files,
		rels:   make(map[string]map[string]relationship),
		logger: slog.New(slog.DiscardHandler),
	}
}

// readPart returns the bytes of a package part.
func (p *Package) readPart(name string) ([]byte, error) {
	f, ok := p.files[strings.TrimPrefix(name, "/")]
	if !ok {
		return nil, fmt.Errorf("missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// slideParts returns slide part names in presentation order.
func (p *Package) slideParts() ([]string, error) {
	data, err := p.readPart(presentationPart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	ids, err := parseSlideIDList(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, presentationPart, err)
	}

	rels := p.relationships(presentationPart)
	var parts []string
	for _, rID := range ids {
		rel, ok := rels[rID]
		if !ok || rel.External {
			continue
		}
		parts = append(parts, resolveRelativePath(rel.Target, path.Dir(presentationPart)))
	}
	return parts, nil
}

// parseSlideIDList returns the r:id values of p:sldIdLst in order.
func parseSlideIDList(data []byte) ([]string, error) {
	r := newTokenReader(data)
	var ids []string
	for {
		token, err := r.Token()
		if err == io.EOF {
			return ids, nil
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sldId" {
			if rID := attrNS(se, nsR, "id"); rID != "" {
				ids = append(ids, rID)
			}
		}
	}
}

// relationships returns the relationships of a part, keyed by id. A missing
// or unreadable .rels part yields an empty map.
func (p *Package) relationships(partName string) map[string]relationship {
	if rels, ok := p.rels[partName]; ok {
		return rels
	}
	rels := make(map[string]relationship)
	p.rels[partName] = rels

	data, err := p.readPart(relsPathFor(partName))
	if err != nil {
		return rels
	}

	r := newTokenReader(data)
	for {
		token, err := r.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			id := attr(se, "Id")
			if id == "" {
				continue
			}
			rels[id] = relationship{
				Type:     attr(se, "Type"),
				Target:   attr(se, "Target"),
				External: strings.EqualFold(attr(se, "TargetMode"), "External"),
			}
		}
	}
	return rels
}

// relationshipTarget resolves a relationship id of partName to a package part
// name. External relationships are not parts and return false.
func (p *Package) relationshipTarget(partName, rID string) (string, bool) {
	rel, ok := p.relationships(partName)[rID]
	if !ok || rel.External || rel.Target == "" {
		return "", false
	}
	return resolveRelativePath(rel.Target, path.Dir(partName)), true
}

// externalTarget returns the target of an external relationship of partName.
func (p *Package) externalTarget(partName, rID string) (string, bool) {
	if rID == "" {
		return "", false
	}
	rel, ok := p.relationships(partName)[rID]
	if !ok || !rel.External || rel.Target == "" {
		return "", false
	}
	return rel.Target, true
}

// relsPathFor returns the .rels part name for a part, e.g.
// ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func relsPathFor(partName string) string {
	dir, file := path.Split(partName)
	return dir + "_rels/" + file + ".rels"
}

// resolveRelativePath resolves a relationship target against the directory
// of its source part.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(baseDir, target), "/")
}

// isZip reports whether the header carries the zip local file signature.
func isZip(header []byte) bool {
	return bytes.HasPrefix(header, []byte("PK\x03\x04")) || bytes.HasPrefix(header, []byte("PK\x05\x06"))
}
