package parser

import (
	"encoding/xml"
	"io"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

// shapeElementKinds maps shape tree element names to shape kinds. Graphic
// frames are refined to table or chart once their graphic data is seen.
var shapeElementKinds = map[string]models.ShapeKind{
	"sp":           models.KindAutoShape,
	"grpSp":        models.KindGroup,
	"pic":          models.KindPicture,
	"cxnSp":        models.KindConnector,
	"graphicFrame": models.KindGraphicFrame,
}

// slideParser holds the state of one slide part walk.
type slideParser struct {
	pkg   *Package
	part  string
	r     *tokenReader
	slide *models.Slide
}

// parseSlide parses a slide part into the slide document model.
func (p *Package) parseSlide(part string, number int) (*models.Slide, error) {
	data, err := p.readPart(part)
	if err != nil {
		return nil, err
	}

	sp := &slideParser{
		pkg:   p,
		part:  part,
		r:     newTokenReader(data),
		slide: &models.Slide{Number: number, PartName: part},
	}
	if err := sp.parse(); err != nil {
		return nil, err
	}
	return sp.slide, nil
}

// parse walks the slide XML looking for the shape tree.
func (sp *slideParser) parse() error {
	for {
		token, err := sp.r.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "spTree" && se.Name.Space == nsP {
			begin := sp.r.offset()
			handles, err := sp.parseChildren(nil)
			if err != nil {
				return err
			}
			sp.slide.Top = handles
			sp.slide.ContainerMarkup = sp.r.since(begin)
		}
	}
}

// parseChildren parses shape elements up to the end of the enclosing element
// and returns their handles in document order. owner is the group being
// parsed, or nil for the slide's shape tree.
func (sp *slideParser) parseChildren(owner *models.Shape) ([]int, error) {
	var handles []int
	for {
		token, err := sp.r.Token()
		if err != nil {
			return handles, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			kind, isShape := shapeElementKinds[t.Name.Local]
			switch {
			case isShape:
				handle, err := sp.parseShape(kind)
				if err != nil {
					return handles, err
				}
				handles = append(handles, handle)
			case owner != nil && t.Name.Local == "nvGrpSpPr":
				if err := sp.parseNonVisual(owner); err != nil {
					return handles, err
				}
			default:
				if err := sp.r.skip(); err != nil {
					return handles, err
				}
			}
		case xml.EndElement:
			return handles, nil
		}
	}
}

// parseShape parses the shape element whose start tag was just read. The
// handle is assigned before children are parsed, so group handles precede
// their members.
func (sp *slideParser) parseShape(kind models.ShapeKind) (int, error) {
	begin := sp.r.offset()
	shape := &models.Shape{Kind: kind}
	handle := sp.slide.Add(shape)

	if kind == models.KindGroup {
		children, err := sp.parseChildren(shape)
		if err != nil {
			return handle, err
		}
		shape.Children = children
	} else if err := sp.parseShapeBody(shape); err != nil {
		return handle, err
	}

	shape.Markup = sp.r.since(begin)
	return handle, nil
}

// parseShapeBody parses the content of a non-group shape element.
func (sp *slideParser) parseShapeBody(shape *models.Shape) error {
	depth := 1
	for depth > 0 {
		token, err := sp.r.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				if err := sp.readCNvPr(t, shape); err != nil {
					return err
				}
				depth--
			case "prstGeom":
				shape.Geometry = attr(t, "prst")
			case "txBody":
				if err := sp.parseTextBody(shape); err != nil {
					return err
				}
				depth--
			case "tbl":
				table, err := sp.parseTable()
				if err != nil {
					return err
				}
				shape.Kind = models.KindTable
				shape.Table = table
				depth--
			case "chart":
				if t.Name.Space == nsC {
					shape.Kind = models.KindChart
					shape.Chart = sp.loadChart(attrNS(t, nsR, "id"))
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// parseNonVisual parses a non-visual properties container looking for cNvPr.
func (sp *slideParser) parseNonVisual(shape *models.Shape) error {
	depth := 1
	for depth > 0 {
		token, err := sp.r.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "cNvPr" {
				if err := sp.readCNvPr(t, shape); err != nil {
					return err
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// readCNvPr reads identity, name, alt text and the click hyperlink.
func (sp *slideParser) readCNvPr(start xml.StartElement, shape *models.Shape) error {
	shape.XMLID = attr(start, "id")
	shape.Name = attr(start, "name")
	shape.AltText = attr(start, "descr")
	if shape.AltText == "" {
		shape.AltText = attr(start, "title")
	}

	depth := 1
	for depth > 0 {
		token, err := sp.r.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "hlinkClick" {
				if target, ok := sp.pkg.externalTarget(sp.part, attrNS(t, nsR, "id")); ok {
					shape.Hyperlink = target
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return nil
}
