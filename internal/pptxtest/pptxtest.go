// Package pptxtest builds minimal pptx packages for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	nsDecl = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

	relSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	// RelHyperlink is the relationship type of external hyperlinks.
	RelHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	// RelChart is the relationship type of chart parts.
	RelChart = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	// RelPackage is the relationship type of embedded packages.
	RelPackage = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/package"
)

// Rel is one relationship of a part.
type Rel struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Slide is the shape tree content and relationships of one slide.
type Slide struct {
	// Shapes is the raw XML placed inside p:spTree after its group properties.
	Shapes string
	Rels   []Rel
}

// Deck describes a presentation package.
type Deck struct {
	Slides []Slide
	// Core is the raw XML inside cp:coreProperties.
	Core string
	// App is the raw XML inside Properties of docProps/app.xml.
	App     string
	Masters int
	Layouts []string
	// Parts holds extra package parts by name, e.g. charts and embeddings.
	Parts map[string][]byte
}

// Bytes assembles the package.
func (d Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}

	files := map[string]string{
		"[Content_Types].xml":             contentTypes,
		"ppt/presentation.xml":            d.presentation(),
		"ppt/_rels/presentation.xml.rels": d.presentationRels(),
		"docProps/core.xml":               d.core(),
		"docProps/app.xml":                d.app(),
		"_rels/.rels":                     packageRels,
	}
	for i, s := range d.Slides {
		files[fmt.Sprintf("ppt/slides/slide%d.xml", i+1)] = SlideXML(s.Shapes)
		if len(s.Rels) > 0 {
			files[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1)] = RelsXML(s.Rels)
		}
	}
	for i, name := range d.Layouts {
		files[fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1)] =
			`<p:sldLayout ` + nsDecl + `><p:cSld name="` + escape(name) + `"><p:spTree/></p:cSld></p:sldLayout>`
	}

	for name, content := range files {
		if err := write(name, content); err != nil {
			return nil, err
		}
	}
	for name, content := range d.Parts {
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(content); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write saves the package as name in a temporary directory and returns its path.
func (d Deck) Write(t testing.TB, name string) string {
	t.Helper()
	data, err := d.Bytes()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func (d Deck) presentation() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<p:presentation ` + nsDecl + `>`)
	if d.Masters > 0 {
		b.WriteString(`<p:sldMasterIdLst>`)
		for i := 0; i < d.Masters; i++ {
			fmt.Fprintf(&b, `<p:sldMasterId id="%d" r:id="rIdM%d"/>`, 2147483648+i, i+1)
		}
		b.WriteString(`</p:sldMasterIdLst>`)
	}
	if len(d.Slides) > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for i := range d.Slides {
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rIdS%d"/>`, 256+i, i+1)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func (d Deck) presentationRels() string {
	var rels []Rel
	for i := 0; i < d.Masters; i++ {
		rels = append(rels, Rel{ID: fmt.Sprintf("rIdM%d", i+1), Type: relMaster,
			Target: fmt.Sprintf("slideMasters/slideMaster%d.xml", i+1)})
	}
	for i := range d.Slides {
		rels = append(rels, Rel{ID: fmt.Sprintf("rIdS%d", i+1), Type: relSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", i+1)})
	}
	return RelsXML(rels)
}

func (d Deck) core() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` + d.Core + `</cp:coreProperties>`
}

func (d Deck) app() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
		d.App + `</Properties>`
}

// SlideXML wraps shape tree content in a slide part.
func SlideXML(shapes string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:sld ` + nsDecl + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		shapes + `</p:spTree></p:cSld></p:sld>`
}

// RelsXML renders a relationships part.
func RelsXML(rels []Rel) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		mode := ""
		if r.External {
			mode = ` TargetMode="External"`
		}
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"%s/>`, r.ID, r.Type, escape(r.Target), mode)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// Para returns a paragraph with one plain run.
func Para(text string) string {
	return `<a:p>` + Run(text, "") + `</a:p>`
}

// BulletPara returns a paragraph with a character bullet at level lvl.
func BulletPara(text string, lvl int) string {
	return fmt.Sprintf(`<a:p><a:pPr lvl="%d"><a:buFont typeface="Arial"/><a:buChar char="•"/></a:pPr>%s</a:p>`, lvl, Run(text, ""))
}

// NumberedPara returns an auto-numbered paragraph.
func NumberedPara(text string) string {
	return `<a:p><a:pPr><a:buAutoNum type="arabicPeriod"/></a:pPr>` + Run(text, "") + `</a:p>`
}

// Run returns a run with raw run properties inside a:rPr.
func Run(text, rPr string) string {
	return `<a:r><a:rPr lang="en-US" ` + rPr + `/><a:t>` + escape(text) + `</a:t></a:r>`
}

// LinkRun returns a run carrying a click hyperlink relationship.
func LinkRun(text, rID string) string {
	return `<a:r><a:rPr lang="en-US"><a:hlinkClick r:id="` + rID + `"/></a:rPr><a:t>` + escape(text) + `</a:t></a:r>`
}

// TextShape returns a p:sp with the given raw paragraphs.
func TextShape(id int, name string, paragraphs ...string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
		`<p:txBody><a:bodyPr/><a:lstStyle/>%s</p:txBody></p:sp>`, id, escape(name), strings.Join(paragraphs, ""))
}

// LinkedShape returns a text shape whose whole area links to relationship rID.
func LinkedShape(id int, name, rID string, paragraphs ...string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"><a:hlinkClick r:id="%s"/></p:cNvPr><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr/><p:txBody><a:bodyPr/>%s</p:txBody></p:sp>`, id, escape(name), rID, strings.Join(paragraphs, ""))
}

// AutoShape returns a p:sp without text.
func AutoShape(id int, name, geometry string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:prstGeom prst="%s"><a:avLst/></a:prstGeom></p:spPr></p:sp>`, id, escape(name), geometry)
}

// Picture returns a p:pic with alt text.
func Picture(id int, name, descr string) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s" descr="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill/><p:spPr/></p:pic>`, id, escape(name), escape(descr))
}

// Connector returns a p:cxnSp.
func Connector(id int, name string) string {
	return fmt.Sprintf(`<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="%d" name="%s"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr><p:spPr/></p:cxnSp>`,
		id, escape(name))
}

// Group returns a p:grpSp containing children.
func Group(id int, name string, children ...string) string {
	return fmt.Sprintf(`<p:grpSp><p:nvGrpSpPr><p:cNvPr id="%d" name="%s"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`+
		`<p:grpSpPr/>%s</p:grpSp>`, id, escape(name), strings.Join(children, ""))
}

// Table returns a graphic frame holding a table.
func Table(id int, name string, rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(`<a:tr h="370840">`)
		for _, cell := range row {
			b.WriteString(`<a:tc><a:txBody><a:bodyPr/>`)
			for _, line := range strings.Split(cell, "\n") {
				b.WriteString(Para(line))
			}
			b.WriteString(`</a:txBody><a:tcPr/></a:tc>`)
		}
		b.WriteString(`</a:tr>`)
	}
	return fmt.Sprintf(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`+
		`<p:xfrm/><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">`+
		`<a:tbl><a:tblPr/><a:tblGrid/>%s</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`, id, escape(name), b.String())
}

// Chart returns a graphic frame referencing a chart relationship.
func Chart(id int, name, rID string) string {
	return fmt.Sprintf(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`+
		`<p:xfrm/><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart">`+
		`<c:chart xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" r:id="%s"/>`+
		`</a:graphicData></a:graphic></p:graphicFrame>`, id, escape(name), rID)
}

// ChartXML wraps plot area content in a chart part. externalID, when set,
// references an embedded workbook relationship.
func ChartXML(title, plotArea, externalID string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" ` + nsDecl + `><c:chart>`)
	if title != "" {
		b.WriteString(`<c:title><c:tx><c:rich><a:bodyPr/><a:p><a:r><a:t>` + escape(title) + `</a:t></a:r></a:p></c:rich></c:tx></c:title>`)
	}
	b.WriteString(`<c:plotArea><c:layout/>` + plotArea + `</c:plotArea></c:chart>`)
	if externalID != "" {
		b.WriteString(`<c:externalData r:id="` + externalID + `"/>`)
	}
	b.WriteString(`</c:chartSpace>`)
	return b.String()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` +
	`</Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`</Relationships>`
