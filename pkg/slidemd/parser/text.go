package parser

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

// parseTextBody parses a txBody into paragraphs. Text found outside runs
// (equations, for instance) is collected separately and becomes the shape's
// flat text when no run carries any text.
func (sp *slideParser) parseTextBody(shape *models.Shape) error {
	frame := &models.TextFrame{}
	var loose strings.Builder

	depth := 1
	for depth > 0 {
		token, err := sp.r.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch {
			case t.Name.Local == "p" && t.Name.Space == nsA:
				para, err := sp.parseParagraph(&loose)
				if err != nil {
					return err
				}
				frame.Paragraphs = append(frame.Paragraphs, para)
				depth--
			case t.Name.Local == "t":
				text, err := sp.r.readText()
				if err != nil {
					return err
				}
				loose.WriteString(text)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if !frameHasText(frame) && strings.TrimSpace(loose.String()) != "" {
		shape.PlainText = loose.String()
		return nil
	}
	shape.Text = frame
	return nil
}

// parseParagraph parses an a:p element whose start tag was just read.
func (sp *slideParser) parseParagraph(loose *strings.Builder) (models.Paragraph, error) {
	begin := sp.r.offset()
	var para models.Paragraph

	depth := 1
	for depth > 0 {
		token, err := sp.r.Token()
		if err != nil {
			return para, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Space != nsA {
				if t.Name.Local == "t" {
					text, err := sp.r.readText()
					if err != nil {
						return para, err
					}
					loose.WriteString(text)
					depth--
				}
				continue
			}
			switch t.Name.Local {
			case "pPr":
				if v := attr(t, "lvl"); v != "" {
					if lvl, err := strconv.Atoi(v); err == nil {
						para.Level = &lvl
					}
				}
			case "r", "fld":
				run, err := sp.parseRun()
				if err != nil {
					return para, err
				}
				para.Runs = append(para.Runs, run)
				depth--
			case "br":
				para.Runs = append(para.Runs, models.Run{Text: "\n"})
			}
		case xml.EndElement:
			depth--
		}
	}

	if para.Level == nil {
		// lvl defaults to 0 in the schema
		level := 0
		para.Level = &level
	}
	para.Markup = sp.r.since(begin)
	return para, nil
}

// parseRun parses an a:r or a:fld element.
func (sp *slideParser) parseRun() (models.Run, error) {
	var run models.Run

	depth := 1
	for depth > 0 {
		token, err := sp.r.Token()
		if err != nil {
			return run, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "rPr":
				run.Bold = parseBool(attr(t, "b"))
				run.Italic = parseBool(attr(t, "i"))
			case "hlinkClick":
				if target, ok := sp.pkg.externalTarget(sp.part, attrNS(t, nsR, "id")); ok {
					run.Hyperlink = target
				}
			case "t":
				text, err := sp.r.readText()
				if err != nil {
					return run, err
				}
				run.Text += text
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return run, nil
}

func frameHasText(frame *models.TextFrame) bool {
	for _, p := range frame.Paragraphs {
		if strings.TrimSpace(p.Text()) != "" {
			return true
		}
	}
	return false
}
