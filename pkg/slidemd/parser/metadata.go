package parser

import (
	"encoding/xml"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

const (
	corePropsPart = "docProps/core.xml"
	appPropsPart  = "docProps/app.xml"
	layoutDir     = "ppt/slideLayouts"
)

// metadata collects document properties and master/layout information.
// Missing or malformed property parts leave the fields empty.
func (p *Package) metadata() models.Metadata {
	var meta models.Metadata

	if data, err := p.readPart(corePropsPart); err == nil {
		core := readPropertyElements(data)
		meta.Title = core["title"]
		meta.Author = core["creator"]
		meta.Subject = core["subject"]
		meta.Keywords = core["keywords"]
		meta.Comments = core["description"]
		meta.Category = core["category"]
		meta.ContentStatus = core["contentStatus"]
		meta.Language = core["language"]
		meta.Version = core["version"]
		meta.Created = core["created"]
		meta.Modified = core["modified"]
		meta.LastModifiedBy = core["lastModifiedBy"]
		meta.LastPrinted = core["lastPrinted"]
		meta.Revision = core["revision"]
		meta.Identifier = core["identifier"]
	}

	if data, err := p.readPart(appPropsPart); err == nil {
		app := readPropertyElements(data)
		meta.Application = app["Application"]
		meta.AppVersion = app["AppVersion"]
		meta.Company = app["Company"]
		if v, err := strconv.Atoi(app["DocSecurity"]); err == nil {
			meta.DocSecurity = &v
		}
	}

	meta.SlideMasterCount = p.slideMasterCount()
	meta.LayoutTypes = strings.Join(p.layoutNames(), ", ")
	return meta
}

// readPropertyElements maps the local names of the root's direct children to
// their trimmed text.
func readPropertyElements(data []byte) map[string]string {
	props := make(map[string]string)
	r := newTokenReader(data)

	depth := 0
	for {
		token, err := r.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				text, err := r.readText()
				if err != nil {
					return props
				}
				props[t.Name.Local] = strings.TrimSpace(text)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return props
}

// slideMasterCount counts p:sldMasterId entries in the presentation part.
func (p *Package) slideMasterCount() int {
	data, err := p.readPart(presentationPart)
	if err != nil {
		return 0
	}

	count := 0
	r := newTokenReader(data)
	for {
		token, err := r.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sldMasterId" {
			count++
		}
	}
	return count
}

// layoutNames returns the distinct, sorted names of all slide layouts.
func (p *Package) layoutNames() []string {
	seen := make(map[string]bool)
	for name := range p.files {
		if path.Dir(name) != layoutDir || path.Ext(name) != ".xml" {
			continue
		}
		data, err := p.readPart(name)
		if err != nil {
			continue
		}
		if layout := layoutName(data); layout != "" {
			seen[layout] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// layoutName returns the name attribute of a layout's p:cSld element.
func layoutName(data []byte) string {
	r := newTokenReader(data)
	for {
		token, err := r.Token()
		if err != nil {
			return ""
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "cSld" {
			return attr(se, "name")
		}
	}
}
