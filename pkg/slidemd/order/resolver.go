// Package order resolves the reading order and semantic role of slide shapes.
package order

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

// Strategy selects how a slide's reading order is computed.
type Strategy string

const (
	// StrategySemantic orders by shape-tree markup, flattens groups,
	// deduplicates and buckets title, content, other.
	StrategySemantic Strategy = "semantic"
	// StrategySimple flattens groups depth-first in encounter order.
	StrategySimple Strategy = "simple"
)

// Extraction methods reported per slide.
const (
	MethodSemantic       = "semantic_accessibility_order"
	MethodRecursive      = "recursive_group_expansion"
	MethodNativeFallback = "native_order_fallback"
	MethodNotExtracted   = "not_extracted"
)

// containerKinds are the shape tree elements considered when reading order
// from markup.
var containerKinds = map[string]bool{
	"sp":           true,
	"grpSp":        true,
	"pic":          true,
	"cxnSp":        true,
	"graphicFrame": true,
}

var errNoContainer = errors.New("slide has no shape tree markup")

type bucket int

const (
	bucketTitle bucket = iota
	bucketContent
	bucketOther
	// bucketNone keeps the role but leaves the shape out of the order.
	bucketNone
)

// ParseStrategy converts a configuration value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategySemantic, "":
		return StrategySemantic, nil
	case StrategySimple:
		return StrategySimple, nil
	default:
		return "", fmt.Errorf("invalid order strategy: %s (must be semantic or simple)", s)
	}
}

// Resolver computes per-slide reading order. It keeps a role cache keyed by
// shape handle, so one Resolver must not be shared across goroutines, and the
// cache only describes the most recently resolved slide.
type Resolver struct {
	strategy   Strategy
	logger     *slog.Logger
	roles      map[int]models.Role
	lastMethod string
}

// New creates a Resolver. A nil logger discards log output.
func New(strategy Strategy, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if strategy == "" {
		strategy = StrategySemantic
	}
	return &Resolver{
		strategy:   strategy,
		logger:     logger,
		roles:      make(map[int]models.Role),
		lastMethod: MethodNotExtracted,
	}
}

// Strategy returns the configured strategy.
func (r *Resolver) Strategy() Strategy {
	return r.strategy
}

// LastMethod returns the extraction method used by the last Resolve call.
func (r *Resolver) LastMethod() string {
	return r.lastMethod
}

// Reset clears the role cache.
func (r *Resolver) Reset() {
	r.roles = make(map[int]models.Role)
	r.lastMethod = MethodNotExtracted
}

// Role returns the cached bucketing role for a handle of the last resolved slide.
func (r *Resolver) Role(handle int) (models.Role, bool) {
	role, ok := r.roles[handle]
	return role, ok
}

// Resolve returns the slide's shapes in reading order with their roles.
// It never fails: markup problems degrade to the slide's native top-level
// order, deduplicated, with per-shape classification.
func (r *Resolver) Resolve(slide *models.Slide) []models.ReadingOrderEntry {
	r.roles = make(map[int]models.Role)
	if slide == nil {
		r.lastMethod = MethodNotExtracted
		return nil
	}

	var handles []int
	switch r.strategy {
	case StrategySimple:
		handles = Flatten(slide, slide.Top)
		r.lastMethod = MethodRecursive
	default:
		ordered, err := r.semanticOrder(slide)
		if err != nil {
			r.logger.Debug("reading order degraded to native order",
				slog.Int("slide", slide.Number),
				slog.String("error", err.Error()))
			r.roles = make(map[int]models.Role)
			handles = dedupe(slide.Top)
			r.lastMethod = MethodNativeFallback
		} else {
			handles = ordered
			r.lastMethod = MethodSemantic
		}
	}

	entries := make([]models.ReadingOrderEntry, 0, len(handles))
	for _, h := range handles {
		shape := slide.Shape(h)
		if shape == nil {
			continue
		}
		role, ok := r.roles[h]
		if !ok {
			role = Classify(shape)
		}
		entries = append(entries, models.ReadingOrderEntry{Shape: shape, Role: role})
	}
	return entries
}

// semanticOrder reads the shape tree markup, flattens groups, deduplicates
// and concatenates the title, content and other buckets. Slide number shapes
// get their role cached but join no bucket.
func (r *Resolver) semanticOrder(slide *models.Slide) ([]int, error) {
	top, err := containerOrder(slide)
	if err != nil {
		return nil, err
	}

	handles := dedupe(Flatten(slide, top))

	var titles, content, other []int
	for _, h := range handles {
		shape := slide.Shape(h)
		if shape == nil {
			return nil, fmt.Errorf("dangling shape handle %d", h)
		}
		role, b := bucketRole(shape)
		r.roles[h] = role
		switch b {
		case bucketTitle:
			titles = append(titles, h)
		case bucketContent:
			content = append(content, h)
		case bucketOther:
			other = append(other, h)
		}
	}

	ordered := make([]int, 0, len(handles))
	ordered = append(ordered, titles...)
	ordered = append(ordered, content...)
	ordered = append(ordered, other...)
	return ordered, nil
}

// containerOrder reads the direct children of the slide's shape tree markup
// in document order and maps each to a top-level shape through its cNvPr id.
// Elements whose id matches no top-level shape are dropped. When top-level
// shapes share an id the last one wins.
func containerOrder(slide *models.Slide) ([]int, error) {
	if len(slide.ContainerMarkup) == 0 {
		return nil, errNoContainer
	}

	byID := make(map[string]int, len(slide.Top))
	for _, h := range slide.Top {
		shape := slide.Shape(h)
		if shape == nil || shape.XMLID == "" {
			continue
		}
		byID[shape.XMLID] = h
	}

	dec := xml.NewDecoder(bytes.NewReader(slide.ContainerMarkup))
	var handles []int
	depth := 0
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 && containerKinds[t.Name.Local] {
				id, err := firstCNvPrID(dec)
				if err != nil {
					return nil, err
				}
				depth--
				if h, ok := byID[id]; ok && id != "" {
					handles = append(handles, h)
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return handles, nil
}

// firstCNvPrID consumes the current element and returns the id of the first
// cNvPr found inside it.
func firstCNvPrID(dec *xml.Decoder) (string, error) {
	var id string
	found := false
	depth := 1
	for depth > 0 {
		token, err := dec.Token()
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if !found && t.Name.Local == "cNvPr" {
				for _, a := range t.Attr {
					if a.Name.Local == "id" && a.Name.Space == "" {
						id = a.Value
					}
				}
				found = true
			}
		case xml.EndElement:
			depth--
		}
	}
	return id, nil
}

// Flatten replaces every group among handles with its children, recursively,
// in pre-order. Handles that would revisit an ancestor group are skipped.
func Flatten(slide *models.Slide, handles []int) []int {
	var out []int
	flatten(slide, handles, make(map[int]bool), &out)
	return out
}

func flatten(slide *models.Slide, handles []int, ancestors map[int]bool, out *[]int) {
	for _, h := range handles {
		shape := slide.Shape(h)
		if shape == nil {
			continue
		}
		if !shape.IsGroup() {
			*out = append(*out, h)
			continue
		}
		if ancestors[h] {
			continue
		}
		ancestors[h] = true
		flatten(slide, shape.Children, ancestors, out)
		delete(ancestors, h)
	}
}

// dedupe keeps the first occurrence of each handle.
func dedupe(handles []int) []int {
	seen := make(map[int]bool, len(handles))
	out := make([]int, 0, len(handles))
	for _, h := range handles {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}

// GroupChildren returns the direct children of a group in document order.
func GroupChildren(slide *models.Slide, group *models.Shape) []*models.Shape {
	if slide == nil || group == nil || !group.IsGroup() {
		return nil
	}
	children := make([]*models.Shape, 0, len(group.Children))
	for _, h := range group.Children {
		if child := slide.Shape(h); child != nil {
			children = append(children, child)
		}
	}
	return children
}
