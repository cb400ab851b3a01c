package models

// Slide is the parsed document model of one slide.
//
// Shapes is an arena: a shape's Handle is its index in Shapes. Handles are
// only meaningful within the slide that issued them.
type Slide struct {
	// Number is the 1-based slide position.
	Number int `json:"number"`
	// PartName is the package path of the slide part.
	PartName string `json:"part_name"`
	// Shapes holds every shape on the slide, including group children.
	Shapes []*Shape `json:"shapes"`
	// Top holds the handles of the slide's top-level shapes in document order.
	Top []int `json:"top"`
	// ContainerMarkup is the raw XML of the slide's shape tree.
	ContainerMarkup []byte `json:"-"`
}

// Add appends a shape to the arena and assigns its handle.
func (s *Slide) Add(shape *Shape) int {
	shape.Handle = len(s.Shapes)
	s.Shapes = append(s.Shapes, shape)
	return shape.Handle
}

// Shape returns the shape with the given handle, or nil.
func (s *Slide) Shape(handle int) *Shape {
	if handle < 0 || handle >= len(s.Shapes) {
		return nil
	}
	return s.Shapes[handle]
}

// TopShapes returns the top-level shapes in document order.
func (s *Slide) TopShapes() []*Shape {
	out := make([]*Shape, 0, len(s.Top))
	for _, h := range s.Top {
		if sh := s.Shape(h); sh != nil {
			out = append(out, sh)
		}
	}
	return out
}

// Presentation is the parsed document model of a whole deck.
type Presentation struct {
	// Slides in presentation order.
	Slides []*Slide `json:"slides"`
	// Metadata is the document and package level metadata.
	Metadata Metadata `json:"metadata"`
}
