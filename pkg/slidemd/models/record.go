package models

// Role is the semantic role of a shape on its slide.
type Role string

const (
	RoleTitle       Role = "title"
	RoleSubtitle    Role = "subtitle"
	RoleSlideNumber Role = "slide_number"
	RoleContent     Role = "content"
	RoleOther       Role = "other"
)

// ReadingOrderEntry pairs a shape with its semantic role.
type ReadingOrderEntry struct {
	Shape *Shape
	Role  Role
}

// FormattedRun is a run with the formatting needed for markdown.
type FormattedRun struct {
	Text      string `json:"text" yaml:"text"`
	Bold      bool   `json:"bold" yaml:"bold"`
	Italic    bool   `json:"italic" yaml:"italic"`
	Hyperlink string `json:"hyperlink,omitempty" yaml:"hyperlink,omitempty"`
}

// Hints carries structural signals used to pick the markdown form of a paragraph.
type Hints struct {
	// HasStructuralLevel is true when the paragraph declares an indent level.
	HasStructuralLevel bool `json:"has_structural_level" yaml:"has_structural_level"`
	// StructuralLevel is the declared indent level, nil when absent.
	StructuralLevel *int `json:"structural_level" yaml:"structural_level"`
	// BulletLevel is the zero-based list depth, -1 when not a bullet.
	BulletLevel int  `json:"bullet_level" yaml:"bullet_level"`
	IsBullet    bool `json:"is_bullet" yaml:"is_bullet"`
	IsNumbered  bool `json:"is_numbered" yaml:"is_numbered"`
	ShortText   bool `json:"short_text" yaml:"short_text"`
	AllCaps     bool `json:"all_caps" yaml:"all_caps"`
	// LikelyHeading is only set by flat-text extraction.
	LikelyHeading bool `json:"likely_heading,omitempty" yaml:"likely_heading,omitempty"`
}

// ParagraphRecord is the structured form of one non-empty paragraph.
type ParagraphRecord struct {
	RawText       string         `json:"raw_text" yaml:"raw_text"`
	CleanText     string         `json:"clean_text" yaml:"clean_text"`
	FormattedRuns []FormattedRun `json:"formatted_runs" yaml:"formatted_runs"`
	Hints         Hints          `json:"hints" yaml:"hints"`
}
