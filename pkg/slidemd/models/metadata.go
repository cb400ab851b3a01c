package models

// Metadata represents presentation-level properties.
type Metadata struct {
	Filename       string `json:"filename,omitempty" yaml:"filename,omitempty"`
	FileSize       int64  `json:"file_size,omitempty" yaml:"file_size,omitempty"`
	Title          string `json:"title,omitempty" yaml:"title,omitempty"`
	Author         string `json:"author,omitempty" yaml:"author,omitempty"`
	Subject        string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Keywords       string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Comments       string `json:"comments,omitempty" yaml:"comments,omitempty"`
	Category       string `json:"category,omitempty" yaml:"category,omitempty"`
	ContentStatus  string `json:"content_status,omitempty" yaml:"content_status,omitempty"`
	Language       string `json:"language,omitempty" yaml:"language,omitempty"`
	Version        string `json:"version,omitempty" yaml:"version,omitempty"`
	Created        string `json:"created,omitempty" yaml:"created,omitempty"`
	Modified       string `json:"modified,omitempty" yaml:"modified,omitempty"`
	LastModifiedBy string `json:"last_modified_by,omitempty" yaml:"last_modified_by,omitempty"`
	LastPrinted    string `json:"last_printed,omitempty" yaml:"last_printed,omitempty"`
	Revision       string `json:"revision,omitempty" yaml:"revision,omitempty"`
	Identifier     string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	SlideCount       int    `json:"slide_count" yaml:"slide_count"`
	SlideMasterCount int    `json:"slide_master_count,omitempty" yaml:"slide_master_count,omitempty"`
	LayoutTypes      string `json:"layout_types,omitempty" yaml:"layout_types,omitempty"`

	Application string `json:"application,omitempty" yaml:"application,omitempty"`
	AppVersion  string `json:"app_version,omitempty" yaml:"app_version,omitempty"`
	Company     string `json:"company,omitempty" yaml:"company,omitempty"`
	DocSecurity *int   `json:"doc_security,omitempty" yaml:"doc_security,omitempty"`
}
