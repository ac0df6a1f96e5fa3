package amocrm

// CustomFieldValue identifies a custom field by id and carries its
// typed values. On records it is accepted under both the current
// "custom_fields_values" key and the legacy "custom_fields" key; only
// the current key is ever emitted.
type CustomFieldValue struct {
	FieldID   int64        `json:"field_id,omitempty"   yaml:"field_id,omitempty"`
	FieldName string       `json:"field_name,omitempty" yaml:"field_name,omitempty"`
	FieldCode string       `json:"field_code,omitempty" yaml:"field_code,omitempty"`
	FieldType string       `json:"field_type,omitempty" yaml:"field_type,omitempty"`
	Values    []FieldValue `json:"values"               yaml:"values"`
}

// FieldValue is one value of a custom field.
type FieldValue struct {
	Value    any    `json:"value"               yaml:"value"`
	EnumID   int64  `json:"enum_id,omitempty"   yaml:"enum_id,omitempty"`
	EnumCode string `json:"enum_code,omitempty" yaml:"enum_code,omitempty"`
}

// Field codes of the built-in contact multi-text fields.
const (
	FieldCodePhone = "PHONE"
	FieldCodeEmail = "EMAIL"
)

// Pipeline represents one lead pipeline.
type Pipeline struct {
	ID           int64  `json:"id"              yaml:"id"`
	Name         string `json:"name"            yaml:"name"`
	Sort         int    `json:"sort"            yaml:"sort"`
	IsMain       bool   `json:"is_main"         yaml:"is_main"`
	IsUnsortedOn bool   `json:"is_unsorted_on"  yaml:"is_unsorted_on"`
	IsArchive    bool   `json:"is_archive"      yaml:"is_archive"`
	AccountID    int64  `json:"account_id"      yaml:"account_id"`
	Embedded     *PipelineEmbedded `json:"_embedded,omitempty" yaml:"embedded,omitempty"`
}

// PipelineEmbedded carries the statuses inlined into a pipeline
// response.
type PipelineEmbedded struct {
	Statuses []Status `json:"statuses" yaml:"statuses"`
}

// Status represents one stage of a pipeline.
type Status struct {
	ID         int64  `json:"id"          yaml:"id"`
	Name       string `json:"name"        yaml:"name"`
	Sort       int    `json:"sort"        yaml:"sort"`
	IsEditable bool   `json:"is_editable" yaml:"is_editable"`
	PipelineID int64  `json:"pipeline_id" yaml:"pipeline_id"`
	Color      string `json:"color"       yaml:"color"`
	Type       int    `json:"type"        yaml:"type"`
	AccountID  int64  `json:"account_id"  yaml:"account_id"`
}

// CustomField represents the definition of one lead custom field.
type CustomField struct {
	ID        int64             `json:"id"                  yaml:"id"`
	Name      string            `json:"name"                yaml:"name"`
	Code      string            `json:"code,omitempty"      yaml:"code,omitempty"`
	Type      string            `json:"type"                yaml:"type"`
	Sort      int               `json:"sort"                yaml:"sort"`
	IsAPIOnly bool              `json:"is_api_only"         yaml:"is_api_only"`
	GroupID   *string           `json:"group_id,omitempty"  yaml:"group_id,omitempty"`
	Enums     []CustomFieldEnum `json:"enums,omitempty"     yaml:"enums,omitempty"`
}

// CustomFieldEnum is one selectable value of an enum-typed custom
// field.
type CustomFieldEnum struct {
	ID    int64  `json:"id"    yaml:"id"`
	Value string `json:"value" yaml:"value"`
	Sort  int    `json:"sort"  yaml:"sort"`
}

// User represents one account user.
type User struct {
	ID       int64           `json:"id"               yaml:"id"`
	Name     string          `json:"name"             yaml:"name"`
	Email    string          `json:"email"            yaml:"email"`
	Lang     string          `json:"lang,omitempty"   yaml:"lang,omitempty"`
	Rights   map[string]any  `json:"rights,omitempty" yaml:"rights,omitempty"`
}

// LossReason represents one lead loss reason.
type LossReason struct {
	ID        int64      `json:"id"         yaml:"id"`
	Name      string     `json:"name"       yaml:"name"`
	Sort      int        `json:"sort"       yaml:"sort"`
	CreatedAt *Timestamp `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Tag represents one lead tag.
type Tag struct {
	ID    int64   `json:"id"              yaml:"id"`
	Name  string  `json:"name"            yaml:"name"`
	Color *string `json:"color,omitempty" yaml:"color,omitempty"`
}
