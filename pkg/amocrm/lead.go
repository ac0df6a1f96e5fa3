package amocrm

// LeadContact is one contact attached to a lead.
type LeadContact struct {
	ID     int64 `json:"id"      yaml:"id"`
	IsMain bool  `json:"is_main" yaml:"is_main"`
}

// EmbeddedCompany is one company reference inside an embedded
// collection.
type EmbeddedCompany struct {
	ID int64 `json:"id" yaml:"id"`
}

// LeadEmbedded carries the related objects inlined into a lead
// response via the "with" expansion.
type LeadEmbedded struct {
	Tags      []Tag             `json:"tags,omitempty"      yaml:"tags,omitempty"`
	Companies []EmbeddedCompany `json:"companies,omitempty" yaml:"companies,omitempty"`
	Contacts  []LeadContact     `json:"contacts,omitempty"  yaml:"contacts,omitempty"`
}

// Lead is the base lead record. Every field is optional on read; nil
// means the server omitted it or the caller never set it, and unset
// fields are never serialized. Callers wanting typed access to custom
// fields embed Lead in their own type and register a factory for it.
type Lead struct {
	ID                *int64             `json:"id,omitempty"                  yaml:"id,omitempty"`
	Name              *string            `json:"name,omitempty"                yaml:"name,omitempty"`
	Price             *int64             `json:"price,omitempty"               yaml:"price,omitempty"`
	ResponsibleUserID *int64             `json:"responsible_user_id,omitempty" yaml:"responsible_user_id,omitempty"`
	GroupID           *int64             `json:"group_id,omitempty"            yaml:"group_id,omitempty"`
	StatusID          *int64             `json:"status_id,omitempty"           yaml:"status_id,omitempty"`
	OldStatusID       *int64             `json:"old_status_id,omitempty"       yaml:"old_status_id,omitempty"`
	PipelineID        *int64             `json:"pipeline_id,omitempty"         yaml:"pipeline_id,omitempty"`
	LossReasonID      *int64             `json:"loss_reason_id,omitempty"      yaml:"loss_reason_id,omitempty"`
	CreatedBy         *int64             `json:"created_by,omitempty"          yaml:"created_by,omitempty"`
	UpdatedBy         *int64             `json:"updated_by,omitempty"          yaml:"updated_by,omitempty"`
	CreatedAt         *Timestamp         `json:"created_at,omitempty"          yaml:"created_at,omitempty"`
	UpdatedAt         *Timestamp         `json:"updated_at,omitempty"          yaml:"updated_at,omitempty"`
	ClosedAt          *Timestamp         `json:"closed_at,omitempty"           yaml:"closed_at,omitempty"`
	ClosestTaskAt     *Timestamp         `json:"closest_task_at,omitempty"     yaml:"closest_task_at,omitempty"`
	IsDeleted         *bool              `json:"is_deleted,omitempty"          yaml:"is_deleted,omitempty"`
	CustomFieldsValues []CustomFieldValue `json:"custom_fields_values,omitempty" yaml:"custom_fields_values,omitempty"`
	Score             *float64           `json:"score,omitempty"               yaml:"score,omitempty"`
	AccountID         *int64             `json:"account_id,omitempty"          yaml:"account_id,omitempty"`
	LaborCost         *float64           `json:"labor_cost,omitempty"          yaml:"labor_cost,omitempty"`
	Embedded          *LeadEmbedded      `json:"_embedded,omitempty"           yaml:"embedded,omitempty"`

	// Contacts mirrors Embedded.Contacts after every parse. It is
	// derived, not authoritative, and never serialized.
	Contacts []LeadContact `json:"contacts,omitempty" yaml:"contacts,omitempty"`
}

// leadSchema is the field descriptor table for Lead, built once.
// Aliased fields list input keys in priority order, current name first.
var leadSchema = &recordSchema[Lead]{
	fields: []fieldSpec[Lead]{
		scalar("id", func(l *Lead) **int64 { return &l.ID }),
		scalar("name", func(l *Lead) **string { return &l.Name }),
		scalar("price", func(l *Lead) **int64 { return &l.Price }),
		scalar("responsible_user_id", func(l *Lead) **int64 { return &l.ResponsibleUserID }),
		scalar("group_id", func(l *Lead) **int64 { return &l.GroupID }),
		scalar("status_id", func(l *Lead) **int64 { return &l.StatusID }),
		scalar("old_status_id", func(l *Lead) **int64 { return &l.OldStatusID }),
		scalar("pipeline_id", func(l *Lead) **int64 { return &l.PipelineID }),
		scalar("loss_reason_id", func(l *Lead) **int64 { return &l.LossReasonID }),
		scalar("created_by", func(l *Lead) **int64 { return &l.CreatedBy },
			aliased[Lead]("created_by", "created_user_id"), excluded[Lead]()),
		scalar("updated_by", func(l *Lead) **int64 { return &l.UpdatedBy },
			aliased[Lead]("updated_by", "modified_user_id"), excluded[Lead]()),
		scalar("created_at", func(l *Lead) **Timestamp { return &l.CreatedAt }, excluded[Lead]()),
		scalar("updated_at", func(l *Lead) **Timestamp { return &l.UpdatedAt }, excluded[Lead]()),
		scalar("closed_at", func(l *Lead) **Timestamp { return &l.ClosedAt }, excluded[Lead]()),
		scalar("closest_task_at", func(l *Lead) **Timestamp { return &l.ClosestTaskAt }, excluded[Lead]()),
		scalar("is_deleted", func(l *Lead) **bool { return &l.IsDeleted }),
		list("custom_fields_values", func(l *Lead) *[]CustomFieldValue { return &l.CustomFieldsValues },
			aliased[Lead]("custom_fields_values", "custom_fields")),
		scalar("score", func(l *Lead) **float64 { return &l.Score }),
		scalar("account_id", func(l *Lead) **int64 { return &l.AccountID }),
		scalar("labor_cost", func(l *Lead) **float64 { return &l.LaborCost }),
		scalar("embedded", func(l *Lead) **LeadEmbedded { return &l.Embedded },
			aliased[Lead]("_embedded"), outputAs[Lead]("_embedded")),
		list("contacts", func(l *Lead) *[]LeadContact { return &l.Contacts }, excluded[Lead]()),
	},
	post: []func(*Lead){
		func(l *Lead) {
			if l.Embedded != nil && len(l.Embedded.Contacts) > 0 {
				l.Contacts = l.Embedded.Contacts
			}
		},
	},
}

// UnmarshalJSON implements json.Unmarshaler via the descriptor table.
func (l *Lead) UnmarshalJSON(data []byte) error {
	return leadSchema.parse(data, l)
}

// CreatePayload serializes the lead for POST, emitting only fields the
// caller populated, under their canonical names.
func (l *Lead) CreatePayload() map[string]any {
	return leadSchema.payload(l, false)
}

// UpdatePayload serializes the lead for PATCH, emitting only fields
// the caller populated, under their output names.
func (l *Lead) UpdatePayload() map[string]any {
	return leadSchema.payload(l, true)
}

// RecordID returns the lead identifier, reporting whether it is set.
func (l *Lead) RecordID() (int64, bool) {
	if l.ID == nil {
		return 0, false
	}

	return *l.ID, true
}

// leadBase marks types usable as the lead slot of a typed client.
// Caller subtypes satisfy LeadRecord by embedding Lead.
func (l *Lead) leadBase() *Lead { return l }

// LeadRecord is the capability set a concrete lead type must provide.
// Lead itself, or any struct embedding Lead, satisfies it; the
// unexported method keeps unrelated types out of the lead slot.
type LeadRecord interface {
	leadBase() *Lead
	RecordID() (int64, bool)
	CreatePayload() map[string]any
	UpdatePayload() map[string]any
}
