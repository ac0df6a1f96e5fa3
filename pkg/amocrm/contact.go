package amocrm

// ContactLead is one lead attached to a contact.
type ContactLead struct {
	ID int64 `json:"id" yaml:"id"`
}

// ContactEmbedded carries the related objects inlined into a contact
// response via the "with" expansion.
type ContactEmbedded struct {
	Tags      []Tag             `json:"tags,omitempty"      yaml:"tags,omitempty"`
	Leads     []ContactLead     `json:"leads,omitempty"     yaml:"leads,omitempty"`
	Companies []EmbeddedCompany `json:"companies,omitempty" yaml:"companies,omitempty"`
}

// Contact is the base contact record. Field semantics follow Lead:
// nil means unset, and unset fields are never serialized.
type Contact struct {
	ID                *int64             `json:"id,omitempty"                  yaml:"id,omitempty"`
	Name              *string            `json:"name,omitempty"                yaml:"name,omitempty"`
	FirstName         *string            `json:"first_name,omitempty"          yaml:"first_name,omitempty"`
	LastName          *string            `json:"last_name,omitempty"           yaml:"last_name,omitempty"`
	ResponsibleUserID *int64             `json:"responsible_user_id,omitempty" yaml:"responsible_user_id,omitempty"`
	GroupID           *int64             `json:"group_id,omitempty"            yaml:"group_id,omitempty"`
	CreatedBy         *int64             `json:"created_by,omitempty"          yaml:"created_by,omitempty"`
	UpdatedBy         *int64             `json:"updated_by,omitempty"          yaml:"updated_by,omitempty"`
	CreatedAt         *Timestamp         `json:"created_at,omitempty"          yaml:"created_at,omitempty"`
	UpdatedAt         *Timestamp         `json:"updated_at,omitempty"          yaml:"updated_at,omitempty"`
	ClosestTaskAt     *Timestamp         `json:"closest_task_at,omitempty"     yaml:"closest_task_at,omitempty"`
	IsDeleted         *bool              `json:"is_deleted,omitempty"          yaml:"is_deleted,omitempty"`
	IsUnsorted        *bool              `json:"is_unsorted,omitempty"         yaml:"is_unsorted,omitempty"`
	CustomFieldsValues []CustomFieldValue `json:"custom_fields_values,omitempty" yaml:"custom_fields_values,omitempty"`
	AccountID         *int64             `json:"account_id,omitempty"          yaml:"account_id,omitempty"`
	Embedded          *ContactEmbedded   `json:"_embedded,omitempty"           yaml:"embedded,omitempty"`

	// Leads mirrors Embedded.Leads after every parse; derived, never
	// serialized.
	Leads []ContactLead `json:"leads,omitempty" yaml:"leads,omitempty"`

	// Phone and Email are derived from the built-in PHONE/EMAIL
	// multi-text custom fields after every parse; never serialized.
	Phone []FieldValue `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email []FieldValue `json:"email,omitempty" yaml:"email,omitempty"`
}

// contactSchema is the field descriptor table for Contact, built once.
var contactSchema = &recordSchema[Contact]{
	fields: []fieldSpec[Contact]{
		scalar("id", func(c *Contact) **int64 { return &c.ID }),
		scalar("name", func(c *Contact) **string { return &c.Name }),
		scalar("first_name", func(c *Contact) **string { return &c.FirstName }),
		scalar("last_name", func(c *Contact) **string { return &c.LastName }),
		scalar("responsible_user_id", func(c *Contact) **int64 { return &c.ResponsibleUserID }),
		scalar("group_id", func(c *Contact) **int64 { return &c.GroupID }),
		scalar("created_by", func(c *Contact) **int64 { return &c.CreatedBy },
			aliased[Contact]("created_by", "created_user_id"), excluded[Contact]()),
		scalar("updated_by", func(c *Contact) **int64 { return &c.UpdatedBy },
			aliased[Contact]("updated_by", "modified_user_id"), excluded[Contact]()),
		scalar("created_at", func(c *Contact) **Timestamp { return &c.CreatedAt }, excluded[Contact]()),
		scalar("updated_at", func(c *Contact) **Timestamp { return &c.UpdatedAt }, excluded[Contact]()),
		scalar("closest_task_at", func(c *Contact) **Timestamp { return &c.ClosestTaskAt }),
		scalar("is_deleted", func(c *Contact) **bool { return &c.IsDeleted }),
		scalar("is_unsorted", func(c *Contact) **bool { return &c.IsUnsorted }),
		list("custom_fields_values", func(c *Contact) *[]CustomFieldValue { return &c.CustomFieldsValues },
			aliased[Contact]("custom_fields_values", "custom_fields")),
		scalar("account_id", func(c *Contact) **int64 { return &c.AccountID }),
		scalar("embedded", func(c *Contact) **ContactEmbedded { return &c.Embedded },
			aliased[Contact]("_embedded"), outputAs[Contact]("_embedded")),
		list("leads", func(c *Contact) *[]ContactLead { return &c.Leads },
			aliased[Contact]("leads", "linked_leads_id"), excluded[Contact]()),
		list("phone", func(c *Contact) *[]FieldValue { return &c.Phone }, excluded[Contact]()),
		list("email", func(c *Contact) *[]FieldValue { return &c.Email }, excluded[Contact]()),
	},
	post: []func(*Contact){
		func(c *Contact) {
			if c.Embedded != nil && len(c.Embedded.Leads) > 0 {
				c.Leads = c.Embedded.Leads
			}
		},
		func(c *Contact) {
			c.Phone = c.fieldValuesByCode(FieldCodePhone)
			c.Email = c.fieldValuesByCode(FieldCodeEmail)
		},
	},
}

func (c *Contact) fieldValuesByCode(code string) []FieldValue {
	for _, cf := range c.CustomFieldsValues {
		if cf.FieldCode == code {
			return cf.Values
		}
	}

	return nil
}

// UnmarshalJSON implements json.Unmarshaler via the descriptor table.
func (c *Contact) UnmarshalJSON(data []byte) error {
	return contactSchema.parse(data, c)
}

// CreatePayload serializes the contact for POST; set fields only,
// canonical names.
func (c *Contact) CreatePayload() map[string]any {
	return contactSchema.payload(c, false)
}

// UpdatePayload serializes the contact for PATCH; set fields only,
// output names.
func (c *Contact) UpdatePayload() map[string]any {
	return contactSchema.payload(c, true)
}

// RecordID returns the contact identifier, reporting whether it is
// set.
func (c *Contact) RecordID() (int64, bool) {
	if c.ID == nil {
		return 0, false
	}

	return *c.ID, true
}

func (c *Contact) contactBase() *Contact { return c }

// ContactRecord is the capability set a concrete contact type must
// provide. Contact itself, or any struct embedding Contact, satisfies
// it; the unexported method keeps unrelated types out of the contact
// slot.
type ContactRecord interface {
	contactBase() *Contact
	RecordID() (int64, bool)
	CreatePayload() map[string]any
	UpdatePayload() map[string]any
}
