package inquiryform

// Field names one of the four inputs of the inquiry form.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldCompany
	FieldRequirements
)

// Fields lists the inputs in form order.
var Fields = []Field{FieldName, FieldEmail, FieldCompany, FieldRequirements}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldCompany:
		return "company"
	case FieldRequirements:
		return "requirements"
	}
	return "unknown"
}

// Draft is the form content for one session. It is also the request body of
// POST /api/inquiries.
type Draft struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Company      string `json:"company"`
	Requirements string `json:"requirements"`
}

// Get returns the value of f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldCompany:
		return d.Company
	case FieldRequirements:
		return d.Requirements
	}
	return ""
}

// With returns a copy of d with f set to v.
func (d Draft) With(f Field, v string) Draft {
	switch f {
	case FieldName:
		d.Name = v
	case FieldEmail:
		d.Email = v
	case FieldCompany:
		d.Company = v
	case FieldRequirements:
		d.Requirements = v
	}
	return d
}

// Complete reports whether every field is non-empty. Whitespace counts as
// content and e-mail format is left to the server.
func (d Draft) Complete() bool {
	return d.Name != "" && d.Email != "" && d.Company != "" && d.Requirements != ""
}

// IsZero reports whether the draft is all-empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}
