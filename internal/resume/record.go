// Package resume provides the canonical resume record and the reconciler
// that builds one from a raw extraction payload.
package resume

// Canonical field names, used for field-level edits and export labels.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldEducation      = "education"
	FieldExperience     = "experience"
	FieldCampusActivity = "campus_experience"
	FieldSkills         = "skills"
)

// Fields lists the canonical field names in display order.
var Fields = []string{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldEducation,
	FieldExperience,
	FieldCampusActivity,
	FieldSkills,
}

// Labels maps canonical field names to human-readable labels for the
// text export projection.
var Labels = map[string]string{
	FieldName:           "Name",
	FieldEmail:          "Email",
	FieldPhone:          "Phone",
	FieldEducation:      "Education",
	FieldExperience:     "Work Experience",
	FieldCampusActivity: "Campus Activities",
	FieldSkills:         "Skills",
}

// Record is the canonical, flat resume representation. Every field is
// plain text and always materialized: absence in the source payload
// becomes an empty string, so downstream rendering never branches on
// presence. The zero value is the empty record.
type Record struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Education      string `json:"education"`
	Experience     string `json:"experience"`
	CampusActivity string `json:"campus_experience"`
	Skills         string `json:"skills"`
}

// Get returns the value of a canonical field by name. Unknown names
// yield an empty string.
func (r Record) Get(field string) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldEducation:
		return r.Education
	case FieldExperience:
		return r.Experience
	case FieldCampusActivity:
		return r.CampusActivity
	case FieldSkills:
		return r.Skills
	}
	return ""
}

// Set replaces the value of a canonical field by name. Unknown names are
// a no-op.
func (r *Record) Set(field, value string) {
	switch field {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldEducation:
		r.Education = value
	case FieldExperience:
		r.Experience = value
	case FieldCampusActivity:
		r.CampusActivity = value
	case FieldSkills:
		r.Skills = value
	}
}

// IsEmpty reports whether every field is empty.
func (r Record) IsEmpty() bool {
	return r == Record{}
}
