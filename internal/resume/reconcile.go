package resume

import "github.com/jonathan/cvfiller/internal/rawtree"

// Reconcile normalizes a raw extraction payload into a canonical Record.
// It is pure, total and deterministic: extraction quality varies by
// document and by service version, so every field degrades through its
// fallback chain (structured list, pre-rendered text, empty string) and
// the function never fails. A malformed or absent payload reconciles to
// the empty record.
func Reconcile(payload rawtree.Value) Record {
	personal := payload.Field("personal_info")

	rec := Record{
		Name:  firstNonEmpty(resolveField(personal, "name"), resolveField(payload, "name")),
		Email: firstNonEmpty(resolveField(personal, "email"), resolveField(payload, "email")),
		Phone: firstNonEmpty(resolveField(personal, "phone"), resolveField(payload, "phone")),
	}

	rec.Education = renderEducation(payload.Field("education").Items())
	if rec.Education == "" {
		rec.Education = resolveField(payload, "education_text")
	}

	rec.Experience = renderExperience(
		payload.Field("work_experience").Items(),
		payload.Field("projects").Items(),
	)
	if rec.Experience == "" {
		rec.Experience = resolveField(payload, "experience_text")
	}

	rec.CampusActivity = renderCampus(payload.Field("campus_experience").Items())
	if rec.CampusActivity == "" {
		rec.CampusActivity = resolveField(payload, "campus_text", "campus_experience_text")
	}

	rec.Skills = renderSkills(payload)

	return rec
}

// ReconcileJSON decodes raw JSON bytes and reconciles them. Malformed
// JSON reconciles to the empty record, preserving totality at the wire
// boundary.
func ReconcileJSON(data []byte) Record {
	payload, err := rawtree.Decode(data)
	if err != nil {
		return Record{}
	}
	return Reconcile(payload)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
