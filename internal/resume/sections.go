package resume

import (
	"strings"

	"github.com/jonathan/cvfiller/internal/rawtree"
)

// presentLabel is the end-date label for entries that are still ongoing.
const presentLabel = "Present"

const (
	// entrySep separates education entries (one blank line).
	entrySep = "\n\n"
	// blockSep separates experience and campus entries (two blank lines),
	// keeping multi-line bodies visually distinct.
	blockSep = "\n\n\n"
)

// renderEducation renders the structured education list to a text block.
// Each entry is a single "school major degree start-end" line. Entries
// with no resolvable content are dropped rather than rendered as bare
// punctuation.
func renderEducation(entries []rawtree.Value) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		school := resolveField(entry, "school", "institution", "university")
		major := resolveField(entry, "major", "field", "specialty")
		degree := resolveField(entry, "degree", "level")
		start := resolveField(entry, "start_date", "start", "from")
		end := resolveField(entry, "end_date", "end", "to")
		if school == "" && major == "" && degree == "" && start == "" && end == "" {
			continue
		}
		if end == "" {
			end = presentLabel
		}
		line := strings.TrimSpace(school + " " + major + " " + degree + " " + start + "-" + end)
		lines = append(lines, line)
	}
	return strings.Join(lines, entrySep)
}

// renderWorkEntry renders one work entry: a header line followed by the
// description body with optional achievements and tech-stack enrichments.
// Returns "" for an entry with no resolvable content.
func renderWorkEntry(entry rawtree.Value) string {
	company := resolveField(entry, "company", "organization", "employer")
	position := resolveField(entry, "position", "title", "role")
	start := resolveField(entry, "start_date", "start", "from")
	end := resolveField(entry, "end_date", "end", "to")
	if company == "" && position == "" && start == "" && end == "" && !hasBody(entry) {
		return ""
	}
	if end == "" {
		end = presentLabel
	}
	header := company + " | " + position + " | " + start + " - " + end
	return composeEntry(header, entry)
}

// renderProjectEntry renders one project entry in the same header+body
// shape as work entries. Projects get a default role and no implicit end
// date.
func renderProjectEntry(entry rawtree.Value) string {
	name := resolveField(entry, "name", "project_name", "title")
	role := resolveField(entry, "role", "position")
	start := resolveField(entry, "start_date", "start", "from")
	end := resolveField(entry, "end_date", "end", "to")
	if name == "" && role == "" && start == "" && end == "" && !hasBody(entry) {
		return ""
	}
	if role == "" {
		role = "Member"
	}
	header := name + " | " + role + " | " + start + " - " + end
	return composeEntry(header, entry)
}

// hasBody reports whether an entry carries any body content.
func hasBody(entry rawtree.Value) bool {
	return resolveField(entry, "description", "details", "content") != "" ||
		len(entry.Field("achievements").Strings()) > 0 ||
		len(entry.Field("tech_stack").Strings()) > 0
}

// composeEntry assembles header plus the up-to-three body parts in fixed
// order: description text, achievements block, tech-stack line. A part is
// omitted entirely when its source is blank, never emitted as an empty
// header.
func composeEntry(header string, entry rawtree.Value) string {
	parts := []string{header}

	if desc := resolveField(entry, "description", "details", "content"); desc != "" {
		parts = append(parts, desc)
	}

	if achievements := entry.Field("achievements").Strings(); len(achievements) > 0 {
		var b strings.Builder
		b.WriteString("Achievements:")
		for _, item := range achievements {
			b.WriteString("\n- ")
			b.WriteString(item)
		}
		parts = append(parts, b.String())
	}

	if stack := entry.Field("tech_stack").Strings(); len(stack) > 0 {
		parts = append(parts, "Tech: "+strings.Join(stack, ", "))
	}

	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// renderExperience merges work entries and project entries into one text
// block. All work entries come before all project entries, each group in
// its original order; there is no cross-sorting.
func renderExperience(work, projects []rawtree.Value) string {
	blocks := make([]string, 0, len(work)+len(projects))
	for _, entry := range work {
		if block := renderWorkEntry(entry); block != "" {
			blocks = append(blocks, block)
		}
	}
	for _, entry := range projects {
		if block := renderProjectEntry(entry); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, blockSep)
}

// renderCampus renders campus activity entries: same header+body shape as
// work entries but with a single description field, no enrichments.
func renderCampus(entries []rawtree.Value) string {
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		org := resolveField(entry, "organization", "club")
		role := resolveField(entry, "role", "position", "title")
		start := resolveField(entry, "start_date", "start", "from")
		end := resolveField(entry, "end_date", "end", "to")
		desc := resolveField(entry, "description", "details", "content")
		if org == "" && role == "" && start == "" && end == "" && desc == "" {
			continue
		}
		if end == "" {
			end = presentLabel
		}
		block := org + " | " + role + " | " + start + " - " + end
		if desc != "" {
			block += "\n" + desc
		}
		blocks = append(blocks, strings.TrimSpace(block))
	}
	return strings.Join(blocks, blockSep)
}

// renderSkills renders the skills section through its fallback tiers:
// nested skills list, flat skills list, pre-rendered text.
func renderSkills(payload rawtree.Value) string {
	if nested := payload.Field("skills_certifications").Field("skills").Strings(); len(nested) > 0 {
		return strings.Join(nested, "\n")
	}
	if flat := payload.Field("skills").Strings(); len(flat) > 0 {
		return strings.Join(flat, "\n")
	}
	return resolveField(payload, "skill_text", "skills_text")
}
