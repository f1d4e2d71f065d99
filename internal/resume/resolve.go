package resume

import (
	"strings"

	"github.com/jonathan/cvfiller/internal/rawtree"
)

// resolveField walks keys in priority order and returns the first value
// that coerces to a non-blank string. The extraction service has used
// several synonyms for the same fact across versions, so every canonical
// field is resolved against an ordered synonym list. Absence is normal
// and yields "".
func resolveField(source rawtree.Value, keys ...string) string {
	for _, key := range keys {
		v := source.Field(key)
		if v.IsBlank() {
			continue
		}
		if s := strings.TrimSpace(v.Text()); s != "" {
			return s
		}
	}
	return ""
}
