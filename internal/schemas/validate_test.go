package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateParsedResume_Valid(t *testing.T) {
	doc := []byte(`{
		"personal_info": {"name": "Jane Doe", "email": "jane@example.com"},
		"education": [{"school": "State University", "major": "CS", "degree": "BS"}],
		"work_experience": [{
			"company": "Acme",
			"position": "Engineer",
			"achievements": ["Shipped v2"],
			"tech_stack": ["Go"]
		}],
		"skills_certifications": {"skills": ["Go", "SQL"]}
	}`)

	assert.NoError(t, ValidateParsedResume(doc))
}

func TestValidateParsedResume_EmptyObject(t *testing.T) {
	// Every section is optional; the reconciler handles absence.
	assert.NoError(t, ValidateParsedResume([]byte(`{}`)))
}

func TestValidateParsedResume_WrongShape(t *testing.T) {
	doc := []byte(`{"education": "went to school"}`)

	err := ValidateParsedResume(doc)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "education", validationErr.Errors[0].Field)
}

func TestValidateParsedResume_UnknownFieldsPass(t *testing.T) {
	doc := []byte(`{"personal_info": {"name": "Jane", "wechat": "jane123"}, "extra": true}`)

	assert.NoError(t, ValidateParsedResume(doc))
}

func TestValidateAdvice_Valid(t *testing.T) {
	doc := []byte(`{
		"score": 78,
		"summary": "Solid resume with room to quantify impact.",
		"strengths": ["Clear structure"],
		"improvements": [{"section": "work_experience", "issue": "vague", "suggestion": "add numbers"}],
		"action_items": ["Quantify achievements"]
	}`)

	assert.NoError(t, ValidateAdvice(doc))
}

func TestValidateAdvice_MissingRequired(t *testing.T) {
	err := ValidateAdvice([]byte(`{"strengths": []}`))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateAdvice_MalformedDocument(t *testing.T) {
	err := ValidateAdvice([]byte(`not json`))
	assert.Error(t, err)
}
