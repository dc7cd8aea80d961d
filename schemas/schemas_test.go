package schemas_test

import (
	"encoding/json"
	"errors"
	"testing"

	internalschemas "github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSchema_ValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(schemas.Profile), &v))
	assert.Equal(t, "Resume Profile", v["title"])
}

func TestProfileSchema_AcceptsMinimalProfile(t *testing.T) {
	doc := `{
		"contact": {"full_name": "Jane Doe", "email": "jane@example.com", "phone": "963-258-7410"},
		"target_role": "Logistics Manager",
		"skills": ["Planning", {"name": "Leadership"}],
		"education": [{"institution": "UT", "degree": "BS", "gpa": "85"}],
		"additional_info": {"volunteer": ["Food bank", {"organization": "Habitat", "role": "Builder"}]}
	}`

	assert.NoError(t, internalschemas.ValidateProfile([]byte(doc)))
}

func TestProfileSchema_AcceptsNullOptionalValues(t *testing.T) {
	doc := `{
		"contact": {"full_name": "Jane Doe", "email": "jane@example.com", "phone": "963-258-7410",
			"linkedin": null, "branch": null},
		"summary": null,
		"target_role": null,
		"experience": [{"title": "Squad Leader", "start_date": "2019-01", "end_date": null, "current": true, "bullets": null}],
		"education": [{"institution": "UT", "degree": "BS", "gpa": null, "graduation_year": null}],
		"skills": null,
		"additional_info": {"awards": null, "volunteer": null, "references_available": null},
		"preferences": null
	}`

	assert.NoError(t, internalschemas.ValidateProfile([]byte(doc)))
}

func TestProfileSchema_RejectsWrongShapes(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "missing contact",
			doc:   `{}`,
			field: "contact",
		},
		{
			name:  "missing phone",
			doc:   `{"contact": {"full_name": "Jane", "email": "j@x.io"}}`,
			field: "contact.phone",
		},
		{
			name:  "null full name",
			doc:   `{"contact": {"full_name": null, "email": "j@x.io", "phone": "1"}}`,
			field: "contact.full_name",
		},
		{
			name:  "experience not a list",
			doc:   `{"contact": {"full_name": "Jane", "email": "j@x.io", "phone": "1"}, "experience": "Army"}`,
			field: "experience",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := internalschemas.ValidateProfile([]byte(tt.doc))
			require.Error(t, err)

			var verr *internalschemas.ValidationError
			require.True(t, errors.As(err, &verr))

			var fields []string
			for _, fe := range verr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}
