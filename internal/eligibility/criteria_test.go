package eligibility

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteriaValidate(t *testing.T) {
	require.NoError(t, fullCriteria().Validate())
	require.NoError(t, (&Criteria{}).Validate())

	var nilCriteria *Criteria
	require.NoError(t, nilCriteria.Validate())

	cases := map[string]*Criteria{
		"gpa above scale":    {MinGPA: Float(10.5)},
		"negative gpa":       {MinGPA: Float(-1)},
		"readiness too high": {MinReadinessScore: Int(101)},
		"year too old":       {GraduationYear: Int(1800)},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCriteria))
		})
	}
}

func TestCriteriaIsEmpty(t *testing.T) {
	assert.True(t, (&Criteria{}).IsEmpty())
	assert.True(t, (&Criteria{RequiredSkills: []string{" "}}).IsEmpty())
	assert.False(t, (&Criteria{GraduationYear: Int(2026)}).IsEmpty())

	var nilCriteria *Criteria
	assert.True(t, nilCriteria.IsEmpty())
}
