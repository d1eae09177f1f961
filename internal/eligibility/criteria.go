// Package eligibility simulates hypothetical job criteria against the
// student population and recommends interventions for the gaps it finds.
package eligibility

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCriteria wraps every criteria validation failure.
var ErrInvalidCriteria = errors.New("invalid eligibility criteria")

// Criteria is a hypothetical set of job requirements. Nil or empty members
// are not evaluated.
type Criteria struct {
	MinGPA            *float64 `json:"min_gpa,omitempty" mapstructure:"min-gpa" validate:"omitempty,gte=0,lte=10"`
	RequiredSkills    []string `json:"required_skills,omitempty" mapstructure:"required-skills" validate:"omitempty,dive,max=100"`
	Branches          []string `json:"branches,omitempty" mapstructure:"branches" validate:"omitempty,dive,max=100"`
	MinReadinessScore *int     `json:"min_readiness_score,omitempty" mapstructure:"min-readiness-score" validate:"omitempty,gte=0,lte=100"`
	GraduationYear    *int     `json:"graduation_year,omitempty" mapstructure:"graduation-year" validate:"omitempty,gte=1950,lte=2200"`
}

var validate = validator.New()

// Validate checks value ranges. Forecast itself never validates; callers
// are expected to do so before invoking it.
func (c *Criteria) Validate() error {
	if c == nil {
		return nil
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			problems := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s failed on %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidCriteria, strings.Join(problems, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	return nil
}

// IsEmpty reports whether no criterion would be evaluated.
func (c *Criteria) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.MinGPA == nil &&
		len(cleanList(c.RequiredSkills)) == 0 &&
		len(cleanList(c.Branches)) == 0 &&
		c.MinReadinessScore == nil &&
		c.GraduationYear == nil
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Float returns a pointer to v. Handy for building criteria literals.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
