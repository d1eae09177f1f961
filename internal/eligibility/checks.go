package eligibility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/placement-insights/internal/students"
)

// Check is a single eligibility criterion applied to a student.
type Check interface {
	Name() string
	IsEnabled() bool
	// Evaluate returns the gap description when the student fails the check.
	Evaluate(r *students.Record) (string, bool)
	Status() Status
}

// Status describes a check for reporting.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Details map[string]string `json:"details,omitempty"`
}

// Checks builds the checks for the criteria in evaluation order.
func Checks(c *Criteria) []Check {
	if c == nil {
		c = &Criteria{}
	}

	return []Check{
		&gpaCheck{min: c.MinGPA},
		newSkillsCheck(c.RequiredSkills),
		newBranchCheck(c.Branches),
		&readinessCheck{min: c.MinReadinessScore},
		&yearCheck{year: c.GraduationYear},
	}
}

// Describe returns status entries for the provided checks.
func Describe(checks []Check) []Status {
	statuses := make([]Status, 0, len(checks))
	for _, check := range checks {
		statuses = append(statuses, check.Status())
	}
	return statuses
}

func formatGPA(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type gpaCheck struct {
	min *float64
}

func (c *gpaCheck) Name() string { return "gpa" }

func (c *gpaCheck) IsEnabled() bool { return c.min != nil }

func (c *gpaCheck) Evaluate(r *students.Record) (string, bool) {
	if !c.IsEnabled() || r.GPA >= *c.min {
		return "", false
	}
	return fmt.Sprintf("GPA %s < %s", formatGPA(r.GPA), formatGPA(*c.min)), true
}

func (c *gpaCheck) Status() Status {
	details := map[string]string{}
	if c.min != nil {
		details["min_gpa"] = formatGPA(*c.min)
	}
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Details: details}
}

type skillsCheck struct {
	required []string
}

func newSkillsCheck(required []string) *skillsCheck {
	return &skillsCheck{required: cleanList(required)}
}

func (c *skillsCheck) Name() string { return "required_skills" }

func (c *skillsCheck) IsEnabled() bool { return len(c.required) > 0 }

// Evaluate uses substring containment, so "java" is satisfied by "javascript".
func (c *skillsCheck) Evaluate(r *students.Record) (string, bool) {
	if !c.IsEnabled() {
		return "", false
	}

	have := r.LowerSkills()
	missing := make([]string, 0)
	for _, skill := range c.required {
		needle := strings.ToLower(skill)
		found := false
		for _, s := range have {
			if strings.Contains(s, needle) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, skill)
		}
	}

	if len(missing) == 0 {
		return "", false
	}
	return missingSkillsPrefix + strings.Join(missing, skillSeparator), true
}

func (c *skillsCheck) Status() Status {
	details := map[string]string{}
	if c.IsEnabled() {
		details["required_skills"] = strings.Join(c.required, ",")
	}
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Details: details}
}

type branchCheck struct {
	allowed []string
}

func newBranchCheck(allowed []string) *branchCheck {
	return &branchCheck{allowed: cleanList(allowed)}
}

func (c *branchCheck) Name() string { return "branches" }

func (c *branchCheck) IsEnabled() bool { return len(c.allowed) > 0 }

func (c *branchCheck) Evaluate(r *students.Record) (string, bool) {
	if !c.IsEnabled() {
		return "", false
	}
	for _, b := range c.allowed {
		if strings.EqualFold(b, r.Branch) {
			return "", false
		}
	}
	return fmt.Sprintf("Branch %s not eligible", r.Branch), true
}

func (c *branchCheck) Status() Status {
	details := map[string]string{}
	if c.IsEnabled() {
		details["branches"] = strings.Join(c.allowed, ",")
	}
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Details: details}
}

type readinessCheck struct {
	min *int
}

func (c *readinessCheck) Name() string { return "readiness" }

func (c *readinessCheck) IsEnabled() bool { return c.min != nil }

func (c *readinessCheck) Evaluate(r *students.Record) (string, bool) {
	if !c.IsEnabled() || r.PlacementReadinessScore >= *c.min {
		return "", false
	}
	return fmt.Sprintf("Readiness %d < %d", r.PlacementReadinessScore, *c.min), true
}

func (c *readinessCheck) Status() Status {
	details := map[string]string{}
	if c.min != nil {
		details["min_readiness_score"] = strconv.Itoa(*c.min)
	}
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Details: details}
}

type yearCheck struct {
	year *int
}

func (c *yearCheck) Name() string { return "graduation_year" }

func (c *yearCheck) IsEnabled() bool { return c.year != nil }

func (c *yearCheck) Evaluate(r *students.Record) (string, bool) {
	if !c.IsEnabled() || r.GraduationYear == *c.year {
		return "", false
	}
	return fmt.Sprintf("Year %d ≠ %d", r.GraduationYear, *c.year), true
}

func (c *yearCheck) Status() Status {
	details := map[string]string{}
	if c.year != nil {
		details["graduation_year"] = strconv.Itoa(*c.year)
	}
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Details: details}
}
