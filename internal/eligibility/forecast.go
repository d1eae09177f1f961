package eligibility

import (
	"math"
	"sort"

	"github.com/spigell/placement-insights/internal/students"
)

const (
	missingSkillsKey    = "Missing skills"
	missingSkillsPrefix = missingSkillsKey + ": "
	skillSeparator      = ", "
)

// Summary is the per-student view returned by a forecast.
type Summary struct {
	StudentID               string   `json:"student_id"`
	Name                    string   `json:"name,omitempty"`
	GPA                     float64  `json:"gpa"`
	Branch                  string   `json:"branch"`
	GraduationYear          int      `json:"graduation_year"`
	PlacementReadinessScore int      `json:"placement_readiness_score"`
	Skills                  []string `json:"skills"`
	Gaps                    []string `json:"gaps,omitempty"`
}

// GapTable counts ineligible students per exact gap description.
type GapTable map[string]int

// GapEntry is one row of a GapTable.
type GapEntry struct {
	Gap   string `json:"gap"`
	Count int    `json:"count"`
}

// Keys returns gap descriptions in lexical order.
func (t GapTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns rows ordered by count descending, then by gap text.
func (t GapTable) Entries() []GapEntry {
	entries := make([]GapEntry, 0, len(t))
	for _, k := range t.Keys() {
		entries = append(entries, GapEntry{Gap: k, Count: t[k]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Result is the outcome of a forecast.
type Result struct {
	Total           int               `json:"total"`
	EligibleCount   int               `json:"eligible_count"`
	EligibilityRate int               `json:"eligibility_rate"`
	Eligible        []*Summary        `json:"eligible"`
	Ineligible      []*Summary        `json:"ineligible"`
	GapTable        GapTable          `json:"gap_table"`
	Recommendations []*Recommendation `json:"recommendations"`
}

// Evaluate applies every enabled check to one student and returns all gaps.
func Evaluate(checks []Check, r *students.Record) []string {
	gaps := make([]string, 0)
	for _, check := range checks {
		if !check.IsEnabled() {
			continue
		}
		if gap, failed := check.Evaluate(r); failed {
			gaps = append(gaps, gap)
		}
	}
	return gaps
}

// Forecast evaluates criteria against every student, builds the gap table
// and the recommendations derived from it.
func Forecast(records []*students.Record, criteria *Criteria) *Result {
	if criteria == nil {
		criteria = &Criteria{}
	}

	result := &Result{
		Eligible:        []*Summary{},
		Ineligible:      []*Summary{},
		GapTable:        GapTable{},
		Recommendations: []*Recommendation{},
	}

	checks := Checks(criteria)

	for _, r := range records {
		if r == nil {
			continue
		}
		result.Total++

		summary := summarize(r)
		gaps := Evaluate(checks, r)
		if len(gaps) == 0 {
			result.Eligible = append(result.Eligible, summary)
			continue
		}

		summary.Gaps = gaps
		result.Ineligible = append(result.Ineligible, summary)
		for _, gap := range gaps {
			result.GapTable[gap]++
		}
	}

	if result.Total == 0 {
		return result
	}

	result.EligibleCount = len(result.Eligible)
	result.EligibilityRate = int(math.Round(float64(result.EligibleCount) / float64(result.Total) * 100))
	result.Recommendations = Recommend(result.GapTable, criteria, len(result.Ineligible))

	return result
}

func summarize(r *students.Record) *Summary {
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	return &Summary{
		StudentID:               r.ID,
		Name:                    r.Name,
		GPA:                     r.GPA,
		Branch:                  r.Branch,
		GraduationYear:          r.GraduationYear,
		PlacementReadinessScore: r.PlacementReadinessScore,
		Skills:                  skills,
	}
}
