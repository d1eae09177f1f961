package students

import (
	"context"
	"errors"
	"strings"
)

// ErrNoRecords is returned by sources that could not find any student.
var ErrNoRecords = errors.New("no student records found")

// Record is a single student profile as supplied by the portal.
// Every numeric field defaults to zero when the source omits it.
type Record struct {
	ID                      string   `json:"student_id" mapstructure:"student_id"`
	Name                    string   `json:"name,omitempty" mapstructure:"name"`
	GPA                     float64  `json:"gpa" mapstructure:"gpa"`
	Branch                  string   `json:"branch" mapstructure:"branch"`
	GraduationYear          int      `json:"graduation_year" mapstructure:"graduation_year"`
	Skills                  []string `json:"skills,omitempty" mapstructure:"skills"`
	ProfileCompleteness     int      `json:"profile_completeness" mapstructure:"profile_completeness"`
	PlacementReadinessScore int      `json:"placement_readiness_score" mapstructure:"placement_readiness_score"`
	ResumePresent           bool     `json:"resume_present" mapstructure:"resume_present"`
	ApplicationCount        int      `json:"application_count" mapstructure:"application_count"`
	MockInterviewCount      int      `json:"mock_interview_count" mapstructure:"mock_interview_count"`
}

// Counts holds the auxiliary per-student counters.
type Counts struct {
	Applications   int
	MockInterviews int
}

// Source supplies the full student population.
type Source interface {
	List(ctx context.Context) ([]*Record, error)
}

// CountsLookup resolves the auxiliary counters of a single student.
type CountsLookup interface {
	Counts(ctx context.Context, studentID string) (Counts, error)
}

// LowerSkills returns the student's skills lower-cased for matching.
// Blank entries are dropped.
func (r *Record) LowerSkills() []string {
	out := make([]string, 0, len(r.Skills))
	for _, skill := range r.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		out = append(out, skill)
	}
	return out
}

// SkillCount is the number of distinct non-blank skills, compared
// case-insensitively.
func (r *Record) SkillCount() int {
	seen := make(map[string]struct{}, len(r.Skills))
	for _, skill := range r.LowerSkills() {
		seen[skill] = struct{}{}
	}
	return len(seen)
}

// WithCounts returns a shallow copy of the record carrying the given counts.
func (r *Record) WithCounts(c Counts) *Record {
	cp := *r
	cp.ApplicationCount = c.Applications
	cp.MockInterviewCount = c.MockInterviews
	return &cp
}

// IDs returns identifiers of the given records in order.
func IDs(records []*Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		ids = append(ids, r.ID)
	}
	return ids
}
