// Package risk flags students who are likely to fail placement.
package risk

import (
	"sort"

	"github.com/spigell/placement-insights/internal/students"
)

// Threshold is the minimum score for a student to be reported as at risk.
const Threshold = 40

// Level is the categorical risk bucket.
type Level string

const (
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Factor is a single weighted risk condition.
type Factor struct {
	Label   string
	Weight  int
	Trigger func(r *students.Record) bool
}

// Factors lists every risk condition in reporting order.
var Factors = []Factor{
	{
		Label:   "Incomplete profile (<50%)",
		Weight:  30,
		Trigger: func(r *students.Record) bool { return r.ProfileCompleteness < 50 },
	},
	{
		Label:   "Low readiness score (<40)",
		Weight:  25,
		Trigger: func(r *students.Record) bool { return r.PlacementReadinessScore < 40 },
	},
	{
		Label:   "Limited skills (<3)",
		Weight:  20,
		Trigger: func(r *students.Record) bool { return r.SkillCount() < 3 },
	},
	{
		Label:   "No resume uploaded",
		Weight:  15,
		Trigger: func(r *students.Record) bool { return !r.ResumePresent },
	},
	{
		Label:   "Never applied to any drive",
		Weight:  20,
		Trigger: func(r *students.Record) bool { return r.ApplicationCount == 0 },
	},
	{
		Label:   "No mock interviews taken",
		Weight:  15,
		Trigger: func(r *students.Record) bool { return r.MockInterviewCount == 0 },
	},
}

// Assessment is the derived risk profile of one student.
type Assessment struct {
	StudentID               string   `json:"student_id"`
	Name                    string   `json:"name,omitempty"`
	RiskScore               int      `json:"risk_score"`
	RiskLevel               Level    `json:"risk_level"`
	RiskFactors             []string `json:"risk_factors"`
	GPA                     float64  `json:"gpa"`
	Branch                  string   `json:"branch"`
	GraduationYear          int      `json:"graduation_year"`
	ProfileCompleteness     int      `json:"profile_completeness"`
	PlacementReadinessScore int      `json:"placement_readiness_score"`
	SkillCount              int      `json:"skill_count"`
}

// Score returns the sum of triggered factor weights and their labels.
func Score(r *students.Record) (int, []string) {
	score := 0
	labels := make([]string, 0, len(Factors))
	for _, f := range Factors {
		if f.Trigger(r) {
			score += f.Weight
			labels = append(labels, f.Label)
		}
	}
	return score, labels
}

// LevelFor buckets a score. Callers only pass scores at or above Threshold.
func LevelFor(score int) Level {
	switch {
	case score >= 70:
		return LevelCritical
	case score >= 50:
		return LevelHigh
	default:
		return LevelMedium
	}
}

// Assess scores every student and returns those at or above Threshold,
// highest score first. Students with equal scores keep input order.
func Assess(records []*students.Record) []*Assessment {
	out := make([]*Assessment, 0)
	for _, r := range records {
		if r == nil {
			continue
		}

		score, labels := Score(r)
		if score < Threshold {
			continue
		}

		out = append(out, &Assessment{
			StudentID:               r.ID,
			Name:                    r.Name,
			RiskScore:               score,
			RiskLevel:               LevelFor(score),
			RiskFactors:             labels,
			GPA:                     r.GPA,
			Branch:                  r.Branch,
			GraduationYear:          r.GraduationYear,
			ProfileCompleteness:     r.ProfileCompleteness,
			PlacementReadinessScore: r.PlacementReadinessScore,
			SkillCount:              r.SkillCount(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore > out[j].RiskScore
	})

	return out
}
