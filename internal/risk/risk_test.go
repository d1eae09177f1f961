package risk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/placement-insights/internal/students"
)

func healthy(id string) *students.Record {
	return &students.Record{
		ID:                      id,
		GPA:                     8,
		Branch:                  "CSE",
		GraduationYear:          2026,
		Skills:                  []string{"Go", "SQL", "Docker"},
		ProfileCompleteness:     90,
		PlacementReadinessScore: 75,
		ResumePresent:           true,
		ApplicationCount:        2,
		MockInterviewCount:      1,
	}
}

func TestScoreSingleFactors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *students.Record)
		score  int
		label  string
	}{
		{"incomplete profile", func(r *students.Record) { r.ProfileCompleteness = 49 }, 30, "Incomplete profile (<50%)"},
		{"low readiness", func(r *students.Record) { r.PlacementReadinessScore = 39 }, 25, "Low readiness score (<40)"},
		{"limited skills", func(r *students.Record) { r.Skills = []string{"Go", "SQL"} }, 20, "Limited skills (<3)"},
		{"duplicate and blank skills", func(r *students.Record) { r.Skills = []string{"Go", "go ", " ", "SQL"} }, 20, "Limited skills (<3)"},
		{"no resume", func(r *students.Record) { r.ResumePresent = false }, 15, "No resume uploaded"},
		{"never applied", func(r *students.Record) { r.ApplicationCount = 0 }, 20, "Never applied to any drive"},
		{"no mocks", func(r *students.Record) { r.MockInterviewCount = 0 }, 15, "No mock interviews taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := healthy("s")
			tt.mutate(r)
			score, labels := Score(r)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, []string{tt.label}, labels)
		})
	}
}

func TestAssessReportsDistinctSkillCount(t *testing.T) {
	r := healthy("dup")
	r.ProfileCompleteness = 10
	r.Skills = []string{"Java", "JAVA", "", "sql"}

	out := Assess([]*students.Record{r})
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].SkillCount)
	assert.Equal(t, 50, out[0].RiskScore)
	assert.Equal(t, []string{"Incomplete profile (<50%)", "Limited skills (<3)"}, out[0].RiskFactors)
}

func TestScoreBoundariesDoNotTrigger(t *testing.T) {
	r := healthy("s")
	r.ProfileCompleteness = 50
	r.PlacementReadinessScore = 40

	score, labels := Score(r)
	assert.Zero(t, score)
	assert.Empty(t, labels)
}

func TestScoreEmptyRecordHitsEveryFactor(t *testing.T) {
	score, labels := Score(&students.Record{ID: "blank"})
	assert.Equal(t, 125, score)
	assert.Len(t, labels, len(Factors))
	assert.Equal(t, "Incomplete profile (<50%)", labels[0])
	assert.Equal(t, "No mock interviews taken", labels[len(labels)-1])
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelMedium, LevelFor(40))
	assert.Equal(t, LevelMedium, LevelFor(49))
	assert.Equal(t, LevelHigh, LevelFor(50))
	assert.Equal(t, LevelHigh, LevelFor(69))
	assert.Equal(t, LevelCritical, LevelFor(70))
	assert.Equal(t, LevelCritical, LevelFor(125))
}

func TestAssessFiltersAndSorts(t *testing.T) {
	below := healthy("below") // 35: no resume + no mocks
	below.ResumePresent = false
	below.MockInterviewCount = 0

	medium := healthy("medium") // 40: never applied + limited skills
	medium.ApplicationCount = 0
	medium.Skills = nil

	high := healthy("high") // 50: incomplete profile + limited skills
	high.ProfileCompleteness = 10
	high.Skills = []string{"go"}

	critical := &students.Record{ID: "critical", Branch: "ME", GPA: 5.5, Skills: []string{"a"}}

	tieA := healthy("tie-a") // 40: low readiness + no resume
	tieA.PlacementReadinessScore = 10
	tieA.ResumePresent = false

	records := []*students.Record{below, medium, nil, high, critical, tieA, healthy("fine")}

	out := Assess(records)
	require.Len(t, out, 4)

	ids := make([]string, 0, len(out))
	for _, a := range out {
		ids = append(ids, a.StudentID)
		assert.GreaterOrEqual(t, a.RiskScore, Threshold)
	}
	assert.Equal(t, []string{"critical", "high", "medium", "tie-a"}, ids)

	assert.Equal(t, 125, out[0].RiskScore)
	assert.Equal(t, LevelCritical, out[0].RiskLevel)
	assert.Equal(t, 1, out[0].SkillCount)
	assert.Equal(t, "ME", out[0].Branch)
	assert.Equal(t, 5.5, out[0].GPA)

	assert.Equal(t, LevelHigh, out[1].RiskLevel)
	assert.Equal(t, []string{"Incomplete profile (<50%)", "Limited skills (<3)"}, out[1].RiskFactors)

	assert.Equal(t, LevelMedium, out[2].RiskLevel)
	assert.Equal(t, 40, out[3].RiskScore)
}

func TestAssessIsIdempotent(t *testing.T) {
	records := []*students.Record{{ID: "a"}, healthy("b"), {ID: "c", ResumePresent: true}}
	assert.Equal(t, Assess(records), Assess(records))
}

func TestAssessEmpty(t *testing.T) {
	out := Assess(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSummarizeAndReportByBranch(t *testing.T) {
	a := &students.Record{ID: "a", Branch: "CSE"}
	b := &students.Record{ID: "b", Branch: "", ResumePresent: true, ApplicationCount: 1, MockInterviewCount: 1, Skills: []string{"x", "y", "z"}, PlacementReadinessScore: 80}
	c := &students.Record{ID: "c", Branch: "CSE", ProfileCompleteness: 100, Skills: []string{"x", "y", "z"}, ResumePresent: true, MockInterviewCount: 1}

	assessments := Assess([]*students.Record{a, b, c})
	require.Len(t, assessments, 2)

	summary := Summarize(assessments)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 1, summary.ByLevel[LevelCritical])
	assert.Equal(t, 0, summary.ByLevel[LevelHigh])
	assert.Equal(t, 1, summary.ByLevel[LevelMedium])

	report := ReportByBranch(assessments)
	assert.Equal(t, []string{"CSE"}, Branches(report))
	require.Len(t, report["CSE"], 2)
	assert.Equal(t, "a", report["CSE"][0].StudentID)
	assert.Equal(t, 125, report["CSE"][0].RiskScore)
	assert.Equal(t, "c", report["CSE"][1].StudentID)
	assert.Equal(t, LevelMedium, report["CSE"][1].RiskLevel)
	assert.Equal(t, "Low readiness score (<40); Never applied to any drive", report["CSE"][1].Factors)

	raw, err := json.Marshal(report["CSE"][0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"risk_score":125`)

	unknown := ReportByBranch([]*Assessment{{StudentID: "z", Branch: "  ", RiskScore: 40, RiskLevel: LevelMedium}})
	assert.Equal(t, []string{"unknown"}, Branches(unknown))

	empty := Summarize(nil)
	assert.Zero(t, empty.Count)
	assert.NotNil(t, empty.Students)
}
