package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendSkipsWorkshopsWithoutRequiredSkills(t *testing.T) {
	table := GapTable{"Missing skills: go": 4, "Branch ME not eligible": 1}

	recs := Recommend(table, &Criteria{}, 5)
	require.Len(t, recs, 1)
	assert.Equal(t, TypePolicy, recs[0].Type)
}

func TestRecommendTopThreeSkillsWeightedByFrequency(t *testing.T) {
	table := GapTable{
		"Missing skills: docker":              1,
		"Missing skills: go, docker":          3,
		"Missing skills: go, sql, kubernetes": 2,
		"Missing skills: sql":                 1,
		"Missing skills: aws":                 1,
	}

	recs := Recommend(table, &Criteria{RequiredSkills: []string{"go", "docker", "sql", "kubernetes", "aws"}}, 8)
	require.Len(t, recs, 3)

	// go: 5, docker: 4, sql: 3, kubernetes: 2, aws: 1
	assert.Equal(t, PriorityCritical, recs[0].Priority)
	assert.Contains(t, recs[0].Title, "go")
	assert.Equal(t, "5 students (63% of ineligible) lack go", recs[0].Description)

	assert.Equal(t, PriorityHigh, recs[1].Priority)
	assert.Contains(t, recs[1].Title, "docker")

	assert.Equal(t, PriorityHigh, recs[2].Priority)
	assert.Contains(t, recs[2].Title, "sql")
}

func TestRecommendAcademicPriorityThreshold(t *testing.T) {
	table := GapTable{"GPA 5 < 7": 3}

	recs := Recommend(table, &Criteria{MinGPA: Float(7)}, 10)
	require.Len(t, recs, 1)
	assert.Equal(t, PriorityMedium, recs[0].Priority)

	recs = Recommend(table, &Criteria{MinGPA: Float(7)}, 9)
	require.Len(t, recs, 1)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
}

func TestRecommendSkillPriorityThreshold(t *testing.T) {
	criteria := &Criteria{RequiredSkills: []string{"java"}}

	recs := Recommend(GapTable{"Missing skills: java": 5}, criteria, 10)
	require.Len(t, recs, 1)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, "5 students (50% of ineligible) lack java", recs[0].Description)

	recs = Recommend(GapTable{"Missing skills: java": 6}, criteria, 10)
	require.Len(t, recs, 1)
	assert.Equal(t, PriorityCritical, recs[0].Priority)
	assert.Equal(t, "6 students (60% of ineligible) lack java", recs[0].Description)
}

func TestRecommendOrderingIsStableByPriority(t *testing.T) {
	table := GapTable{
		"Branch ECE not eligible": 1,
		"Readiness 10 < 50":       1,
		"GPA 6 < 7":               1,
		"Missing skills: rust":    1,
	}

	recs := Recommend(table, &Criteria{RequiredSkills: []string{"rust"}, MinGPA: Float(7)}, 20)
	require.Len(t, recs, 4)

	types := []RecommendationType{recs[0].Type, recs[1].Type, recs[2].Type, recs[3].Type}
	// workshop(high), engagement(high), academic(medium), policy(medium)
	assert.Equal(t, []RecommendationType{TypeWorkshop, TypeEngagement, TypeAcademic, TypePolicy}, types)

	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i-1].Priority.Rank(), recs[i].Priority.Rank())
	}
}

func TestRecommendEmptyTable(t *testing.T) {
	recs := Recommend(GapTable{}, fullCriteria(), 0)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 0, PriorityCritical.Rank())
	assert.Equal(t, 1, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 3, PriorityLow.Rank())
	assert.Equal(t, 4, Priority("unknown").Rank())
}
