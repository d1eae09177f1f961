package eligibility

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// RecommendationType classifies an intervention.
type RecommendationType string

const (
	TypeWorkshop   RecommendationType = "workshop"
	TypeAcademic   RecommendationType = "academic"
	TypeEngagement RecommendationType = "engagement"
	TypePolicy     RecommendationType = "policy"
)

// Priority orders recommendations, critical first.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank is the sort position of a priority; unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Recommendation is an actionable intervention derived from the gap table.
type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Priority    Priority           `json:"priority"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Action      string             `json:"action"`
	Impact      string             `json:"impact"`
}

const maxSkillWorkshops = 3

type skillDemand struct {
	skill string
	count int
}

// Recommend turns a gap table into a prioritized list of interventions.
func Recommend(table GapTable, criteria *Criteria, ineligible int) []*Recommendation {
	if criteria == nil {
		criteria = &Criteria{}
	}

	recs := make([]*Recommendation, 0)

	if len(cleanList(criteria.RequiredSkills)) > 0 {
		for _, d := range topMissingSkills(table, maxSkillWorkshops) {
			priority := PriorityHigh
			if float64(d.count) > float64(ineligible)*0.5 {
				priority = PriorityCritical
			}
			recs = append(recs, &Recommendation{
				Type:        TypeWorkshop,
				Priority:    priority,
				Title:       fmt.Sprintf("Conduct %s workshop", d.skill),
				Description: fmt.Sprintf("%d students (%d%% of ineligible) lack %s", d.count, percent(d.count, ineligible), d.skill),
				Action:      fmt.Sprintf("Schedule a hands-on %s training series before the drive", d.skill),
				Impact:      fmt.Sprintf("%d students could become eligible", d.count),
			})
		}
	}

	if n := sumMatching(table, "GPA"); n > 0 {
		priority := PriorityMedium
		if float64(n) > float64(ineligible)*0.3 {
			priority = PriorityHigh
		}
		threshold := "the required minimum"
		if criteria.MinGPA != nil {
			threshold = formatGPA(*criteria.MinGPA)
		}
		recs = append(recs, &Recommendation{
			Type:        TypeAcademic,
			Priority:    priority,
			Title:       "Academic support program",
			Description: fmt.Sprintf("%d students fall below the GPA threshold of %s", n, threshold),
			Action:      "Arrange remedial classes and faculty mentoring for low-GPA students",
			Impact:      "Improves long-term eligibility for GPA-gated drives",
		})
	}

	if n := sumMatching(table, "Readiness"); n > 0 {
		recs = append(recs, &Recommendation{
			Type:        TypeEngagement,
			Priority:    PriorityHigh,
			Title:       "Boost placement readiness",
			Description: fmt.Sprintf("%d students are below the required readiness score", n),
			Action:      "Run mock interview drives and profile completion campaigns",
			Impact:      "Raises readiness scores across the affected cohort",
		})
	}

	if n := sumMatching(table, "Branch"); n > 0 {
		recs = append(recs, &Recommendation{
			Type:        TypePolicy,
			Priority:    PriorityMedium,
			Title:       "Review branch restrictions",
			Description: fmt.Sprintf("%d students are excluded by branch", n),
			Action:      "Discuss opening the role to additional branches with the recruiter",
			Impact:      fmt.Sprintf("Up to %d more students could be considered", n),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})

	return recs
}

// topMissingSkills aggregates "Missing skills" gap rows into per-skill
// counts weighted by row frequency. Ties keep first-seen order over the
// lexically sorted gap keys.
func topMissingSkills(table GapTable, limit int) []skillDemand {
	index := make(map[string]int)
	demand := make([]skillDemand, 0)

	for _, gap := range table.Keys() {
		if !strings.Contains(gap, missingSkillsKey) {
			continue
		}
		freq := table[gap]

		list := gap
		if idx := strings.Index(gap, ":"); idx != -1 {
			list = gap[idx+1:]
		}

		for _, skill := range strings.Split(list, ",") {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				continue
			}
			pos, ok := index[skill]
			if !ok {
				pos = len(demand)
				index[skill] = pos
				demand = append(demand, skillDemand{skill: skill})
			}
			demand[pos].count += freq
		}
	}

	sort.SliceStable(demand, func(i, j int) bool {
		return demand[i].count > demand[j].count
	})

	if len(demand) > limit {
		demand = demand[:limit]
	}
	return demand
}

func sumMatching(table GapTable, needle string) int {
	total := 0
	for gap, n := range table {
		if strings.Contains(gap, needle) {
			total += n
		}
	}
	return total
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
