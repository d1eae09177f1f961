package risk

import (
	"sort"
	"strings"
)

// Report is the JSON shape returned to callers of the risk scorer.
type Report struct {
	Count    int           `json:"count"`
	ByLevel  map[Level]int `json:"by_level"`
	Students []*Assessment `json:"students"`
}

// Summarize wraps assessments with their top-level count.
func Summarize(assessments []*Assessment) *Report {
	byLevel := map[Level]int{
		LevelCritical: 0,
		LevelHigh:     0,
		LevelMedium:   0,
	}
	for _, a := range assessments {
		byLevel[a.RiskLevel]++
	}

	if assessments == nil {
		assessments = []*Assessment{}
	}

	return &Report{
		Count:    len(assessments),
		ByLevel:  byLevel,
		Students: assessments,
	}
}

// BranchEntry is one at-risk student in a ReportByBranch group.
type BranchEntry struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name,omitempty"`
	RiskScore int    `json:"risk_score"`
	RiskLevel Level  `json:"risk_level"`
	Factors   string `json:"factors"`
}

// ReportByBranch groups at-risk students by branch, keeping score order.
func ReportByBranch(assessments []*Assessment) map[string][]*BranchEntry {
	report := make(map[string][]*BranchEntry)
	for _, a := range assessments {
		key := strings.TrimSpace(a.Branch)
		if key == "" {
			key = "unknown"
		}
		report[key] = append(report[key], &BranchEntry{
			StudentID: a.StudentID,
			Name:      a.Name,
			RiskScore: a.RiskScore,
			RiskLevel: a.RiskLevel,
			Factors:   strings.Join(a.RiskFactors, "; "),
		})
	}
	return report
}

// Branches returns the branch keys of a ReportByBranch result in sorted order.
func Branches(report map[string][]*BranchEntry) []string {
	keys := make([]string, 0, len(report))
	for k := range report {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
