package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/placement-insights/internal/risk"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "List students at risk of failing placement",
	Run: func(cmd *cobra.Command, _ []string) {
		runRisk(cmd)
	},
}

func init() {
	rootCmd.AddCommand(riskCmd)

	riskCmd.Flags().Bool("by-branch", false, "group at-risk students by branch")
	riskCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
}

func runRisk(cmd *cobra.Command) {
	env := setup(cmd)
	defer env.flushMetrics()

	records, err := loadStudents(env)
	if err != nil {
		env.logger.Fatal("loading students", zap.Error(err))
	}

	assessments := risk.Assess(records)
	report := risk.Summarize(assessments)

	env.metrics.AddAssessed(len(records))
	for level, count := range report.ByLevel {
		env.metrics.SetAtRisk(string(level), count)
	}

	env.logger.Info("risk assessment completed",
		zap.Int("students", len(records)),
		zap.Int("at_risk", report.Count),
		zap.Int("critical", report.ByLevel[risk.LevelCritical]),
		zap.Int("high", report.ByLevel[risk.LevelHigh]),
		zap.Int("medium", report.ByLevel[risk.LevelMedium]),
	)

	output, _ := cmd.Flags().GetString("output")

	var result any = report
	if byBranch, _ := cmd.Flags().GetBool("by-branch"); byBranch {
		grouped := risk.ReportByBranch(assessments)
		env.logger.Debug("report by branch", zap.Strings("branches", risk.Branches(grouped)))
		result = grouped
	}

	if err := writeOutput(cmd, output, result); err != nil {
		env.logger.Fatal("writing risk report", zap.Error(err))
	}
}
