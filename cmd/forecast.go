package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/placement-insights/internal/eligibility"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast eligibility of the student population for hypothetical criteria",
	Long: `Forecast evaluates every student against the criteria from the config file
(criteria section) overridden by flags, and prints the eligibility rate, the gap
table and recommended interventions.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runForecast(cmd)
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)

	addCriteriaFlags(forecastCmd)
	forecastCmd.Flags().StringP("output", "o", "", "write the forecast to a file instead of stdout")
}

func addCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-gpa", 0, "minimum GPA (0-10)")
	cmd.Flags().StringSlice("skills", nil, "required skills, comma separated")
	cmd.Flags().StringSlice("branches", nil, "eligible branches, comma separated")
	cmd.Flags().Int("min-readiness", 0, "minimum placement readiness score (0-100)")
	cmd.Flags().Int("year", 0, "required graduation year")
}

func runForecast(cmd *cobra.Command) {
	env := setup(cmd)
	defer env.flushMetrics()

	criteria, err := criteriaFromFlags(cmd, env.config.Criteria)
	if err != nil {
		env.logger.Fatal("reading criteria flags", zap.Error(err))
	}

	if err := criteria.Validate(); err != nil {
		env.logger.Fatal("validating criteria", zap.Error(err))
	}

	if criteria.IsEmpty() {
		env.logger.Warn("no criteria configured; every student will be eligible")
	}

	for _, status := range eligibility.Describe(eligibility.Checks(criteria)) {
		if !status.Enabled {
			continue
		}
		env.logger.Info("criterion enabled",
			zap.String("check", status.Name),
			zap.Any("details", status.Details),
		)
	}

	records, err := loadStudents(env)
	if err != nil {
		env.logger.Fatal("loading students", zap.Error(err))
	}

	result := eligibility.Forecast(records, criteria)

	env.metrics.AddAssessed(result.Total)
	env.metrics.SetEligibilityRate(result.EligibilityRate)

	env.logger.Info("forecast completed",
		zap.Int("total", result.Total),
		zap.Int("eligible", result.EligibleCount),
		zap.Int("eligibility_rate", result.EligibilityRate),
		zap.Int("recommendations", len(result.Recommendations)),
	)

	output, _ := cmd.Flags().GetString("output")
	if err := writeOutput(cmd, output, result); err != nil {
		env.logger.Fatal("writing forecast", zap.Error(err))
	}
}

// criteriaFromFlags overlays explicitly set flags on the configured criteria.
func criteriaFromFlags(cmd *cobra.Command, base *eligibility.Criteria) (*eligibility.Criteria, error) {
	criteria := &eligibility.Criteria{}
	if base != nil {
		*criteria = *base
	}

	flags := cmd.Flags()

	if flags.Changed("min-gpa") {
		v, err := flags.GetFloat64("min-gpa")
		if err != nil {
			return nil, fmt.Errorf("min-gpa: %w", err)
		}
		criteria.MinGPA = eligibility.Float(v)
	}
	if flags.Changed("skills") {
		v, err := flags.GetStringSlice("skills")
		if err != nil {
			return nil, fmt.Errorf("skills: %w", err)
		}
		criteria.RequiredSkills = v
	}
	if flags.Changed("branches") {
		v, err := flags.GetStringSlice("branches")
		if err != nil {
			return nil, fmt.Errorf("branches: %w", err)
		}
		criteria.Branches = v
	}
	if flags.Changed("min-readiness") {
		v, err := flags.GetInt("min-readiness")
		if err != nil {
			return nil, fmt.Errorf("min-readiness: %w", err)
		}
		criteria.MinReadinessScore = eligibility.Int(v)
	}
	if flags.Changed("year") {
		v, err := flags.GetInt("year")
		if err != nil {
			return nil, fmt.Errorf("year: %w", err)
		}
		criteria.GraduationYear = eligibility.Int(v)
	}

	return criteria, nil
}
