package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/placement-insights/internal/metrics"
)

func newTestEnv(config *Config) *runEnv {
	return &runEnv{
		ctx:     context.Background(),
		logger:  zap.NewNop(),
		config:  config,
		metrics: metrics.New(),
		runID:   "test-run",
	}
}
