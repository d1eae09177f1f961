package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/placement-insights/internal/logger"
	"github.com/spigell/placement-insights/internal/metrics"
	"github.com/spigell/placement-insights/internal/portal"
	"github.com/spigell/placement-insights/internal/secrets"
	"github.com/spigell/placement-insights/internal/students"
)

// runEnv is what every command needs before doing real work.
type runEnv struct {
	ctx     context.Context
	logger  *zap.Logger
	config  *Config
	metrics *metrics.Metrics
	runID   string
}

func setup(cmd *cobra.Command) *runEnv {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	runID := uuid.NewString()
	l = logger.WithRun(l, cmd.Name(), runID)

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Info("starting the placement-insights", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return &runEnv{
		ctx:     ctx,
		logger:  l,
		config:  config,
		metrics: metrics.New(),
		runID:   runID,
	}
}

// loadStudents reads the population from the configured source. Portal
// records are enriched with their counters; students whose counters cannot be
// read are skipped.
func loadStudents(env *runEnv) ([]*students.Record, error) {
	ctx := env.ctx
	src := env.config.Source
	kind := strings.ToLower(strings.TrimSpace(src.Kind))

	switch kind {
	case "", sourceKindFile:
		path := strings.TrimSpace(src.File)
		if path == "" {
			return nil, errors.New("source.file is required for the file source")
		}
		env.logger.Info("reading students", zap.String("file", path))
		return students.NewFileSource(path).List(ctx)

	case sourceKindPortal:
		client, err := newPortalClient(env)
		if err != nil {
			return nil, err
		}

		records, err := client.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing students: %w", err)
		}
		env.logger.Info("getting students from portal", zap.Int("count", len(records)))

		result := students.Enrich(ctx, records, client, students.EnrichOptions{
			Concurrency: env.config.Concurrency,
			Logger:      env.logger,
		})
		env.metrics.AddLookupFailures(len(result.Skipped))

		if len(result.Records) == 0 {
			return nil, students.ErrNoRecords
		}
		return result.Records, nil

	default:
		return nil, fmt.Errorf("unsupported source kind: %s", src.Kind)
	}
}

func newPortalClient(env *runEnv) (*portal.Client, error) {
	cfg := env.config.Source.Portal
	if cfg == nil || strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("source.portal.url is required for the portal source")
	}

	token, err := secrets.Load(secrets.Source{
		Name: "portal token",
		File: cfg.TokenFile,
		Env:  "PORTAL_TOKEN",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set source.portal.token-file or PORTAL_TOKEN_FILE)", err)
	}

	client := portal.New(cfg.URL, token, env.logger)
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}
	return client, nil
}

// writeOutput prints v as indented JSON to path, or to stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	data = append(data, '\n')

	path = strings.TrimSpace(path)
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output to %q: %w", path, err)
	}
	return nil
}

func (env *runEnv) flushMetrics() {
	path := strings.TrimSpace(env.config.MetricsFile)
	if path == "" {
		return
	}
	if err := env.metrics.WriteTextfile(path); err != nil {
		env.logger.Warn("writing metrics", zap.Error(err))
		return
	}
	env.logger.Debug("metrics written", zap.String("file", path))
}
