package students

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubLookup struct {
	mu     sync.Mutex
	counts map[string]Counts
	errs   map[string]error
	calls  []string
}

func (s *stubLookup) Counts(_ context.Context, id string) (Counts, error) {
	s.mu.Lock()
	s.calls = append(s.calls, id)
	s.mu.Unlock()

	if err, ok := s.errs[id]; ok {
		return Counts{}, err
	}
	return s.counts[id], nil
}

func TestEnrichSkipsFailedStudentsOnly(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)

	records := []*Record{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	lookup := &stubLookup{
		counts: map[string]Counts{
			"a": {Applications: 2, MockInterviews: 1},
			"c": {Applications: 0, MockInterviews: 4},
			"d": {Applications: 5},
		},
		errs: map[string]error{"b": errors.New("timeout")},
	}

	result := Enrich(context.Background(), records, lookup, EnrichOptions{Concurrency: 2, Logger: zap.New(core)})

	assert.Equal(t, []string{"a", "c", "d"}, IDs(result.Records))
	assert.Equal(t, 2, result.Records[0].ApplicationCount)
	assert.Equal(t, 4, result.Records[1].MockInterviewCount)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "b", result.Skipped[0].StudentID)
	assert.Len(t, lookup.calls, 4)

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].ContextMap()["student_id"])

	// input records are not mutated
	assert.Zero(t, records[0].ApplicationCount)
}

func TestEnrichWithoutLookupReturnsInput(t *testing.T) {
	records := []*Record{{ID: "a", ApplicationCount: 3}}
	result := Enrich(context.Background(), records, nil, EnrichOptions{})
	assert.Equal(t, records, result.Records)
	assert.Empty(t, result.Skipped)
}

func TestEnrichCancelledContextSkipsEveryone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lookup := &stubLookup{counts: map[string]Counts{}}
	result := Enrich(ctx, []*Record{{ID: "a"}, {ID: "b"}}, lookup, EnrichOptions{})

	assert.Empty(t, result.Records)
	assert.Len(t, result.Skipped, 2)
	assert.Empty(t, lookup.calls)
}
