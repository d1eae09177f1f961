package portal

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/placement-insights/internal/students"
)

const (
	apiStudentsPath       = "/students"
	apiApplicationsSuffix = "applications/count"
	apiMockSuffix         = "mock-interviews/count"
)

type countResponse struct {
	Count *int `json:"count"`
}

func (c *Client) listStudents(ctx context.Context) ([]*students.Record, error) {
	apiURLStudents := fmt.Sprintf("%s%s", c.APIURL, apiStudentsPath)

	q := url.Values{}
	// Set per_page max as possible. It should be faster.
	q.Add("per_page", perPage)

	items, err := c.GetItems(ctx, apiURLStudents, q)
	if err != nil {
		return nil, err
	}

	var records []*students.Record
	cfg := &mapstructure.DecoderConfig{
		Result:           &records,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}

	if len(records) == 0 {
		return nil, students.ErrNoRecords
	}

	return records, nil
}

// Counts fetches both auxiliary counters for a student. Either request
// failing fails the whole lookup.
func (c *Client) Counts(ctx context.Context, studentID string) (students.Counts, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return students.Counts{}, fmt.Errorf("student id is required")
	}

	var counts students.Counts
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := c.getCount(gCtx, studentID, apiApplicationsSuffix)
		if err != nil {
			return fmt.Errorf("applications count: %w", err)
		}
		counts.Applications = n
		return nil
	})

	g.Go(func() error {
		n, err := c.getCount(gCtx, studentID, apiMockSuffix)
		if err != nil {
			return fmt.Errorf("mock interviews count: %w", err)
		}
		counts.MockInterviews = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return students.Counts{}, err
	}

	return counts, nil
}

func (c *Client) getCount(ctx context.Context, studentID, suffix string) (int, error) {
	apiURL := fmt.Sprintf("%s%s/%s/%s", c.APIURL, apiStudentsPath, url.PathEscape(studentID), suffix)

	var resp countResponse
	if err := c.getJSON(ctx, apiURL, nil, &resp); err != nil {
		return 0, err
	}

	if resp.Count == nil {
		return 0, fmt.Errorf("portal response has no count")
	}

	if *resp.Count < 0 {
		return 0, fmt.Errorf("portal returned negative count %d", *resp.Count)
	}

	return *resp.Count, nil
}
