package portal

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/placement-insights/internal/students"
)

const (
	userAgent = "spigell/placement-insights"
	// Max value for listing per page.
	perPage = "100"
)

// Client reads student data from the placement portal REST API.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(apiURL, token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		APIURL: strings.TrimRight(apiURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// List returns every student profile known to the portal.
func (c *Client) List(ctx context.Context) ([]*students.Record, error) {
	return c.listStudents(ctx)
}
