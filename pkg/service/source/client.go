package source

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fleetscope/fleetscope/pkg/domain/interfaces"
	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const defaultTimeout = 30 * time.Second

// Client fetches device compliance records from the external data source.
// The contract: GET {base}/devices?from=YYYY-MM-DD&to=YYYY-MM-DD with
// optional category filters, returning {"devices": [...]}. There is no
// retry; a failed fetch is the caller's problem and the previously held
// dataset stays active.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (mainly for tests)
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the request timeout
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.httpClient.Timeout = d
	}
}

// New creates a new data source client
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// devicesResponse is the wire shape of the source response
type devicesResponse struct {
	Devices []*model.DeviceRecord `json:"devices"`
}

// FetchDevices fetches records for the given date range and filters
func (c *Client) FetchDevices(ctx context.Context, q interfaces.DeviceQuery) ([]*model.DeviceRecord, error) {
	endpoint, err := url.JoinPath(c.baseURL, "devices")
	if err != nil {
		return nil, goerr.Wrap(err, "invalid source base URL", goerr.V("baseURL", c.baseURL))
	}

	params := url.Values{}
	params.Set("from", q.From.String())
	params.Set("to", q.To.String())
	setFilterParam(params, "region", q.Filters.Region)
	setFilterParam(params, "country", q.Filters.Country)
	setFilterParam(params, "productType", q.Filters.ProductType)
	setFilterParam(params, "deviceType", q.Filters.DeviceType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build source request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	ctxlog.From(ctx).Debug("Fetching devices from source",
		"url", endpoint,
		"from", q.From.String(),
		"to", q.To.String(),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "source request failed", goerr.V("url", endpoint))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.New("source returned non-OK status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	var parsed devicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, goerr.Wrap(err, "malformed source response")
	}
	if parsed.Devices == nil {
		return nil, goerr.New("source response has no devices array")
	}

	return parsed.Devices, nil
}

func setFilterParam(params url.Values, key, value string) {
	if value != "" && value != types.AllValues {
		params.Set(key, value)
	}
}
