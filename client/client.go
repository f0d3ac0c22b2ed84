package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Journal Service Client
//
// The client performs the same HTTP submissions the journal service's own
// web pages perform: JSON posts for signup/login, a form-urlencoded post
// for saving an entry, and plain GETs for mood history and payment status.
//
// Design decisions:
//   - Request encoding is per-endpoint configuration (EncodingJSON vs
//     EncodingForm). The entry-save endpoint takes form data while the
//     auth endpoints take JSON; unifying them would break the service's
//     existing contract, so the asymmetry is explicit and kept.
//   - A cookie jar carries the service's session cookie across calls.
//     When the service also hands back a bearer token on login, it is
//     cached and attached to subsequent requests until it expires.
//   - No retries, no de-duplication: each submission is exactly one
//     round trip, mirroring the service's page behavior.
// ============================================================================

// Encoding selects how a request body is serialized for an endpoint.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingForm Encoding = "form"
)

// Paths on the journal service. The entry save posts to the dashboard
// page's own path rather than a dedicated API path — that is the
// service's contract, not an accident.
const (
	SignupPath      = "/api/signup"
	LoginPath       = "/api/login"
	DashboardPath   = "/dashboard"
	MoodHistoryPath = "/api/mood-history"
	QuickMoodPath   = "/api/quick-mood"
	BookPath        = "/book"
	LogoutPath      = "/logout"
	checkPathPrefix = "/check/"
)

// endpointEncodings records each submission endpoint's body encoding.
// The entry save takes form data while the auth endpoints take JSON —
// a service contract quirk kept as explicit configuration here.
var endpointEncodings = map[string]Encoding{
	SignupPath:    EncodingJSON,
	LoginPath:     EncodingJSON,
	DashboardPath: EncodingForm,
}

// defaultTimeout applies when the config does not set one.
const defaultTimeout = 30 * time.Second

// Config holds the settings needed to reach the journal service.
type Config struct {
	BaseURL string        // e.g. https://journal.example.com
	Timeout time.Duration // zero means defaultTimeout
}

// Client talks to the journal service. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.Mutex
	authToken string
}

// New builds a client for the journal service at cfg.BaseURL.
// The cookie jar is what keeps the user logged in across calls —
// the service issues a session cookie on login.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, serr.New("client base URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create cookie jar")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// submit posts to a form-submission endpoint using its configured
// encoding. EncodingForm payloads must be url.Values; everything else
// is marshalled as JSON.
func (c *Client) submit(ctx context.Context, path string, payload any) (*http.Response, error) {
	if endpointEncodings[path] == EncodingForm {
		values, ok := payload.(url.Values)
		if !ok {
			return nil, serr.New("form-encoded endpoint requires url.Values payload")
		}
		return c.postForm(ctx, path, values)
	}
	return c.postJSON(ctx, path, payload)
}

// postJSON sends a JSON-encoded POST to the given service path.
func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, serr.Wrap(err, "failed to marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, serr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// postForm sends a form-urlencoded POST to the given service path.
// url.Values handles percent-encoding, so field values containing
// '&' or '=' survive the trip intact.
func (c *Client) postForm(ctx context.Context, path string, values url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(values.Encode()))
	if err != nil {
		return nil, serr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}

// get sends a GET to the given service path.
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create request")
	}
	return c.do(req)
}

// do attaches the cached bearer token (when present and unexpired)
// and executes the request.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if token := c.usableAuthToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serr.Wrap(err, "request failed")
	}
	return resp, nil
}

// apiError is the error shape the service uses on failed submissions.
type apiError struct {
	Error string `json:"error"`
}

// errorField reads the response body and extracts the service's error
// field. An empty body yields an empty message with no error — the
// caller falls back to its handler-specific default string. A non-empty
// body that is not valid JSON is reported as an error so callers can
// treat it like any other transport failure.
func errorField(body io.Reader) (string, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", serr.Wrap(err, "failed to read response body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", nil
	}

	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err != nil {
		return "", serr.Wrap(err, "failed to decode response body")
	}
	return apiErr.Error, nil
}

// Logout ends the service session and drops the cached bearer token.
// The token is only cleared on a successful logout so a transient
// failure leaves the session usable.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.get(ctx, LogoutPath)
	if err != nil {
		return serr.Wrap(err, "logout request failed")
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return serr.New(fmt.Sprintf("logout returned status %d", resp.StatusCode))
	}

	c.SetAuthToken("")
	return nil
}
