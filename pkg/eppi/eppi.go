package eppi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/eppi-vis/dashboard/internal/util"
)

const loginCookieName = "WebDbErLoginCookie"

// RemoteError wraps any failure talking to the review database: transport
// errors, non-2xx responses and malformed JSON bodies.
type RemoteError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("eppi: %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("eppi: %s: %v", e.Endpoint, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Client talks to the EPPI-Reviewer web database. One client corresponds to
// one logged-in database session: the login cookie lives in the cookie jar
// and is sent with every request.
type Client struct {
	baseURL  *url.URL
	webDBID  int
	maxTries int

	httpClient *http.Client
}

// NewClientParams contains configuration options for creating a new Client.
type NewClientParams struct {
	BaseURL string
	WebDBID int

	// MaxTries is the per-request retry budget. Zero means no retries.
	MaxTries int
	Timeout  time.Duration
}

// NewClient creates an unauthenticated client. Call Login before issuing
// any data requests.
func NewClient(params NewClientParams) (*Client, error) {
	u, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	maxTries := params.MaxTries
	if maxTries <= 0 {
		maxTries = 1
	}

	return &Client{
		baseURL:  u,
		webDBID:  params.WebDBID,
		maxTries: maxTries,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// Login opens an anonymous web database session and returns the value of the
// login cookie the service handed out. The cookie is also retained in the
// client's jar, so callers normally only need the return value for display
// or persistence.
func (c *Client) Login(ctx context.Context) (string, error) {
	endpoint := c.baseURL.JoinPath("EPPI-Vis", "Login", "Open")
	q := endpoint.Query()
	q.Set("WebDBid", strconv.Itoa(c.webDBID))
	endpoint.RawQuery = q.Encode()

	return util.RetryWithContext(ctx, c.maxTries, func(ctx context.Context) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return "", err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", &RemoteError{Endpoint: "Login/Open", Err: err}
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", &RemoteError{Endpoint: "Login/Open", Status: resp.StatusCode}
		}

		for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
			if cookie.Name == loginCookieName {
				return cookie.Value, nil
			}
		}
		return "", &RemoteError{Endpoint: "Login/Open", Err: fmt.Errorf("no %s cookie in response", loginCookieName)}
	})
}

// getJSON issues an authenticated GET against the eppi-vis API and decodes
// the response body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	target := c.baseURL.JoinPath("eppi-vis").JoinPath(strings.Split(endpoint, "/")...)

	_, err := util.RetryWithContext(ctx, c.maxTries, func(ctx context.Context) (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, c.decode(endpoint, req, out)
	})
	return err
}

// postForm issues an authenticated form POST against the eppi-vis API and
// decodes the response body into out.
func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	target := c.baseURL.JoinPath("eppi-vis").JoinPath(strings.Split(endpoint, "/")...)
	body := form.Encode()

	_, err := util.RetryWithContext(ctx, c.maxTries, func(ctx context.Context) (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), strings.NewReader(body))
		if err != nil {
			return struct{}{}, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return struct{}{}, c.decode(endpoint, req, out)
	})
	return err
}

func (c *Client) decode(endpoint string, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &RemoteError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Endpoint: endpoint, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
