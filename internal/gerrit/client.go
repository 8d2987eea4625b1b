// Package gerrit implements a read-only client for the Gerrit REST API.
package gerrit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
)

// Gerrit REST endpoints and protocol constants.
const (
	allProjectsPath    = "/projects/?d"
	activeAccountsPath = "/accounts/?q=is:active"
	changesQueryPath   = "/changes/?q="

	// magicPrefix guards Gerrit JSON responses against XSSI and must be
	// stripped before decoding.
	magicPrefix = ")]}'\n"

	// pageSize is the page length used when walking paginated endpoints.
	pageSize = 500

	// defaultHTTPTimeout bounds each individual REST call.
	defaultHTTPTimeout = 30 * time.Second
)

// gerritQueryTimeLayout is the timestamp format accepted in change queries.
const gerritQueryTimeLayout = "2006-01-02 15:04:05"

// Client talks to a single Gerrit server over its REST API.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

var _ contract.GerritReader = (*Client)(nil) // Compile-time check

// NewClient creates a Gerrit client for the given base URL. Credentials are
// optional; anonymous access works for servers with public read access.
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:    baseURL,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// get performs a GET request against path and decodes the magic-prefixed
// JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build gerrit request for %s: %w", path, err)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gerrit request %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gerrit request %s failed with status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gerrit response for %s: %w", path, err)
	}
	return decodeResponse(body, out)
}

// decodeResponse strips the Gerrit magic JSON prefix before unmarshaling.
func decodeResponse(body []byte, out any) error {
	body = bytes.TrimPrefix(body, []byte(magicPrefix))
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid gerrit response body: %w", err)
	}
	return nil
}

// ListProjects returns all projects keyed by name.
func (c *Client) ListProjects(ctx context.Context) (map[string]schema.ProjectInfo, error) {
	projects := map[string]schema.ProjectInfo{}
	if err := c.get(ctx, allProjectsPath, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListActiveProjects returns the names of projects in ACTIVE state, sorted.
func (c *Client) ListActiveProjects(ctx context.Context) ([]string, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	var active []string
	for name, info := range projects {
		if info.State == "ACTIVE" {
			active = append(active, name)
		}
	}
	sort.Strings(active)
	return active, nil
}

// ListActiveAccounts returns detailed info for all active accounts. The
// listing endpoint only returns account stubs, so each account needs a
// follow-up detail call.
func (c *Client) ListActiveAccounts(ctx context.Context) ([]schema.AccountInfo, error) {
	var stubs []schema.AccountInfo
	for offset := 0; ; offset += pageSize {
		path := fmt.Sprintf("%s&S=%d&n=%d", activeAccountsPath, offset, pageSize)
		var page []schema.AccountInfo
		if err := c.get(ctx, path, &page); err != nil {
			return nil, err
		}
		stubs = append(stubs, page...)
		if len(page) < pageSize {
			break
		}
	}

	accounts := make([]schema.AccountInfo, 0, len(stubs))
	for _, stub := range stubs {
		var detail schema.AccountInfo
		path := fmt.Sprintf("/accounts/%d/detail", stub.AccountID)
		if err := c.get(ctx, path, &detail); err != nil {
			return nil, err
		}
		accounts = append(accounts, detail)
	}
	return accounts, nil
}

// ListChangesSince returns all changes for a project created after the given
// time. An empty project matches changes across all projects. Pagination
// follows the _more_changes marker set on the last element of each page.
func (c *Client) ListChangesSince(ctx context.Context, project string, since time.Time) ([]schema.ChangeInfo, error) {
	query := fmt.Sprintf("after:%q", since.UTC().Format(gerritQueryTimeLayout))
	if project != "" {
		query = fmt.Sprintf("project:%s %s", project, query)
	}

	var changes []schema.ChangeInfo
	for offset := 0; ; offset += pageSize {
		path := fmt.Sprintf("%s%s&S=%d&n=%d", changesQueryPath, url.QueryEscape(query), offset, pageSize)
		var page []schema.ChangeInfo
		if err := c.get(ctx, path, &page); err != nil {
			return nil, err
		}
		changes = append(changes, page...)
		if len(page) == 0 || !page[len(page)-1].MoreChanges {
			break
		}
	}
	return changes, nil
}
