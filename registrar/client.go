// Package registrar implements the Lobster Domains backend client and the
// text renderings of its responses. Every operation is exactly one HTTP
// request: no retries, no local timeout override, no caching.
package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
	"github.com/lobsterdomains/mcp-server/pkg/metricskey"
)

var logger = xlog.NewPackageLogger("github.com/lobsterdomains/mcp-server", "registrar")

// clientIdentifier is sent on every request so the backend can attribute
// traffic to this integration.
const clientIdentifier = "lobster-domains-mcp/1.0"

// Client issues requests against the registrar backend. The zero number of
// retries is the contract: a single attempt per call, success or failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against the given origin.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// WithHTTPClient sets the HTTP client to use.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// BaseURL returns the configured registrar origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Lookup checks availability and pricing of a domain.
func (c *Client) Lookup(ctx context.Context, domain string) (*LookupResult, error) {
	var res LookupResult
	err := c.do(ctx, "lookup", http.MethodGet, "/api/lookup/"+url.PathEscape(domain), nil, "", nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Quote fetches a priced offer to register a domain.
func (c *Client) Quote(ctx context.Context, domain string) (*QuoteResult, error) {
	var res QuoteResult
	err := c.do(ctx, "quote", http.MethodGet, "/api/purchase/"+url.PathEscape(domain)+"/quote", nil, "", nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Purchase initiates a registration. The variant of the result depends on
// whether the backend wants a checkout step first.
func (c *Client) Purchase(ctx context.Context, domain string) (PurchaseResult, error) {
	var raw json.RawMessage
	err := c.do(ctx, "purchase", http.MethodPost, "/api/purchase/"+url.PathEscape(domain), nil, "", nil, &raw)
	if err != nil {
		return nil, err
	}
	return ParsePurchaseResult(raw)
}

// DomainInfo fetches the management snapshot of a domain.
func (c *Client) DomainInfo(ctx context.Context, domain, token string) (*DomainInfo, error) {
	var res DomainInfo
	err := c.do(ctx, "domain_info", http.MethodGet, "/api/manage/"+url.PathEscape(domain), nil, token, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Renew extends the registration of a domain.
func (c *Client) Renew(ctx context.Context, domain, token string, req *RenewRequest) (*RenewResult, error) {
	var res RenewResult
	err := c.do(ctx, "renew", http.MethodPost, "/api/manage/"+url.PathEscape(domain)+"/renew", nil, token, req, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListRecords fetches the DNS records of a domain, in backend order.
func (c *Client) ListRecords(ctx context.Context, domain, token string) (*DNSRecordList, error) {
	var res DNSRecordList
	err := c.do(ctx, "list_dns", http.MethodGet, "/api/manage/"+url.PathEscape(domain)+"/dns", nil, token, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AddRecord creates a DNS record.
func (c *Client) AddRecord(ctx context.Context, domain, token string, req *AddRecordRequest) (*DNSRecord, error) {
	var res DNSRecord
	err := c.do(ctx, "add_dns", http.MethodPost, "/api/manage/"+url.PathEscape(domain)+"/dns", nil, token, req, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateRecord updates the supplied fields of an existing record; omitted
// fields are left unchanged.
func (c *Client) UpdateRecord(ctx context.Context, domain, token, recordID string, req *UpdateRecordRequest) (*DNSRecord, error) {
	var res DNSRecord
	query := url.Values{"id": []string{recordID}}
	err := c.do(ctx, "update_dns", http.MethodPut, "/api/manage/"+url.PathEscape(domain)+"/dns", query, token, req, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteRecord removes a DNS record by id.
func (c *Client) DeleteRecord(ctx context.Context, domain, token, recordID string) (*DeleteRecordResult, error) {
	var res DeleteRecordResult
	query := url.Values{"id": []string{recordID}}
	err := c.do(ctx, "delete_dns", http.MethodDelete, "/api/manage/"+url.PathEscape(domain)+"/dns", query, token, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Nameservers fetches the delegated nameserver set.
func (c *Client) Nameservers(ctx context.Context, domain, token string) (*NameserversResult, error) {
	var res NameserversResult
	err := c.do(ctx, "get_nameservers", http.MethodGet, "/api/manage/"+url.PathEscape(domain)+"/nameservers", nil, token, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SetNameservers replaces the delegated nameserver set.
func (c *Client) SetNameservers(ctx context.Context, domain, token string, req *SetNameserversRequest) (*NameserversResult, error) {
	var res NameserversResult
	err := c.do(ctx, "set_nameservers", http.MethodPut, "/api/manage/"+url.PathEscape(domain)+"/nameservers", nil, token, req, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Settings fetches the settings snapshot of a domain.
func (c *Client) Settings(ctx context.Context, domain, token string) (*SettingsResult, error) {
	var res SettingsResult
	err := c.do(ctx, "get_settings", http.MethodGet, "/api/manage/"+url.PathEscape(domain)+"/settings", nil, token, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateSettings changes the supplied settings; omitted fields are left
// unchanged.
func (c *Client) UpdateSettings(ctx context.Context, domain, token string, req *UpdateSettingsRequest) (*SettingsResult, error) {
	var res SettingsResult
	err := c.do(ctx, "update_settings", http.MethodPatch, "/api/manage/"+url.PathEscape(domain)+"/settings", nil, token, req, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Unlock removes the transfer lock so a transfer auth code can be issued.
func (c *Client) Unlock(ctx context.Context, domain, token string) (*UnlockResult, error) {
	var res UnlockResult
	err := c.do(ctx, "unlock", http.MethodPost, "/api/manage/"+url.PathEscape(domain)+"/unlock", nil, token, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// TransferCode fetches the transfer auth code of an unlocked domain.
func (c *Client) TransferCode(ctx context.Context, domain, token string) (*TransferResult, error) {
	var res TransferResult
	err := c.do(ctx, "transfer_code", http.MethodGet, "/api/manage/"+url.PathEscape(domain)+"/transfer", nil, token, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Recover asks the backend to email the management token to the address that
// purchased the domain.
func (c *Client) Recover(ctx context.Context, email string) (*RecoverResult, error) {
	var res RecoverResult
	err := c.do(ctx, "recover", http.MethodPost, "/api/recover", nil, "", &RecoverRequest{Email: email}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// do issues a single HTTP request. Failures are reported with the backend's
// error message verbatim when a structured error body is present, falling
// back to the HTTP status text.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, token string, body, out any) error {
	started := time.Now()
	defer metricskey.PerfRegistrarRequest.MeasureSince(started, op)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", clientIdentifier)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"operation", op,
		"method", method,
		"path", path,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metricskey.StatsRegistrarRequestsFailed.IncrCounter(1, op)
		return errors.Wrap(err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metricskey.StatsRegistrarRequestsFailed.IncrCounter(1, op)
		return errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metricskey.StatsRegistrarRequestsFailed.IncrCounter(1, op)
		// The backend message is carried verbatim so the user-facing error
		// line matches the backend body exactly.
		return errors.New(errorMessage(data, resp))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			metricskey.StatsRegistrarRequestsFailed.IncrCounter(1, op)
			return errors.Wrap(err, "failed to parse response")
		}
	}

	metricskey.StatsRegistrarRequestsSucceeded.IncrCounter(1, op)
	return nil
}

// errorMessage extracts the structured backend error, falling back to the
// transport status text.
func errorMessage(body []byte, resp *http.Response) string {
	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error != "" {
		return errBody.Error
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}
