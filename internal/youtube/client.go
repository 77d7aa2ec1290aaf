package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vidwalk/vidwalk/internal/model"
)

const (
	// defaultBaseURL is the YouTube Data API v3 endpoint root.
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// maxPageSize is the API's maximum search page size.
	maxPageSize = 50

	// relatedPageSize is the page requested for related-video fetches.
	// Related fetches take the platform's full page; they are not
	// bounded by the per-keyword seed limit.
	relatedPageSize = maxPageSize

	// maxErrorBodySize limits how much of an error response body is
	// read when extracting the failure reason.
	maxErrorBodySize = 64 * 1024
)

// Client calls the YouTube Data API v3 search endpoint. It maps HTTP
// and decoding failures onto the typed errors in this package and does
// nothing else: no throttling, no retries, no caching.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint root. Used by tests to point
// the client at a local server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger for request-level debug output.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client using the given API key.
// Per-call deadlines come from the caller's context, so the underlying
// HTTP client carries no timeout of its own.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// SearchByKeyword returns up to limit videos matching the keyword.
// The limit is clamped to the API's page-size range.
func (c *Client) SearchByKeyword(ctx context.Context, keyword string, limit int) ([]model.VideoRef, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("maxResults", strconv.Itoa(limit))

	c.logger.Debug("executing search query", "keyword", keyword, "max_results", limit)
	return c.search(ctx, params)
}

// FetchRelated returns the videos the platform lists as related to ref.
// Only ref.ID participates; the full ref is accepted so alternative
// expansion strategies can share the SearchClient contract.
func (c *Client) FetchRelated(ctx context.Context, ref model.VideoRef) ([]model.VideoRef, error) {
	params := url.Values{}
	params.Set("relatedToVideoId", ref.ID)
	params.Set("maxResults", strconv.Itoa(relatedPageSize))

	c.logger.Debug("fetching related videos", "video_id", ref.ID)
	return c.search(ctx, params)
}

// search issues one GET against the search endpoint with the common
// parameters filled in and maps the response.
func (c *Client) search(ctx context.Context, params url.Values) ([]model.VideoRef, error) {
	params.Set("part", "id,snippet")
	params.Set("type", "video")
	params.Set("key", c.apiKey)

	endpoint := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Surface the caller's cancellation or deadline as-is so the
		// retry policy sees the context error, not a transport wrapper.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapErrorResponse(resp)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &MalformedResponseError{StatusCode: resp.StatusCode, Err: err}
	}

	refs := make([]model.VideoRef, 0, len(body.Items))
	for _, item := range body.Items {
		// Non-video items (channels, playlists) have no video id.
		if item.ID.VideoID == "" {
			continue
		}
		refs = append(refs, model.VideoRef{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			Description: item.Snippet.Description,
		})
	}

	return refs, nil
}

// mapErrorResponse turns a non-200 response into a typed error.
//
// Status mapping:
//   - 401: AuthError
//   - 403: RateLimitError when the reason is quota related (the API
//     reports daily-quota exhaustion as 403 quotaExceeded), AuthError
//     otherwise
//   - 429: RateLimitError
//   - 5xx: TransientError
//   - any other 4xx: MalformedResponseError (the request itself is bad;
//     retrying cannot fix it)
func (c *Client) mapErrorResponse(resp *http.Response) error {
	reason := errorReason(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{StatusCode: resp.StatusCode, Reason: reason}

	case resp.StatusCode == http.StatusForbidden:
		if isQuotaReason(reason) {
			return &RateLimitError{StatusCode: resp.StatusCode, Reason: reason}
		}
		return &AuthError{StatusCode: resp.StatusCode, Reason: reason}

	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{StatusCode: resp.StatusCode, Reason: reason}

	case resp.StatusCode >= 500:
		return &TransientError{StatusCode: resp.StatusCode}

	default:
		return &MalformedResponseError{StatusCode: resp.StatusCode}
	}
}

// isQuotaReason reports whether a 403 reason denotes budget exhaustion
// rather than a credential problem.
func isQuotaReason(reason string) bool {
	switch reason {
	case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded", "userRateLimitExceeded":
		return true
	}
	return false
}

// errorReason extracts the first machine-readable reason from an API
// error body. An unreadable or unexpected body yields an empty reason;
// the status code alone still classifies the failure.
func errorReason(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil {
		return ""
	}

	var parsed apiErrorBody
	if err := json.Unmarshal(data, &parsed); err != nil {
		return ""
	}
	if len(parsed.Error.Errors) == 0 {
		return ""
	}
	return parsed.Error.Errors[0].Reason
}

// searchResponse is the subset of the search endpoint's response the
// crawl consumes.
type searchResponse struct {
	Items []searchItem `json:"items"`
}

// searchItem is one search hit.
type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ChannelTitle string `json:"channelTitle"`
	} `json:"snippet"`
}

// apiErrorBody is the standard Google API error envelope.
type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}
