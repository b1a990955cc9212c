package books

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"whatshouldiread/internal/model"

	"github.com/goccy/go-json"
)

// DefaultBaseURL is the Google Books API root
const DefaultBaseURL = "https://www.googleapis.com/books/v1"

var (
	// ErrLookupFailed means the volumes query itself failed; metadata is empty
	ErrLookupFailed = errors.New("book metadata lookup failed")
	// ErrNoMatch means the query succeeded with zero items; metadata is empty
	ErrNoMatch = errors.New("no book matched title")
	// ErrCoverUnavailable means the item was found but the thumbnail fetch failed
	ErrCoverUnavailable = errors.New("cover image unavailable")
)

// Client queries the Google Books volumes endpoint.
// No retries and no caching: every call goes to the network.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the transport-default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at another volumes API root
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithAPIKey sets the optional API key; an empty key is omitted from requests
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// NewClient creates a Client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Transport: &LoggingTransport{}},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// volumesResponse matches GET /volumes
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Authors       []string `json:"authors"`
			AverageRating *float64 `json:"averageRating"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// FetchMetadata looks up a title and fetches its cover.
//
// The returned error is informational and never fatal to the caller:
//   - query failure or zero items: empty metadata, error wraps ErrLookupFailed or ErrNoMatch
//   - cover fetch failure: metadata without cover, error wraps ErrCoverUnavailable
func (c *Client) FetchMetadata(ctx context.Context, title string) (model.BookMetadata, error) {
	res, err := c.searchTitle(ctx, title)
	if err != nil {
		return model.BookMetadata{}, fmt.Errorf("%w: %q: %w", ErrLookupFailed, title, err)
	}
	if res.TotalItems <= 0 || len(res.Items) == 0 {
		return model.BookMetadata{}, fmt.Errorf("%w: %q", ErrNoMatch, title)
	}

	info := res.Items[0].VolumeInfo
	md := model.BookMetadata{
		Authors:       info.Authors,
		AverageRating: info.AverageRating,
	}
	if len(md.Authors) == 0 {
		md.Authors = []string{model.UnknownAuthor}
	}

	thumbnail := info.ImageLinks.Thumbnail
	if thumbnail == "" {
		return md, nil
	}

	image, contentType, err := c.fetchImage(ctx, thumbnail)
	if err != nil {
		return md, fmt.Errorf("%w: %q: %w", ErrCoverUnavailable, title, err)
	}
	md.CoverImage = image
	md.CoverContentType = contentType
	return md, nil
}

func (c *Client) searchTitle(ctx context.Context, title string) (*volumesResponse, error) {
	params := url.Values{}
	params.Set("q", "intitle:"+title)
	params.Set("maxResults", "1")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	u := c.baseURL + "/volumes?" + params.Encode()

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var res volumesResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode volumes response: %w", err)
	}
	return &res, nil
}

func (c *Client) fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
