// Package contentful fetches blog posts from a Contentful space over its
// GraphQL API and normalizes raw entries into canonical posts. Field
// resolution is deliberately defensive: entries arrive as loosely shaped JSON
// and every field is recovered through an ordered fallback chain, so a
// malformed entry degrades to placeholders instead of failing the batch.
package contentful

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/V2-Digital/v2-ai-mcp/internal/post"
)

const (
	// DefaultContentType is the content type ID queried when none is
	// configured.
	DefaultContentType = "pageBlogPost"
	// DefaultOrder sorts collections newest first.
	DefaultOrder = "sys_publishedAt_DESC"
	// DefaultSiteBaseURL is the URL prefix a slug is appended to.
	DefaultSiteBaseURL = "https://v2.ai/insights/"

	defaultGraphQLBase = "https://graphql.contentful.com/content/v1/spaces"
	defaultLimit       = 10
)

// Client issues GraphQL queries against one Contentful space. All calls are
// synchronous and bounded by Timeout; the client holds no mutable state.
type Client struct {
	SpaceID     string
	Environment string
	AccessToken string
	ContentType string
	SiteBaseURL string

	HTTPClient *http.Client
	// BaseURL overrides the Contentful GraphQL host, for tests.
	BaseURL string
	// Timeout bounds each query. Zero means 30s.
	Timeout time.Duration
}

// New validates credentials and returns a client for the given space. The
// environment defaults to "master".
func New(spaceID, accessToken string) (*Client, error) {
	if spaceID == "" {
		return nil, errors.New("contentful space ID is required")
	}
	if accessToken == "" {
		return nil, errors.New("contentful access token is required")
	}
	return &Client{
		SpaceID:     spaceID,
		Environment: "master",
		AccessToken: accessToken,
	}, nil
}

// GraphQLError carries the error list of a GraphQL response. It is
// distinguished from transport errors so callers can surface the upstream
// messages verbatim.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "GraphQL errors: " + strings.Join(e.Messages, "; ")
}

// FetchPosts fetches up to limit posts, newest first. A query-level failure
// (transport error or GraphQL error list) yields a single-element error-marker
// slice; individual entries that cannot be extracted are skipped.
func (c *Client) FetchPosts(ctx context.Context, limit int) []post.Post {
	if limit <= 0 {
		limit = defaultLimit
	}
	query := collectionQuery(c.contentType(), limit, DefaultOrder, "")
	return c.fetchCollection(ctx, query, "Error fetching from Contentful")
}

// FetchPost fetches a single post by entry ID.
func (c *Client) FetchPost(ctx context.Context, entryID string) post.Post {
	query := singleEntryQuery(c.contentType(), entryID)
	data, err := c.query(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("entry_id", entryID).Msg("contentful single fetch failed")
		return post.Post{
			Title:   "Error fetching post",
			Content: errorContent(err),
			ID:      entryID,
		}
	}
	var item map[string]any
	if raw, ok := data[c.contentType()]; ok {
		_ = json.Unmarshal(raw, &item)
	}
	if item == nil {
		return post.Post{
			Title:   "Post not found",
			Content: "Post not found in Contentful",
			ID:      entryID,
		}
	}
	p, ok := c.extractEntry(item)
	if !ok {
		return post.Post{
			Title:   "Post not found",
			Content: "Post data could not be extracted",
			ID:      entryID,
		}
	}
	return p
}

// SearchPosts searches post titles (and optionally the author name) for the
// given term. Failures yield a single-element error-marker slice titled with
// the query so callers can tell searches apart.
func (c *Client) SearchPosts(ctx context.Context, term string, opts SearchOptions) []post.Post {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	where := whereClause(term, opts)
	query := collectionQuery(c.contentType(), limit, DefaultOrder, where)
	return c.fetchCollection(ctx, query, fmt.Sprintf("Error searching Contentful for '%s'", term))
}

func (c *Client) fetchCollection(ctx context.Context, query, errorTitle string) []post.Post {
	data, err := c.query(ctx, query)
	if err != nil {
		log.Warn().Err(err).Msg("contentful query failed")
		return []post.Post{{Title: errorTitle, Content: errorContent(err)}}
	}

	var collection struct {
		Items []map[string]any `json:"items"`
	}
	if raw, ok := data[c.contentType()+"Collection"]; ok {
		_ = json.Unmarshal(raw, &collection)
	}

	posts := make([]post.Post, 0, len(collection.Items))
	for _, item := range collection.Items {
		if p, ok := c.extractEntry(item); ok {
			posts = append(posts, p)
		}
	}
	return posts
}

// query posts the GraphQL document and returns the data object. A non-empty
// errors list in the response body is returned as *GraphQLError.
func (c *Client) query(ctx context.Context, query string) (map[string]json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		messages := make([]string, 0, len(decoded.Errors))
		for _, e := range decoded.Errors {
			messages = append(messages, e.Message)
		}
		return nil, &GraphQLError{Messages: messages}
	}
	return decoded.Data, nil
}

func (c *Client) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = defaultGraphQLBase
	}
	env := c.Environment
	if env == "" {
		env = "master"
	}
	return fmt.Sprintf("%s/%s/environments/%s", base, c.SpaceID, env)
}

func (c *Client) contentType() string {
	if c.ContentType != "" {
		return c.ContentType
	}
	return DefaultContentType
}

func (c *Client) siteBaseURL() string {
	if c.SiteBaseURL != "" {
		return c.SiteBaseURL
	}
	return DefaultSiteBaseURL
}

// errorContent keeps GraphQL error lists verbatim and prefixes everything else
// the way the scraper does.
func errorContent(err error) string {
	var gqlErr *GraphQLError
	if errors.As(err, &gqlErr) {
		return gqlErr.Error()
	}
	return "Error: " + err.Error()
}
