package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/V2-Digital/v2-ai-mcp/internal/contentful"
	"github.com/V2-Digital/v2-ai-mcp/internal/post"
	"github.com/V2-Digital/v2-ai-mcp/internal/report"
	"github.com/V2-Digital/v2-ai-mcp/internal/scrape"
	"github.com/V2-Digital/v2-ai-mcp/internal/summarize"
)

// Deps bundles the collaborators behind the tool surface. Contentful and
// Summarizer may be nil when unconfigured; the affected tools then answer
// with a structured error instead of failing registration.
type Deps struct {
	Scraper    *scrape.Scraper
	Contentful *contentful.Client
	Summarizer *summarize.Summarizer
}

// NewRegistry registers the built-in tool surface:
//   - get_latest_posts
//   - get_post_content
//   - summarize_post
//   - get_contentful_posts
//   - get_contentful_post
//   - summarize_contentful_post
//   - search_contentful_posts
//   - export_post_pdf
func NewBuiltinRegistry(deps Deps) (*Registry, error) {
	if deps.Scraper == nil {
		return nil, fmt.Errorf("tools: scraper is required")
	}
	r := NewRegistry()

	emptySchema := json.RawMessage(`{"type":"object","properties":{}}`)
	indexSchema := json.RawMessage(`{
		"type":"object",
		"properties":{"index":{"type":"integer","minimum":0}},
		"required":["index"]
	}`)

	register := func(def Definition) error { return r.Register(def) }

	if err := register(Definition{
		Name:        "get_latest_posts",
		Description: "Retrieve the latest blog posts with metadata",
		Schema:      emptySchema,
		Handler: func(ctx context.Context, _ json.RawMessage) (json.RawMessage, error) {
			return json.Marshal(deps.Scraper.FetchPosts(ctx))
		},
	}); err != nil {
		return nil, err
	}

	if err := register(Definition{
		Name:        "get_post_content",
		Description: "Return the full content of the blog post at the given index",
		Schema:      indexSchema,
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			index, err := decodeIndex(args)
			if err != nil {
				return nil, err
			}
			posts := deps.Scraper.FetchPosts(ctx)
			if index < 0 || index >= len(posts) {
				return indexError(len(posts))
			}
			return json.Marshal(posts[index])
		},
	}); err != nil {
		return nil, err
	}

	if err := register(Definition{
		Name:        "summarize_post",
		Description: "Return a summary of the blog post at the given index",
		Schema:      indexSchema,
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			index, err := decodeIndex(args)
			if err != nil {
				return nil, err
			}
			posts := deps.Scraper.FetchPosts(ctx)
			if index < 0 || index >= len(posts) {
				return indexError(len(posts))
			}
			return summaryResult(ctx, deps.Summarizer, posts[index])
		},
	}); err != nil {
		return nil, err
	}

	if err := register(Definition{
		Name:        "get_contentful_posts",
		Description: "Fetch the latest posts from Contentful",
		Schema: json.RawMessage(`{
			"type":"object",
			"properties":{"limit":{"type":"integer","minimum":1,"maximum":50}}
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			if deps.Contentful == nil {
				return errorResult("Contentful is not configured")
			}
			var in struct {
				Limit int `json:"limit"`
			}
			if len(args) > 0 {
				if err := json.Unmarshal(args, &in); err != nil {
					return nil, fmt.Errorf("decode args: %w", err)
				}
			}
			return json.Marshal(deps.Contentful.FetchPosts(ctx, in.Limit))
		},
	}); err != nil {
		return nil, err
	}

	if err := register(Definition{
		Name:        "get_contentful_post",
		Description: "Fetch a single post from Contentful by entry ID",
		Schema: json.RawMessage(`{
			"type":"object",
			"properties":{"entry_id":{"type":"string"}},
			"required":["entry_id"]
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			if deps.Contentful == nil {
				return errorResult("Contentful is not configured")
			}
			entryID, err := decodeEntryID(args)
			if err != nil {
				return nil, err
			}
			return json.Marshal(deps.Contentful.FetchPost(ctx, entryID))
		},
	}); err != nil {
		return nil, err
	}

	if err := register(Definition{
		Name:        "summarize_contentful_post",
		Description: "Summarize a Contentful post by entry ID",
		Schema: json.RawMessage(`{
			"type":"object",
			"properties":{"entry_id":{"type":"string"}},
			"required":["entry_id"]
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			if deps.Contentful == nil {
				return errorResult("Contentful is not configured")
			}
			entryID, err := decodeEntryID(args)
			if err != nil {
				return nil, err
			}
			return summaryResult(ctx, deps.Summarizer, deps.Contentful.FetchPost(ctx, entryID))
		},
	}); err != nil {
		return nil, err
	}

	if err := register(Definition{
		Name:        "search_contentful_posts",
		Description: "Search Contentful posts by title, optionally filtered by author",
		Schema: json.RawMessage(`{
			"type":"object",
			"properties":{
				"query":{"type":"string"},
				"limit":{"type":"integer","minimum":1,"maximum":50},
				"author":{"type":"string"}
			},
			"required":["query"]
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			if deps.Contentful == nil {
				return errorResult("Contentful is not configured")
			}
			var in struct {
				Query  string `json:"query"`
				Limit  int    `json:"limit"`
				Author string `json:"author"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("decode args: %w", err)
			}
			posts := deps.Contentful.SearchPosts(ctx, in.Query, contentful.SearchOptions{
				Limit:  in.Limit,
				Author: in.Author,
			})
			return json.Marshal(posts)
		},
	}); err != nil {
		return nil, err
	}

	if err := register(Definition{
		Name:        "export_post_pdf",
		Description: "Render the blog post at the given index to a PDF file",
		Schema: json.RawMessage(`{
			"type":"object",
			"properties":{
				"index":{"type":"integer","minimum":0},
				"path":{"type":"string"}
			},
			"required":["index","path"]
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in struct {
				Index int    `json:"index"`
				Path  string `json:"path"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("decode args: %w", err)
			}
			if in.Path == "" {
				return errorResult("path is required")
			}
			posts := deps.Scraper.FetchPosts(ctx)
			if in.Index < 0 || in.Index >= len(posts) {
				return indexError(len(posts))
			}
			if err := report.WritePost(posts[in.Index], in.Path); err != nil {
				return nil, fmt.Errorf("write pdf: %w", err)
			}
			return json.Marshal(map[string]string{"path": in.Path})
		},
	}); err != nil {
		return nil, err
	}

	return r, nil
}

// summaryResult applies the summarizer contract: error-marker posts are
// returned unchanged so the model is never paid to summarize an error string.
func summaryResult(ctx context.Context, s *summarize.Summarizer, p post.Post) (json.RawMessage, error) {
	if post.IsError(p) {
		return json.Marshal(p)
	}
	if s == nil {
		return errorResult("summarizer is not configured")
	}
	return json.Marshal(s.SummarizeView(ctx, p))
}

func decodeIndex(args json.RawMessage) (int, error) {
	var in struct {
		Index *int `json:"index"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return 0, fmt.Errorf("decode args: %w", err)
	}
	if in.Index == nil {
		return 0, fmt.Errorf("index is required")
	}
	return *in.Index, nil
}

func decodeEntryID(args json.RawMessage) (string, error) {
	var in struct {
		EntryID string `json:"entry_id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("decode args: %w", err)
	}
	if in.EntryID == "" {
		return "", fmt.Errorf("entry_id is required")
	}
	return in.EntryID, nil
}

func indexError(total int) (json.RawMessage, error) {
	return errorResult(fmt.Sprintf("Invalid index. Available posts: 0 to %d", total-1))
}

func errorResult(message string) (json.RawMessage, error) {
	return json.Marshal(map[string]string{"error": message})
}
