package contentful

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/V2-Digital/v2-ai-mcp/internal/post"
	"github.com/V2-Digital/v2-ai-mcp/internal/richtext"
)

// Candidate field names, probed in order. The first *present* name wins even
// if its value is empty — presence, not content, decides the winner.
var (
	authorFields = []string{"author", "authorName", "writer", "createdBy"}
	nameFields   = []string{"name", "fullName", "displayName", "title"}
	dateFields   = []string{
		"publishDate",
		"publicationDate",
		"publishedAt",
		"published",
		"date",
		"createdDate",
		"dateCreated",
		"createdAt",
	}
	contentFields = []string{"content", "body"}
)

// extractEntry normalizes one raw entry into a Post. Extraction never
// propagates a failure: a panic while walking a malformed entry is recovered
// and reported as a skip.
func (c *Client) extractEntry(item map[string]any) (p post.Post, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("cause", r).Msg("skipping malformed contentful entry")
			ok = false
		}
	}()

	sys, _ := item["sys"].(map[string]any)
	id, _ := sys["id"].(string)

	url := ""
	if slug, _ := item["slug"].(string); slug != "" {
		url = c.siteBaseURL() + slug
	}

	title, _ := item["title"].(string)

	return post.Normalize(post.Post{
		Title:   title,
		Date:    resolveDate(item, sys),
		Author:  resolveAuthor(item),
		Content: resolveContent(item),
		URL:     url,
		ID:      id,
	}), true
}

// resolveAuthor probes the author field names in order and dispatches on the
// shape of the winning value: plain string, linked entry, or list of linked
// entries (first element only).
func resolveAuthor(fields map[string]any) string {
	for _, key := range authorFields {
		value, present := fields[key]
		if !present {
			continue
		}
		return authorValue(value)
	}
	return post.UnknownAuthor
}

func authorValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		return linkedEntryName(v)
	case []any:
		if len(v) == 0 {
			return post.UnknownAuthor
		}
		if entry, ok := v[0].(map[string]any); ok {
			return linkedEntryName(entry)
		}
		return fmt.Sprint(v[0])
	case nil:
		return post.UnknownAuthor
	default:
		return fmt.Sprint(v)
	}
}

// linkedEntryName probes the name-like sub-fields of a linked entry.
func linkedEntryName(entry map[string]any) string {
	for _, key := range nameFields {
		value, present := entry[key]
		if !present {
			continue
		}
		if s, ok := value.(string); ok {
			return s
		}
		return fmt.Sprint(value)
	}
	return post.UnknownAuthor
}

// resolveDate probes the date field names in order, then falls back to the
// entry's system timestamps. Dates stay free-form text; no parsing.
func resolveDate(fields map[string]any, sys map[string]any) string {
	for _, key := range dateFields {
		value, present := fields[key]
		if !present {
			continue
		}
		return dateValue(value)
	}
	for _, key := range []string{"publishedAt", "createdAt"} {
		if ts, _ := sys[key].(string); ts != "" {
			return ts
		}
	}
	return post.NoDate
}

func dateValue(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// resolveContent prefers the content field over body. A rich-text value is
// flattened through the node-tree recursion; other non-string values are
// stringified. The empty string is left for Normalize to replace.
func resolveContent(fields map[string]any) string {
	for _, key := range contentFields {
		value, present := fields[key]
		if !present {
			continue
		}
		return contentValue(value)
	}
	return post.NoContent
}

func contentValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		// GraphQL wraps rich text as content { json }.
		if doc, ok := v["json"].(map[string]any); ok {
			return richtext.FromDocument(doc)
		}
		if richtext.IsDocument(v) {
			return richtext.FromAny(v)
		}
		return fmt.Sprint(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
