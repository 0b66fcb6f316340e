package contentful

import (
	"fmt"
	"strings"
)

// entryFields is the selection set shared by every post query.
const entryFields = `sys {
    id
    publishedAt
}
title
slug
content {
    json
}
author {
    name
}
publishedDate`

// SearchOptions narrows a search beyond the title term. Zero values mean "no
// filter". Where-clause construction is plain string templating; the
// interesting work happens in entry extraction.
type SearchOptions struct {
	Limit  int
	Author string
	// TitleExact matches the title verbatim instead of as a substring.
	TitleExact string
	// TitleIn matches any of the given titles.
	TitleIn []string
	// AuthorExists filters on presence of a linked author.
	AuthorExists *bool
	// PublishedAfter/PublishedBefore bound the publish date (ISO 8601).
	PublishedAfter  string
	PublishedBefore string
}

func collectionQuery(contentType string, limit int, order, where string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "query {\n  %sCollection(limit: %d, order: %s", contentType, limit, order)
	if where != "" {
		fmt.Fprintf(&b, ", where: { %s }", where)
	}
	fmt.Fprintf(&b, ") {\n    items {\n%s\n    }\n  }\n}", entryFields)
	return b.String()
}

func singleEntryQuery(contentType, entryID string) string {
	return fmt.Sprintf("query {\n  %s(id: %q) {\n%s\n  }\n}", contentType, entryID, entryFields)
}

func whereClause(term string, opts SearchOptions) string {
	var conditions []string
	if term != "" {
		conditions = append(conditions, fmt.Sprintf("title_contains: %q", term))
	}
	if opts.TitleExact != "" {
		conditions = append(conditions, fmt.Sprintf("title: %q", opts.TitleExact))
	}
	if len(opts.TitleIn) > 0 {
		quoted := make([]string, 0, len(opts.TitleIn))
		for _, t := range opts.TitleIn {
			quoted = append(quoted, fmt.Sprintf("%q", t))
		}
		conditions = append(conditions, fmt.Sprintf("title_in: [%s]", strings.Join(quoted, ", ")))
	}
	if opts.Author != "" {
		conditions = append(conditions, fmt.Sprintf("author: { name_contains: %q }", opts.Author))
	}
	if opts.AuthorExists != nil {
		conditions = append(conditions, fmt.Sprintf("author_exists: %t", *opts.AuthorExists))
	}
	if opts.PublishedAfter != "" {
		conditions = append(conditions, fmt.Sprintf("publishedDate_gte: %q", opts.PublishedAfter))
	}
	if opts.PublishedBefore != "" {
		conditions = append(conditions, fmt.Sprintf("publishedDate_lte: %q", opts.PublishedBefore))
	}
	if len(conditions) == 0 {
		return "title_exists: true"
	}
	return strings.Join(conditions, ", ")
}
