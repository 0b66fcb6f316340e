package post

import "strings"

// Placeholder values substituted for fields no source could resolve. The CMS
// pipeline uses the short forms; the HTML scraper reports the "... found"
// variants so callers can tell which extractor gave up.
const (
	NoTitle        = "No title"
	NoTitleFound   = "No title found"
	NoDate         = "No date available"
	NoDateFound    = "Date not found"
	UnknownAuthor  = "Unknown Author"
	NoContent      = "No content"
	NoContentFound = "Content not found"
)

// Post is the canonical record every extractor produces. A Post is always
// fully populated: each field holds either a real value or one of the
// placeholders above. URL and ID may be empty when the source has no slug or
// identifier.
type Post struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Author  string `json:"author"`
	Content string `json:"content"`
	URL     string `json:"url"`
	ID      string `json:"id,omitempty"`
}

// Normalize fills any empty field with its placeholder so callers never
// observe a partially populated record. URL and ID are allowed to stay empty.
func Normalize(p Post) Post {
	if p.Title == "" {
		p.Title = NoTitle
	}
	if p.Date == "" {
		p.Date = NoDate
	}
	if p.Author == "" {
		p.Author = UnknownAuthor
	}
	if p.Content == "" {
		p.Content = NoContent
	}
	return p
}

// FromError builds the error-marker shape used when a whole extraction fails:
// the title names the failure and the content carries the stringified cause.
// Date and author stay empty; no partial extraction is attempted.
func FromError(title string, err error, url, id string) Post {
	return Post{
		Title:   title,
		Content: "Error: " + err.Error(),
		URL:     url,
		ID:      id,
	}
}

// IsError reports whether p is an error-marker record rather than real
// content. Consumers use this to avoid, for example, summarizing an error
// string.
func IsError(p Post) bool {
	if strings.HasPrefix(p.Content, "Error") || strings.HasPrefix(p.Content, "GraphQL errors") {
		return true
	}
	return strings.HasPrefix(p.Title, "Error fetching") || strings.HasPrefix(p.Title, "Error searching")
}
