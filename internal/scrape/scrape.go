// Package scrape extracts canonical posts from raw HTML pages. The publisher
// ships no structured metadata, so every field is resolved through an ordered
// fallback chain of selector and regex heuristics; the first strategy that
// yields a value wins and the rest are never consulted.
package scrape

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/V2-Digital/v2-ai-mcp/internal/fetch"
	"github.com/V2-Digital/v2-ai-mcp/internal/post"
)

// Config carries the per-publisher knobs. AuthorName is the byline the
// publisher omits from markup; it is also stripped from date matches because
// the source concatenates author and date without a separator.
type Config struct {
	AuthorName string
	PostURLs   []string
}

// Scraper turns raw HTML pages into posts.
type Scraper struct {
	Client *fetch.Client
	Config Config
}

// Date patterns in priority order. The first pattern with a match anywhere in
// the heading container wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Za-z]+ \d{1,2}, \d{4}\b`),        // Month DD, YYYY
	regexp.MustCompile(`\b\d{1,2} [A-Za-z]+ \d{4}\b`),         // DD Month YYYY
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),   // MM/DD/YYYY
	regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),     // YYYY/MM/DD
}

// Selector probes, tried in order after the regex scan comes up empty.
var dateSelectors = []string{
	"time",
	"[datetime]",
	".date",
	".published",
	".post-date",
	".meta-date",
	".publish-date",
}

// Containers likely to hold the article body, most specific first.
var contentSelectors = []string{
	"main",
	".content",
	".post-content",
	".article-content",
	"article",
	".entry-content",
}

// Elements dropped before paragraph collection.
const boilerplateSelector = "script, style, nav, header, footer"

// FetchPosts fetches every configured post URL, one Post per URL. Transport
// failures produce error-marker posts rather than aborting the batch.
func (s *Scraper) FetchPosts(ctx context.Context) []post.Post {
	posts := make([]post.Post, 0, len(s.Config.PostURLs))
	for _, u := range s.Config.PostURLs {
		posts = append(posts, s.FetchPost(ctx, u))
	}
	return posts
}

// FetchPost fetches and extracts a single post. A transport failure
// short-circuits extraction: the result is an error-marker Post carrying the
// stringified cause; no partial scraping is attempted.
func (s *Scraper) FetchPost(ctx context.Context, url string) post.Post {
	body, err := s.Client.Get(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("fetch failed")
		return post.FromError("Error fetching post", err, url, "")
	}
	return s.Extract(body, url)
}

// Extract parses raw HTML bytes into a Post. It is pure with respect to its
// inputs: the same bytes always yield the same record.
func (s *Scraper) Extract(input []byte, url string) post.Post {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("html parse failed")
		return post.FromError("Error fetching post", err, url, "")
	}

	title := post.NoTitleFound
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		if t := strings.TrimSpace(h1.Text()); t != "" {
			title = t
		}
	}

	// Date probing runs before boilerplate removal: timestamps often live in
	// the page header.
	date := s.resolveDate(doc)

	doc.Find(boilerplateSelector).Remove()
	content := resolveContent(doc)

	return post.Post{
		Title:   title,
		Date:    date,
		Author:  s.Config.AuthorName,
		Content: content,
		URL:     url,
	}
}

// resolveDate runs the ordered chain: regex scan of the heading container,
// then the selector probes, then the placeholder.
func (s *Scraper) resolveDate(doc *goquery.Document) string {
	resolvers := []func(*goquery.Document) string{
		s.dateFromHeadingContainer,
		dateFromSelectors,
	}
	for _, resolve := range resolvers {
		if d := resolve(doc); d != "" {
			return d
		}
	}
	return post.NoDateFound
}

func (s *Scraper) dateFromHeadingContainer(doc *goquery.Document) string {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return ""
	}
	container := h1.Parent()
	if container.Length() == 0 {
		return ""
	}
	text := container.Text()
	for _, pattern := range datePatterns {
		match := pattern.FindString(text)
		if match == "" {
			continue
		}
		return s.stripAuthorName(strings.TrimSpace(match))
	}
	return ""
}

// stripAuthorName drops everything up to and including the author name from a
// matched date. The source markup concatenates byline and date without a
// separator, so the regex can swallow the author's surname.
func (s *Scraper) stripAuthorName(date string) string {
	name := strings.TrimSpace(s.Config.AuthorName)
	if name == "" {
		return date
	}
	fields := strings.Fields(name)
	surname := fields[len(fields)-1]
	if !strings.Contains(date, surname) {
		return date
	}
	re := regexp.MustCompile(`.*?` + regexp.QuoteMeta(surname) + `\s*`)
	return re.ReplaceAllString(date, "")
}

func dateFromSelectors(doc *goquery.Document) string {
	for _, selector := range dateSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		if dt, ok := el.Attr("datetime"); ok && dt != "" {
			return dt
		}
		if text := strings.TrimSpace(el.Text()); text != "" {
			return text
		}
	}
	return ""
}

// resolveContent probes the container selectors in order and stops at the
// first one holding a non-empty paragraph; otherwise it falls back to every
// paragraph in the document, then to the placeholder.
func resolveContent(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		if text := joinParagraphs(el.Find("p")); text != "" {
			return text
		}
	}
	if text := joinParagraphs(doc.Find("p")); text != "" {
		return text
	}
	return post.NoContentFound
}

func joinParagraphs(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}
