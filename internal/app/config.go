package app

import "time"

// DefaultPostURL is the single scraped post until the publisher exposes an
// index page worth crawling.
const DefaultPostURL = "https://www.v2.ai/insights/adopting-AI-assistants-while-balancing-risks"

// DefaultAuthorName is the byline the scraped publisher omits from markup.
const DefaultAuthorName = "Ashley Rodan"

// Config holds runtime configuration for the tool server.
type Config struct {
	// Publisher / scraper
	AuthorName string
	PostURLs   []string

	// Contentful. Space and token empty means the Contentful tools answer
	// with a structured "not configured" error.
	ContentfulSpaceID     string
	ContentfulEnvironment string
	ContentfulAccessToken string
	ContentfulContentType string
	SiteBaseURL           string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Behavior
	Timeout time.Duration
	Verbose bool
}
