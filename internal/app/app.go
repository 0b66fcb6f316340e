// Package app wires configuration into the tool server.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/V2-Digital/v2-ai-mcp/internal/contentful"
	"github.com/V2-Digital/v2-ai-mcp/internal/fetch"
	"github.com/V2-Digital/v2-ai-mcp/internal/llm"
	"github.com/V2-Digital/v2-ai-mcp/internal/scrape"
	"github.com/V2-Digital/v2-ai-mcp/internal/summarize"
	"github.com/V2-Digital/v2-ai-mcp/internal/tools"
)

// App is the assembled tool server.
type App struct {
	Registry *tools.Registry
}

// New builds the component graph from cfg. Contentful and the summarizer are
// optional; their tools degrade to structured errors when unconfigured.
func New(cfg Config) (*App, error) {
	if cfg.AuthorName == "" {
		cfg.AuthorName = DefaultAuthorName
	}
	if len(cfg.PostURLs) == 0 {
		cfg.PostURLs = []string{DefaultPostURL}
	}

	client := &fetch.Client{
		UserAgent: "v2-insights/1.0",
		Timeout:   cfg.Timeout,
	}
	scraper := &scrape.Scraper{
		Client: client,
		Config: scrape.Config{AuthorName: cfg.AuthorName, PostURLs: cfg.PostURLs},
	}

	var cms *contentful.Client
	if cfg.ContentfulSpaceID != "" || cfg.ContentfulAccessToken != "" {
		var err error
		cms, err = contentful.New(cfg.ContentfulSpaceID, cfg.ContentfulAccessToken)
		if err != nil {
			return nil, fmt.Errorf("contentful: %w", err)
		}
		if cfg.ContentfulEnvironment != "" {
			cms.Environment = cfg.ContentfulEnvironment
		}
		cms.ContentType = cfg.ContentfulContentType
		cms.SiteBaseURL = cfg.SiteBaseURL
		cms.Timeout = cfg.Timeout
	} else {
		log.Debug().Msg("contentful credentials absent, CMS tools disabled")
	}

	var summarizer *summarize.Summarizer
	if cfg.LLMAPIKey != "" {
		summarizer = &summarize.Summarizer{
			Client: llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL),
			Model:  cfg.LLMModel,
		}
	} else {
		log.Debug().Msg("LLM key absent, summarization disabled")
	}

	registry, err := tools.NewBuiltinRegistry(tools.Deps{
		Scraper:    scraper,
		Contentful: cms,
		Summarizer: summarizer,
	})
	if err != nil {
		return nil, err
	}
	return &App{Registry: registry}, nil
}

// Run serves tool calls over stdio until EOF or cancellation.
func (a *App) Run(ctx context.Context) error {
	log.Info().Msg("serving tools on stdio")
	return tools.Serve(ctx, a.Registry, os.Stdin, os.Stdout)
}
