package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/V2-Digital/v2-ai-mcp/internal/app"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath  string
		authorName  string
		postURLs    string
		spaceID     string
		environment string
		accessToken string
		contentType string
		siteBaseURL string
		llmBaseURL  string
		llmModel    string
		llmKey      string
		timeout     time.Duration
		verbose     bool
	)

	flag.StringVar(&configPath, "config", "", "Path to optional YAML config file")
	flag.StringVar(&authorName, "publisher.author", os.Getenv("PUBLISHER_AUTHOR"), "Byline for the scraped publisher")
	flag.StringVar(&postURLs, "publisher.urls", os.Getenv("PUBLISHER_URLS"), "Comma-separated post URLs to scrape")
	flag.StringVar(&spaceID, "contentful.space", os.Getenv("CONTENTFUL_SPACE_ID"), "Contentful space ID")
	flag.StringVar(&environment, "contentful.env", os.Getenv("CONTENTFUL_ENVIRONMENT"), "Contentful environment")
	flag.StringVar(&accessToken, "contentful.token", os.Getenv("CONTENTFUL_ACCESS_TOKEN"), "Contentful access token")
	flag.StringVar(&contentType, "contentful.contentType", os.Getenv("CONTENTFUL_CONTENT_TYPE"), "Contentful content type ID")
	flag.StringVar(&siteBaseURL, "site.base", os.Getenv("SITE_BASE_URL"), "URL prefix for post slugs")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name for summarization")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("OPENAI_API_KEY"), "API key for the summarization model")
	flag.DurationVar(&timeout, "timeout", 0, "Per-request timeout for outbound calls (default 30s)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		AuthorName:            authorName,
		ContentfulSpaceID:     spaceID,
		ContentfulEnvironment: environment,
		ContentfulAccessToken: accessToken,
		ContentfulContentType: contentType,
		SiteBaseURL:           siteBaseURL,
		LLMBaseURL:            llmBaseURL,
		LLMModel:              llmModel,
		LLMAPIKey:             llmKey,
		Timeout:               timeout,
		Verbose:               verbose,
	}
	if s := strings.TrimSpace(postURLs); s != "" {
		for _, part := range strings.Split(s, ",") {
			if u := strings.TrimSpace(part); u != "" {
				cfg.PostURLs = append(cfg.PostURLs, u)
			}
		}
	}

	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
		}
		cfg = app.Merge(cfg, fc)
		if cfg.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
