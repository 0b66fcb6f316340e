// Package summarize condenses a post's body into a short summary through an
// OpenAI-compatible chat model. The adapter is thin on purpose: one call per
// invocation, bounded output, and every failure folded into a summary-shaped
// error string so callers never branch on transport details.
package summarize

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/V2-Digital/v2-ai-mcp/internal/llm"
	"github.com/V2-Digital/v2-ai-mcp/internal/post"
)

const systemPrompt = "You are a helpful assistant that summarizes blog posts. " +
	"Provide a concise summary that captures the main points and key insights."

const (
	maxSummaryTokens = 500
	temperature      = 0.3
)

// View is the consumer-facing summary of a post.
type View struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Author  string `json:"author"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Summarizer calls the chat model with a fixed, deterministic-leaning
// configuration.
type Summarizer struct {
	Client llm.Client
	// Model defaults to GPT-4 when empty.
	Model string
}

// Summarize condenses text into a short summary.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if s == nil || s.Client == nil {
		return "", errors.New("summarizer not configured")
	}
	model := s.Model
	if model == "" {
		model = openai.GPT4
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Please summarize this blog post:\n\n" + text},
		},
		MaxTokens:   maxSummaryTokens,
		Temperature: temperature,
	}
	resp, err := s.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// SummarizeText is Summarize with the failure folded into the returned
// string, mirroring the summary field contract.
func (s *Summarizer) SummarizeText(ctx context.Context, text string) string {
	out, err := s.Summarize(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("summarization failed")
		return "Error generating summary: " + err.Error()
	}
	return out
}

// SummarizeView builds the summary view for p. The caller is expected to have
// filtered error-marker posts already (see post.IsError); those must be
// returned unchanged rather than summarized.
func (s *Summarizer) SummarizeView(ctx context.Context, p post.Post) View {
	return View{
		Title:   p.Title,
		Date:    p.Date,
		Author:  p.Author,
		URL:     p.URL,
		Summary: s.SummarizeText(ctx, p.Content),
	}
}
