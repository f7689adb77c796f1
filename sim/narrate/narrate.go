// Package narrate explains a frame's state description in plain language.
// It is consulted only after frames exist; a failing or missing narrator
// never affects the trace, callers get the static Fallback instead.
package narrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// Insight is a short explanation of one simulation state.
type Insight struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Fallback is returned whenever a narrator is unavailable or fails.
var Fallback = Insight{
	Title: "Sort Dynamics",
	Content: "Funnel sort merges recursively. When a buffer runs empty it pulls data " +
		"from its children by filling the sub-funnels first, so work always happens " +
		"on small, contiguous blocks of data that stay cache resident.",
}

// Narrator explains a frame description.
type Narrator interface {
	Explain(ctx context.Context, state string) (Insight, error)
}

// Prompt builds the request text for a state description.
func Prompt(state string) string {
	return fmt.Sprintf("Explain what is happening in a Funnel Sort algorithm during this state: %q.\n"+
		"Focus on cache-obliviousness, buffer filling, and recursive merging.\n"+
		"Keep it professional, concise, and educational.\n"+
		`Answer with a JSON object {"title": string, "content": string}.`, state)
}

// OpenAINarrator asks an OpenAI-compatible chat completion endpoint.
type OpenAINarrator struct {
	client *openai.Client
	model  string
}

// NewOpenAINarrator creates a narrator. An empty baseURL targets the OpenAI API;
// an empty model selects DefaultModel.
func NewOpenAINarrator(apiKey, model, baseURL string) *OpenAINarrator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAINarrator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Explain implements Narrator.
func (o *OpenAINarrator) Explain(ctx context.Context, state string) (Insight, error) {
	logrus.Debugf("Requesting insight from %s for %q", o.model, state)
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a concise algorithms tutor."},
			{Role: openai.ChatMessageRoleUser, Content: Prompt(state)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return Insight{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Insight{}, errors.New("chat completion returned no choices")
	}
	return parseInsight(resp.Choices[0].Message.Content)
}

func parseInsight(content string) (Insight, error) {
	var in Insight
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &in); err != nil {
		return Insight{}, fmt.Errorf("decoding insight: %w", err)
	}
	if in.Title == "" || in.Content == "" {
		return Insight{}, errors.New("insight is missing title or content")
	}
	return in, nil
}

// ExplainOrFallback asks n and returns Fallback on any failure, including a
// nil narrator. Failures are logged, never returned.
func ExplainOrFallback(ctx context.Context, n Narrator, state string) Insight {
	if n == nil {
		return Fallback
	}
	in, err := n.Explain(ctx, state)
	if err != nil {
		logrus.Warnf("Narration unavailable, using fallback: %v", err)
		return Fallback
	}
	return in
}
