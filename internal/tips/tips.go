// Package tips is the boundary to the external language-model API that
// produces short business advice. It never fails outward: any missing
// configuration, network error or malformed reply degrades to a fixed
// local list, with no retry.
package tips

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"backend/internal/logger"
	"backend/internal/model"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
)

// FallbackTips is returned whenever the model is unavailable. Content is
// not load-bearing; callers only rely on getting a non-empty list.
var FallbackTips = []string{
	"Send invoices as soon as work is delivered — delays cost you collection time.",
	"Set aside a fixed percentage of every payment for taxes.",
	"Keep personal and business spending in separate accounts.",
	"Review overdue invoices weekly and follow up in writing.",
	"Photograph receipts the day you get them so nothing goes missing.",
	"Offer a small discount for early payment on large invoices.",
	"Track recurring expenses and renegotiate them once a year.",
	"Build an emergency fund covering at least three months of expenses.",
	"Ask every satisfied client for a short written review.",
}

// Provider produces a short list of advisory strings for the dashboard.
type Provider interface {
	BusinessTips(ctx context.Context, invoices []model.Invoice) []string
}

type openAIProvider struct {
	client *openai.Client // nil when no API key is configured
	model  string
	log    zerolog.Logger
}

// NewOpenAIProvider builds a Provider backed by the OpenAI chat API.
// An empty apiKey yields a provider that always serves FallbackTips.
func NewOpenAIProvider(apiKey string) Provider {
	p := &openAIProvider{
		model: openai.GPT4oMini,
		log:   logger.WithComponent("tips"),
	}
	if apiKey != "" {
		p.client = openai.NewClient(apiKey)
	}
	return p
}

func (p *openAIProvider) BusinessTips(ctx context.Context, invoices []model.Invoice) []string {
	if p.client == nil {
		return FallbackTips
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a financial advisor for freelancers. Reply with a JSON array of exactly 3 short actionable tips and nothing else."},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(invoices)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		p.log.Warn().Err(err).Msg("tips request failed, serving fallback")
		return FallbackTips
	}
	if len(resp.Choices) == 0 {
		return FallbackTips
	}

	tips, err := parseTips(resp.Choices[0].Message.Content)
	if err != nil {
		p.log.Warn().Err(err).Msg("unparseable tips reply, serving fallback")
		return FallbackTips
	}
	return tips
}

func buildPrompt(invoices []model.Invoice) string {
	avg := decimal.Zero
	if len(invoices) > 0 {
		sum := decimal.Zero
		for _, inv := range invoices {
			sum = sum.Add(inv.Subtotal())
		}
		avg = sum.Div(decimal.NewFromInt(int64(len(invoices)))).Round(2)
	}
	return fmt.Sprintf(
		"The business has issued %d invoices with an average invoice subtotal of %s. Give 3 tips to improve its finances.",
		len(invoices), avg.StringFixed(2))
}

func parseTips(content string) ([]string, error) {
	// Models sometimes fence the JSON; strip that before decoding.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var tips []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &tips); err != nil {
		return nil, fmt.Errorf("invalid tips payload: %w", err)
	}
	if len(tips) != 3 {
		return nil, fmt.Errorf("expected 3 tips, got %d", len(tips))
	}
	return tips, nil
}
