// Package metadata generates short descriptions for documentation entries whose
// parsed description is missing or too thin to search on.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

// DefaultMaxTokens is the maximum prompt content length before truncation (in tokens).
const DefaultMaxTokens = 16000

// MinDescriptionLength is the description length below which an entry is summarized.
const MinDescriptionLength = 20

// EntryMetadata is the generated description of one entry.
type EntryMetadata struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

// Generator produces entry metadata with a chat model.
type Generator struct {
	client    *openai.Client
	maxTokens int
	logger    *slog.Logger
}

// NewGenerator creates a generator with the given OpenAI client.
// Optional maxTokens sets the truncation limit (defaults to DefaultMaxTokens).
func NewGenerator(client *openai.Client, logger *slog.Logger, maxTokens ...int) *Generator {
	max := DefaultMaxTokens
	if len(maxTokens) > 0 && maxTokens[0] > 0 {
		max = maxTokens[0]
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		client:    client,
		maxTokens: max,
		logger:    logger,
	}
}

// NeedsSummary reports whether e lacks a description worth embedding.
func NeedsSummary(e docs.Entry) bool {
	return len(strings.TrimSpace(e.Description)) < MinDescriptionLength
}

// GenerateMetadata asks the model for a one or two sentence summary of the entry
// and the SDK concepts it relates to.
func (g *Generator) GenerateMetadata(ctx context.Context, e docs.Entry) (*EntryMetadata, error) {
	prompt := fmt.Sprintf(`Describe this DemoSDK API entry for developers and provide:
1. A concise summary (1-2 sentences) of what it is and when to use it
2. A list of related DemoSDK concepts, classes or methods

Kind: %s
Name: %s

Declaration and extracted text:
%s

Respond in JSON format:
{"summary": "What this entry does", "keywords": ["Concept1", "Concept2"]}

Focus on SDK concepts like:
- Connecting to RPC nodes and wallets
- Preparing, confirming and broadcasting transactions
- Cross-chain (XM) payloads for EVM, Solana, XRP and Bitcoin`, e.Kind, e.FullName, g.truncateContent(entrySource(e)))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModelGPT4oMini,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: "json_object",
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return parseMetadata(resp.Choices[0].Message.Content)
}

func parseMetadata(content string) (*EntryMetadata, error) {
	var meta EntryMetadata
	if err := json.Unmarshal([]byte(content), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	meta.Summary = strings.TrimSpace(meta.Summary)
	if meta.Summary == "" {
		return nil, fmt.Errorf("response has no summary")
	}
	return &meta, nil
}

// entrySource is what the model sees: the parsed members and the raw content.
func entrySource(e docs.Entry) string {
	var b strings.Builder
	for _, m := range e.Methods() {
		fmt.Fprintf(&b, "method %s\n", firstNonEmpty(m.Signature, m.Name))
	}
	for _, p := range e.Properties() {
		fmt.Fprintf(&b, "property %s: %s\n", p.Name, p.Type)
	}
	for _, p := range e.Parameters() {
		fmt.Fprintf(&b, "param %s: %s\n", p.Name, p.Type)
	}
	if r := e.Returns(); r != "" {
		fmt.Fprintf(&b, "returns %s\n", r)
	}
	if e.Description != "" {
		b.WriteString(e.Description)
		b.WriteString("\n")
	}
	b.WriteString(e.Content)
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// truncateContent cuts content to the token budget, estimating 4 characters per token.
func (g *Generator) truncateContent(content string) string {
	maxChars := g.maxTokens * 4
	if len(content) <= maxChars {
		return content
	}

	g.logger.Warn("Truncating entry content",
		"from", len(content), "to", maxChars, "estimated_tokens", g.maxTokens)
	return content[:maxChars]
}
