package embedding

import (
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrMissingAPIKey is returned when no OpenAI API key is configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY not set")

// Client wraps the OpenAI client shared by embeddings and summaries.
type Client struct {
	client *openai.Client
}

// NewClient creates an OpenAI client authenticated with apiKey. opts are applied
// after the key, e.g. option.WithBaseURL for a compatible endpoint.
func NewClient(apiKey string, opts ...option.RequestOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &Client{client: &client}, nil
}

// Client returns the underlying OpenAI client (used by the metadata summarizer).
func (c *Client) Client() *openai.Client {
	return c.client
}
