package embedding

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client wraps the OpenAI client shared by the embedding and answer
// backends. It owns the API key and the optional outbound proxy.
type Client struct {
	client *openai.Client
}

// NewClient creates an OpenAI client with the given key. A non-empty
// proxyURL routes all OpenAI traffic through that proxy.
func NewClient(apiKey, proxyURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("empty API key")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if proxyURL != "" {
		proxy, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy URL: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(&http.Client{
			Transport: &http.Transport{Proxy: http.ProxyURL(proxy)},
		}))
	}

	client := openai.NewClient(opts...)
	return &Client{client: &client}, nil
}

// Client returns the underlying OpenAI client for use by the answer backend.
func (c *Client) Client() *openai.Client {
	return c.client
}
