package llm

import "github.com/sashabaranov/go-openai"

// NewClient builds an OpenAI-compatible client pointed at URL.
func NewClient(apiKey, url string) *openai.Client {
	if apiKey == "" {
		apiKey = "sk-xxx"
	}
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = url
	return openai.NewClientWithConfig(config)
}
