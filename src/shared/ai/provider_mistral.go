package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type mistralClient struct {
	apiKey     string
	httpClient *http.Client
	defaults   Options
}

func newMistralClient(cfg FactoryConfig) *mistralClient {
	return &mistralClient{
		apiKey:     cfg.MistralKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		defaults: Options{
			Model:        valueOrDefault(cfg.Model, "mistral-tiny"),
			Temperature:  orFloat(cfg.Temperature, 0.7),
			MaxTokens:    orInt(cfg.MaxTokens, 500),
			SystemPrompt: cfg.SystemPrompt,
		},
	}
}

func (c *mistralClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnconfigured
	}
	merged := c.merge(opts)
	reqBody := map[string]interface{}{
		"model": merged.Model,
		"messages": []map[string]string{
			{"role": "system", "content": merged.SystemPrompt},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  merged.MaxTokens,
		"temperature": merged.Temperature,
	}
	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.mistral.ai/v1/chat/completions", bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mistral API error: %s", string(body))
	}
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from Mistral")
	}
	return result.Choices[0].Message.Content, nil
}

func (c *mistralClient) merge(opts Options) Options {
	out := c.defaults
	if opts.Model != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxTokens != 0 {
		out.MaxTokens = opts.MaxTokens
	}
	if opts.SystemPrompt != "" {
		out.SystemPrompt = opts.SystemPrompt
	}
	return out
}

func valueOrDefault(val, def string) string {
	if val != "" {
		return val
	}
	return def
}

func orInt(v, d int) int {
	if v != 0 {
		return v
	}
	return d
}

func orFloat(v, d float64) float64 {
	if v != 0 {
		return v
	}
	return d
}
