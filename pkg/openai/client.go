package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1/chat/completions"

type (
	// ChatCompleter is the narrow surface services depend on. Tests swap
	// in a stub; production wiring injects *Client built from config.
	ChatCompleter interface {
		CreateChatCompletion(ctx context.Context, req ChatRequest) (string, error)
	}

	ChatRequest struct {
		Model          string          `json:"model"`
		Messages       []Message       `json:"messages"`
		ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
		MaxTokens      int             `json:"max_tokens,omitempty"`
		Temperature    float64         `json:"temperature,omitempty"`
	}

	// Message content is either a plain string or a list of parts for
	// vision requests, so it is left untyped for marshalling.
	Message struct {
		Role    string      `json:"role"`
		Content interface{} `json:"content"`
	}

	TextPart struct {
		Type string `json:"type"` // "text"
		Text string `json:"text"`
	}

	ImageURLPart struct {
		Type     string   `json:"type"` // "image_url"
		ImageURL ImageURL `json:"image_url"`
	}

	ImageURL struct {
		URL string `json:"url"`
	}

	ResponseFormat struct {
		Type string `json:"type"` // "json_object"
	}

	Client struct {
		apiKey     string
		baseURL    string
		httpClient *http.Client
	}
)

// NewClient builds an explicitly configured client. No global state: the
// API key and timeout come from config and the client is injected into
// every consumer.
func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) CreateChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openai api key not configured")
	}

	requestJSON, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from openai")
	}

	return completion.Choices[0].Message.Content, nil
}
