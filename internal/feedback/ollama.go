package feedback

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"

	"github.com/verte-zerg/drillreport/internal/config"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3:latest"
	ollamaMaxRetries   = 2
)

// OllamaClient calls the Ollama generate endpoint.
type OllamaClient struct {
	baseURL string
	model   string
	http    *http.Client
	backoff func() backoff.BackOff
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// NewOllamaClient returns a client for the server at baseURL. A nil httpClient uses http.DefaultClient.
func NewOllamaClient(baseURL, model string, httpClient *http.Client) *OllamaClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOllamaURL
	}
	if strings.TrimSpace(model) == "" {
		model = defaultOllamaModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    httpClient,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return backoff.WithMaxRetries(b, ollamaMaxRetries)
		},
	}
}

func (c *OllamaClient) Name() string { return config.ProviderOllama }

// Generate sends a non-streaming completion request. Transport errors and 5xx responses are retried.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	var text string
	op := func() error {
		out, retry, err := c.generateOnce(ctx, body)
		if err != nil {
			if !retry || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		text = out
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(c.backoff(), ctx)); err != nil {
		return "", err
	}
	return text, nil
}

func (c *OllamaClient) generateOnce(ctx context.Context, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("ollama request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", true, fmt.Errorf("read ollama response: %w", err)
	}
	var decoded ollamaResponse
	decodeErr := json.Unmarshal(data, &decoded)

	if resp.StatusCode != http.StatusOK {
		detail := strings.TrimSpace(string(data))
		if decodeErr == nil && decoded.Error != "" {
			detail = decoded.Error
		}
		return "", resp.StatusCode >= http.StatusInternalServerError,
			fmt.Errorf("ollama status %d: %s", resp.StatusCode, detail)
	}
	if decodeErr != nil {
		return "", false, fmt.Errorf("decode ollama response: %w", decodeErr)
	}
	if decoded.Error != "" {
		return "", false, fmt.Errorf("ollama: %s", decoded.Error)
	}
	return decoded.Response, false, nil
}
