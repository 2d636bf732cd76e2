package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vmduarte/conciliador-backend/internal/pkg/envutil"
	"github.com/vmduarte/conciliador-backend/internal/pkg/httpx"
	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
)

// Client is the OpenAI Responses API surface the reconciliation pipeline
// depends on. The pipeline treats it as an opaque text-in/text-out oracle.
type Client interface {
	// GenerateText sends a system instruction plus a user message and
	// returns the concatenated output text of the response.
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

type Options struct {
	Model       string
	Temperature float64
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int

	temperature *float64

	// One client instance serves every handler, so the learned rejection
	// is shared state.
	noTempMu        sync.RWMutex
	tempUnsupported bool
}

func NewClient(log *logger.Logger, opts Options) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	baseURL := strings.TrimRight(envutil.String("OPENAI_BASE_URL", "https://api.openai.com"), "/")

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gpt-4.1-mini"
	}

	timeoutSec := envutil.Int("OPENAI_TIMEOUT_SECONDS", 300)
	maxRetries := envutil.Int("OPENAI_MAX_RETRIES", 4)
	if maxRetries < 0 {
		maxRetries = 0
	}

	var tempPtr *float64
	if !envutil.Bool("OPENAI_DISABLE_TEMPERATURE", false) {
		t := opts.Temperature
		tempPtr = &t
	}

	return &client{
		log:         log.With("service", "OpenAIClient"),
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		httpClient:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries:  maxRetries,
		temperature: tempPtr,
	}, nil
}

type responsesRequest struct {
	Model string `json:"model"`

	Input []responsesMessage `json:"input"`

	Temperature *float64 `json:"temperature,omitempty"`
}

type responsesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Refusal string `json:"refusal,omitempty"`
}

func extractOutputText(resp responsesResponse) string {
	var out strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" && c.Text != "" {
				out.WriteString(c.Text)
			}
		}
	}
	return out.String()
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	ctx, span := otel.Tracer("openai").Start(ctx, "openai.generate_text")
	span.SetAttributes(attribute.String("openai.model", c.model))
	defer span.End()

	req := responsesRequest{
		Model: c.model,
		Input: []responsesMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	c.noTempMu.RLock()
	skipTemp := c.tempUnsupported
	c.noTempMu.RUnlock()
	if !skipTemp {
		req.Temperature = c.temperature
	}

	var resp responsesResponse
	if err := c.doWithTempFallback(ctx, "/v1/responses", &req, &resp); err != nil {
		return "", err
	}
	if resp.Refusal != "" {
		return "", fmt.Errorf("model refused: %s", resp.Refusal)
	}

	text := extractOutputText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no output_text found in response")
	}
	return text, nil
}

// doWithTempFallback retries exactly once without temperature if the model
// rejects the parameter, and remembers the rejection for later calls.
func (c *client) doWithTempFallback(ctx context.Context, path string, req *responsesRequest, out any) error {
	err := c.do(ctx, path, req, out)
	if err == nil || req.Temperature == nil || !isUnsupportedTemperature(err) {
		return err
	}
	c.noTempMu.Lock()
	c.tempUnsupported = true
	c.noTempMu.Unlock()
	req.Temperature = nil
	return c.do(ctx, path, req, out)
}

func isUnsupportedTemperature(err error) bool {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	if httpErr.StatusCode != http.StatusBadRequest {
		return false
	}
	body := strings.ToLower(httpErr.Body)
	return strings.Contains(body, "temperature") &&
		(strings.Contains(body, "unsupported") || strings.Contains(body, "does not support"))
}

func (c *client) do(ctx context.Context, path string, body any, out any) error {
	backoff := 1 * time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			if out == nil {
				return nil
			}
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("openai decode error: %w; raw=%s", uErr, string(raw))
			}
			return nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("OpenAI request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}

	return fmt.Errorf("unreachable retry loop")
}

func (c *client) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

// HTTPError is a non-2xx OpenAI response; it satisfies httpx.HTTPStatusCoder
// so the retry loop can classify it.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) HTTPStatusCode() int { return e.StatusCode }
