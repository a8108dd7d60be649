package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coder/quartz"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/xerr"
)

// Providers is the enumerated set of external model endpoints the default
// player variant may target (spec.md §4.E).
var Providers = []string{
	"openai", "anthropic", "gemini", "grok",
	"ollama", "huggingface", "deepseek", "moonshot",
}

var providerBaseURLs = map[string]string{
	"openai":      "https://api.openai.com/v1/chat/completions",
	"anthropic":   "https://api.anthropic.com/v1/messages",
	"gemini":      "https://generativelanguage.googleapis.com/v1beta/models/chat",
	"grok":        "https://api.x.ai/v1/chat/completions",
	"ollama":      "http://localhost:11434/api/chat",
	"huggingface": "https://api-inference.huggingface.co/models",
	"deepseek":    "https://api.deepseek.com/chat/completions",
	"moonshot":    "https://api.moonshot.cn/v1/chat/completions",
}

func isKnownProvider(name string) bool {
	for _, p := range Providers {
		if p == name {
			return true
		}
	}
	return false
}

const (
	defaultMaxRetries  = 3
	defaultRetryBase   = 500 * time.Millisecond
	defaultHTTPTimeout = 60 * time.Second
)

// defaultPlayer calls an external model provider, building its prompt via
// the caller-supplied presentation function and retrying transient
// failures with exponential backoff on a mockable clock (spec.md §4.E,
// §7).
type defaultPlayer struct {
	id         string
	provider   string
	model      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	clock      quartz.Clock
	maxRetries int
	retryBase  time.Duration

	buildPrompt func(req MoveRequest) string
}

func newDefaultPlayer(cfg config.PlayerConfig) (Player, error) {
	provider, _ := cfg.Options["provider"].(string)
	if provider == "" {
		return nil, missingOptionError("default", "provider")
	}
	if !isKnownProvider(provider) {
		return nil, fmt.Errorf("unknown provider %q: %w", provider, xerr.ErrConfiguration)
	}
	model, _ := cfg.Options["model"].(string)
	if model == "" {
		return nil, missingOptionError("default", "model")
	}
	apiKey, _ := cfg.Options["api_key"].(string)
	baseURL := providerBaseURLs[provider]
	if override, ok := cfg.Options["base_url"].(string); ok && override != "" {
		baseURL = override
	}

	return &defaultPlayer{
		id:          cfg.ID,
		provider:    provider,
		model:       model,
		apiKey:      apiKey,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: defaultHTTPTimeout},
		clock:       quartz.NewReal(),
		maxRetries:  defaultMaxRetries,
		retryBase:   defaultRetryBase,
		buildPrompt: func(req MoveRequest) string {
			if req.Presentation != "" {
				return req.Presentation
			}
			return req.VarName
		},
	}, nil
}

// WithPrompt overrides how a MoveRequest is rendered into a prompt string.
// Without it the prompt is req.Presentation (the text the runtime rendered
// with the game's presentation function) or, when that is empty, the
// variable name.
func (d *defaultPlayer) WithPrompt(f func(req MoveRequest) string) {
	d.buildPrompt = f
}

// WithClock swaps the clock used for retry backoff, for deterministic
// tests (mirrors internal/testing's quartz.Mock usage in the teacher).
func (d *defaultPlayer) WithClock(clock quartz.Clock) {
	d.clock = clock
}

func (d *defaultPlayer) ID() string { return d.id }

func (d *defaultPlayer) MakeMove(ctx context.Context, req MoveRequest) (MoveResult, error) {
	prompt := d.buildPrompt(req)

	var lastErr error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := d.retryBase * time.Duration(1<<uint(attempt-1))
			select {
			case <-d.clock.After(backoff):
			case <-ctx.Done():
				return MoveResult{}, ctx.Err()
			}
		}
		result, err := d.call(ctx, prompt, req.MaxTokens)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !xerr.Retryable(err) {
			return MoveResult{}, err
		}
	}
	return MoveResult{}, lastErr
}

type chatRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type chatResponse struct {
	Response     string `json:"response"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

func (d *defaultPlayer) call(ctx context.Context, prompt string, maxTokens int) (MoveResult, error) {
	body, err := json.Marshal(chatRequest{Model: d.model, Prompt: prompt, MaxTokens: maxTokens})
	if err != nil {
		return MoveResult{}, fmt.Errorf("marshal request: %w: %w", err, xerr.ErrInternal)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, bytes.NewReader(body))
	if err != nil {
		return MoveResult{}, fmt.Errorf("new request: %w: %w", err, xerr.ErrInternal)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if d.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return MoveResult{}, xerr.NewApiError(fmt.Errorf("%s request failed: %w", d.provider, err), d.provider, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<12))
		return MoveResult{}, xerr.NewApiError(
			fmt.Errorf("%s returned %d: %s", d.provider, resp.StatusCode, string(respBody)),
			d.provider, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return MoveResult{}, fmt.Errorf("decode %s response: %w: %w", d.provider, err, xerr.ErrInternal)
	}

	return MoveResult{
		Response:     parsed.Response,
		FullResponse: parsed.Response,
		TokenUsage: config.TokenUsage{
			InputTokens:  parsed.InputTokens,
			OutputTokens: parsed.OutputTokens,
		},
		Prompts: []string{prompt},
	}, nil
}

func (d *defaultPlayer) Post(_ context.Context, _ config.EventJSON) error {
	return nil
}
