// Package ai implements the Reviewer port against any OpenAI-compatible
// chat completion API.
package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/resume-insight/internal/adapter/observability"
	"github.com/fairyhunter13/resume-insight/internal/config"
	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// neutralScore replaces the model's score when its reply cannot be
// parsed as the expected JSON document.
const neutralScore = 70

// Client calls an OpenAI-compatible chat completions endpoint and maps
// the reply onto domain.AIReview.
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs a review client with the configured request timeout.
// Outbound calls carry OTEL spans via the otelhttp transport.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		hc: &http.Client{
			Timeout:   cfg.AITimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// getBackoffConfig returns a configured ExponentialBackOff based on the current environment.
func (c *Client) getBackoffConfig() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()

	maxElapsedTime, initialInterval, maxInterval, multiplier := c.cfg.BackoffConfig()
	expo.MaxElapsedTime = maxElapsedTime
	expo.InitialInterval = initialInterval
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier

	return expo
}

// Review submits the parsed profile for an expert critique. A reply that
// is not valid JSON degrades to a neutral-score review; exhausted
// retries degrade to a zero-score error record. Review never returns a
// non-nil error together with a usable review.
func (c *Client) Review(ctx domain.Context, p domain.ParsedProfile) (domain.AIReview, error) {
	if c.cfg.AIAPIKey == "" {
		return domain.AIReview{}, fmt.Errorf("%w: AI_API_KEY missing", domain.ErrInvalidArgument)
	}

	start := time.Now()
	content, err := c.chatJSON(ctx, reviewSystemPrompt, buildReviewPrompt(p))
	if err != nil {
		observability.ObserveAIReview("error", time.Since(start))
		slog.Error("ai review failed after retries", slog.Any("error", err))
		return errorReview(err), nil
	}

	review, ok := parseReview(content)
	if !ok {
		observability.ObserveAIReview("fallback", time.Since(start))
		slog.Warn("ai review reply was not valid json; using neutral fallback",
			slog.Int("reply_bytes", len(content)))
		return fallbackReview(content), nil
	}
	observability.ObserveAIReview("ok", time.Since(start))
	return review, nil
}

// chatJSON performs the chat completion round trip with retries and
// returns the first choice's message content.
func (c *Client) chatJSON(ctx domain.Context, systemPrompt, userPrompt string) (string, error) {
	body := map[string]any{
		"model": c.cfg.AIModel,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature":     c.cfg.AITemperature,
		"response_format": map[string]string{"type": "json_object"},
	}
	b, _ := json.Marshal(body)

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	op := func() error {
		// Recreate request each attempt to avoid reusing consumed bodies
		r, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AIBaseURL+"/chat/completions", bytes.NewReader(b))
		r.Header.Set("Authorization", "Bearer "+c.cfg.AIAPIKey)
		r.Header.Set("Content-Type", "application/json")
		resp, err := c.hc.Do(r)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			// Retryable: let backoff handle retries
			slog.Warn("ai provider rate limited",
				slog.Int("status", resp.StatusCode),
				slog.String("x_request_id", resp.Header.Get("X-Request-Id")))
			return fmt.Errorf("rate limited: 429")
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Client error: non-retryable
			slog.Warn("ai provider 4xx",
				slog.Int("status", resp.StatusCode),
				slog.String("body", snippet(bodyBytes, 512)))
			return backoff.Permanent(fmt.Errorf("chat status %d", resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// 5xx and others: retryable
			slog.Error("ai provider non-2xx",
				slog.Int("status", resp.StatusCode),
				slog.String("body", snippet(bodyBytes, 512)))
			return fmt.Errorf("chat status %d", resp.StatusCode)
		}
		if err := json.Unmarshal(bodyBytes, &out); err != nil {
			return err
		}
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(c.getBackoffConfig(), uint64(c.cfg.AIMaxRetries)), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return "", fmt.Errorf("op=ai.chatJSON: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("empty choices in chat reply")
	}
	return out.Choices[0].Message.Content, nil
}

func snippet(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

// parseReview decodes the model reply. A reply missing a positive
// overall score counts as unparseable.
func parseReview(content string) (domain.AIReview, bool) {
	var review domain.AIReview
	if err := json.Unmarshal([]byte(content), &review); err != nil {
		return domain.AIReview{}, false
	}
	if review.OverallScore <= 0 || review.OverallScore > 100 {
		return domain.AIReview{}, false
	}
	review.Fallback = false
	return review, true
}

// fallbackReview wraps an unparseable but delivered reply in a neutral
// verdict so the caller still gets a usable record.
func fallbackReview(content string) domain.AIReview {
	summary := content
	if len(summary) > 200 {
		summary = summary[:200]
	}
	return domain.AIReview{
		OverallScore:    neutralScore,
		CategoryScores:  neutralCategoryScores(),
		Strengths:       []string{"Analysis completed"},
		Weaknesses:      []string{"Could not parse detailed response"},
		Recommendations: []string{summary},
		Fallback:        true,
	}
}

// neutralCategoryScores fills every requested category with the neutral
// score so the fallback record has the same shape as a parsed one.
func neutralCategoryScores() map[string]float64 {
	return map[string]float64{
		"content_quality":        neutralScore,
		"formatting":             neutralScore,
		"skills_presentation":    neutralScore,
		"experience_description": neutralScore,
		"education_presentation": neutralScore,
		"keywords_optimization":  neutralScore,
	}
}

// errorReview is the terminal record produced once retries are
// exhausted. Its zero score keeps it out of the combined average.
func errorReview(err error) domain.AIReview {
	return domain.AIReview{
		OverallScore: 0,
		Weaknesses:   []string{fmt.Sprintf("AI review unavailable: %v", err)},
		Fallback:     true,
	}
}
