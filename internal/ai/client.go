package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/xolan/well/internal/logging"
	"golang.org/x/time/rate"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 1 << 20

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, credential, prompt string) (string, error)
}

// Options configures a Client.
type Options struct {
	BaseURL           string
	Model             string
	Temperature       float64
	TopK              int
	TopP              float64
	MaxOutputTokens   int
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client calls the generateContent endpoint of a generative-text service.
type Client struct {
	httpClient *http.Client
	opts       Options
	limiter    *rate.Limiter
	log        *logrus.Entry
}

var _ Generator = (*Client)(nil)

// NewClient creates a client. A nil logger discards output.
func NewClient(opts Options, log *logrus.Entry) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = 6
	}

	if log == nil {
		log = logging.Component(logging.Discard(), "ai")
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		opts:       opts,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		log:        log,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

func (c *Client) endpoint(credential string) string {
	base := strings.TrimRight(c.opts.BaseURL, "/")
	q := url.Values{}
	q.Set("key", credential)
	return fmt.Sprintf("%s/models/%s:generateContent?%s", base, url.PathEscape(c.opts.Model), q.Encode())
}

// Generate sends exactly one request for prompt. The credential travels as
// the key query parameter and is never logged.
func (c *Client) Generate(ctx context.Context, credential, prompt string) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", &Error{Kind: KindConfiguration, Message: MsgMissingCredential}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", &Error{Kind: KindNetwork, Message: MsgGenerateFailed, Err: err}
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.opts.Temperature,
			TopK:            c.opts.TopK,
			TopP:            c.opts.TopP,
			MaxOutputTokens: c.opts.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: MsgGenerateFailed, Err: fmt.Errorf("failed to marshal request body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(credential), bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindConfiguration, Message: MsgGenerateFailed, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	log := c.log.WithField("model", c.opts.Model)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the full URL, key included.
		log.WithField("duration", time.Since(start).Round(time.Millisecond)).Warn("summary request failed")
		return "", &Error{Kind: KindNetwork, Message: MsgGenerateFailed, Err: redact(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: MsgGenerateFailed, StatusCode: resp.StatusCode, Err: err}
	}

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	})

	text, aiErr := parseResponse(resp.StatusCode, raw)
	if aiErr != nil {
		log.WithField("kind", aiErr.Kind).Warn("summary request failed: " + aiErr.Message)
		return "", aiErr
	}
	log.Info("summary generated")
	return text, nil
}

// parseResponse extracts the generated text, or the provider's error message.
// Every lookup goes through gjson so unexpected shapes degrade to the generic
// messages instead of panicking.
func parseResponse(status int, raw []byte) (string, *Error) {
	valid := gjson.ValidBytes(raw)

	if status < 200 || status > 299 {
		msg := MsgGenerateFailed
		if valid {
			if m := gjson.GetBytes(raw, "error.message"); m.Type == gjson.String && strings.TrimSpace(m.Str) != "" {
				msg = m.Str
			}
		}
		return "", &Error{Kind: KindNetwork, Message: msg, StatusCode: status}
	}

	if !valid {
		return "", &Error{Kind: KindContent, Message: MsgNoContent, StatusCode: status}
	}
	if m := gjson.GetBytes(raw, "error.message"); m.Type == gjson.String && m.Str != "" {
		return "", &Error{Kind: KindNetwork, Message: m.Str, StatusCode: status}
	}

	text := gjson.GetBytes(raw, "candidates.0.content.parts.0.text")
	if text.Type != gjson.String || strings.TrimSpace(text.Str) == "" {
		return "", &Error{Kind: KindContent, Message: MsgNoContent, StatusCode: status}
	}
	return text.Str, nil
}

// redact strips the request URL from transport errors.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s request failed: %w", uerr.Op, uerr.Err)
	}
	return err
}
