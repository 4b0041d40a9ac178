package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/wire"
	"github.com/omega/animator/internal/result"
	"go.uber.org/zap"
)

var Provider = wire.NewSet(NewClient)

const maxBodyLog = 2048

type Config struct {
	BaseURL     string
	ExecutePath string
	Timeout     time.Duration
}

// Client talks to the render executor sidecar.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.ExecutePath == "" {
		cfg.ExecutePath = "/execute-manim"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 300 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("render"),
	}
}

func (c *Client) executeURL() string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + c.cfg.ExecutePath
}

// Execute runs one render. Transport errors, non-2xx statuses, malformed
// bodies, explicit failures and successes without an artifact path are all
// reported as a failed result carrying an error text.
func (c *Client) Execute(ctx context.Context, req Request) result.Result[Output] {
	body, err := json.Marshal(req)
	if err != nil {
		return result.Failf[Output]("failed to encode render request: %v", err)
	}

	url := c.executeURL()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return result.Failf[Output]("failed to create render request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Info("sending render request",
		zap.String("url", url),
		zap.String("script_id", req.ScriptID),
		zap.String("scene_class", req.SceneClass))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return result.Failf[Output]("render service timed out after %s: %v", c.cfg.Timeout, err)
		}
		return result.Failf[Output]("failed to communicate with render service: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return result.Failf[Output]("failed to read render service response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("render service returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(raw), maxBodyLog)))
		return result.Failf[Output]("render execution failed with status %d: %s", resp.StatusCode, errorText(raw))
	}

	var parsed Response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return result.Failf[Output]("failed to parse render service response: %v", err)
	}

	out := Output{Output: parsed.Output, OutputPath: parsed.OutputPath}
	if !parsed.Success {
		msg := parsed.Error
		if msg == "" {
			msg = "Unknown error"
		}
		return result.FailWith(out, msg)
	}
	if parsed.OutputPath == "" {
		return result.FailWith(out, "missing output_path in render service response")
	}
	return result.Ok(out)
}

// Ping checks that the sidecar answers on its root path.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.cfg.BaseURL, "/")+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("render service returned status %d", resp.StatusCode)
	}
	return nil
}

// errorText prefers the JSON error field of a failure body.
func errorText(raw []byte) string {
	var parsed Response
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return strings.TrimSpace(string(raw))
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
