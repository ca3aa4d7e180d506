package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"convertly/internal/config"
)

const userAgent = "Convertly-CLI/0.1.0"

type ntfyNotifier struct {
	endpoint string
	client   *http.Client
}

func newNtfy(cfg *config.Config) *ntfyNotifier {
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyNotifier{
		endpoint: cfg.Notifications.NtfyTopic,
		client:   &http.Client{Timeout: timeout},
	}
}

func (n *ntfyNotifier) Success(ctx context.Context, title, message string) error {
	return n.send(ctx, title, message, []string{"convertly", "success"}, "")
}

func (n *ntfyNotifier) Info(ctx context.Context, title, message string) error {
	return n.send(ctx, title, message, []string{"convertly", "info"}, "low")
}

func (n *ntfyNotifier) Error(ctx context.Context, title, message string) error {
	return n.send(ctx, title, message, []string{"convertly", "error", "alert"}, "high")
}

func (n *ntfyNotifier) send(ctx context.Context, title, message string, tags []string, priority string) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if title != "" {
		req.Header.Set("Title", title)
	}
	if len(tags) > 0 {
		req.Header.Set("Tags", strings.Join(tags, ","))
	}
	if priority != "" && priority != "default" {
		req.Header.Set("Priority", priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
