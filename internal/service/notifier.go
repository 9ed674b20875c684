package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/config"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/redis"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/pkg/e"
)

// NotificationDispatcher drains the notify queue and delivers each payload to
// the external notifier endpoint. Delivery is best-effort with bounded retry;
// the authoritative contact snapshot always lives on the alert record.
type NotificationDispatcher struct {
	logger *slog.Logger
	cfg    config.NotifyConfig
	queue  *redis.NotifyQueue
	http   *http.Client
}

func NewNotificationDispatcher(logger *slog.Logger, cfg config.NotifyConfig, q *redis.NotifyQueue) *NotificationDispatcher {
	return &NotificationDispatcher{
		logger: logger,
		cfg:    cfg,
		queue:  q,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (d *NotificationDispatcher) Run(ctx context.Context) {
	d.logger.Info("notification dispatcher started", slog.String("url", d.cfg.WebhookURL))

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification dispatcher stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		payload, err := d.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			d.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		d.logger.Info("dispatching notification",
			slog.String("alert_id", payload.AlertID.String()),
			slog.Int("contacts", len(payload.Contacts)),
		)
		d.sendWithRetry(ctx, payload)
	}
}

func (d *NotificationDispatcher) sendWithRetry(ctx context.Context, p domain.NotificationPayload) {
	const maxRetries = 3

	body, err := json.Marshal(p)
	if err != nil {
		d.logger.Error("marshal notification payload failed", slog.String("error", err.Error()))
		return
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			d.logger.Info("stop retries due to context cancel")
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.WebhookURL, bytes.NewReader(body))
		if err != nil {
			d.logger.Error("create notification request failed", slog.String("error", err.Error()))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		d.logger.Warn("notification delivery failed",
			slog.Int("attempt", attempt),
			slog.String("alert_id", p.AlertID.String()),
			slog.String("reason", reason),
		)

		time.Sleep(time.Duration(attempt) * time.Second)
	}
}
