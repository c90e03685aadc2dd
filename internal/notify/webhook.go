// Package notify posts account activity to an operator-configured webhook.
package notify

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"kucli/internal/entity"
)

// OrderEvent is the payload posted after an order is submitted.
type OrderEvent struct {
	OrderID       string    `json:"order_id"`
	Symbol        string    `json:"symbol"`
	Side          string    `json:"side"`
	AssetQuantity string    `json:"asset_quantity"`
	LimitPrice    string    `json:"limit_price"`
	CounterAmount string    `json:"counter_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransferEvent is the payload posted after an inner transfer.
type TransferEvent struct {
	TransferID string    `json:"transfer_id"`
	Currency   string    `json:"currency"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Amount     string    `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// Webhook posts JSON events to a single URL. A Webhook with an empty
// URL is a no-op, so callers never need to branch on configuration.
type Webhook struct {
	http   *resty.Client
	url    string
	logger *zap.Logger
}

// NewWebhook builds a notifier for the given URL. Empty URL disables it.
func NewWebhook(url string, logger *zap.Logger) *Webhook {
	return &Webhook{
		http:   resty.New().SetTimeout(10 * time.Second),
		url:    url,
		logger: logger,
	}
}

// OrderCreated announces a submitted order.
func (w *Webhook) OrderCreated(ctx context.Context, orderID string, order entity.ResolvedOrder) {
	w.post(ctx, "order created", OrderEvent{
		OrderID:       orderID,
		Symbol:        order.Pair.Symbol(),
		Side:          order.Side.String(),
		AssetQuantity: order.AssetQuantity.String(),
		LimitPrice:    order.LimitPrice.String(),
		CounterAmount: order.CounterAmount.String(),
		CreatedAt:     time.Now().UTC(),
	})
}

// TransferDone announces a completed inner transfer.
func (w *Webhook) TransferDone(ctx context.Context, event TransferEvent) {
	event.CreatedAt = time.Now().UTC()
	w.post(ctx, "transfer done", event)
}

// post delivers one event. Delivery failure must not fail the command
// that triggered it, so errors are only logged.
func (w *Webhook) post(ctx context.Context, kind string, payload any) {
	if w.url == "" {
		return
	}

	resp, err := w.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(w.url)
	if err == nil && resp.IsError() {
		err = errors.Errorf("webhook returned %s", resp.Status())
	}
	if err != nil {
		w.logger.Warn("failed to post notification",
			zap.String("event", kind), zap.Error(err))
		return
	}
	w.logger.Debug("notification posted", zap.String("event", kind))
}
