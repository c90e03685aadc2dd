package kucoin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"kucli/internal/entity"
)

type bulletData struct {
	Token           string `json:"token"`
	InstanceServers []struct {
		Endpoint     string `json:"endpoint"`
		PingInterval int64  `json:"pingInterval"`
	} `json:"instanceServers"`
}

type wsMessage struct {
	ID    string          `json:"id,omitempty"`
	Type  string          `json:"type"`
	Topic string          `json:"topic,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type wsSubscribe struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Topic    string `json:"topic"`
	Response bool   `json:"response"`
}

// WatchTicker streams top-of-book updates for a pair into out until ctx
// is cancelled or the connection fails. The public feed requires a
// short-lived connection token obtained over REST first.
func (c *Client) WatchTicker(ctx context.Context, pair entity.Pair, out chan<- entity.TickerTick) error {
	bullet, err := c.bulletPublic(ctx)
	if err != nil {
		return err
	}
	if len(bullet.InstanceServers) == 0 {
		return errors.New("no websocket instance servers offered")
	}

	server := bullet.InstanceServers[0]
	wsURL := fmt.Sprintf("%s?token=%s", server.Endpoint, bullet.Token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to dial websocket feed")
	}
	defer conn.Close()

	// server-dictated keepalive period, fall back to a safe default
	pingInterval := time.Duration(server.PingInterval) * time.Millisecond
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}

	sub := wsSubscribe{
		ID:       fmt.Sprintf("%d", time.Now().UnixNano()),
		Type:     "subscribe",
		Topic:    "/market/ticker:" + pair.Symbol(),
		Response: true,
	}
	if err := conn.WriteJSON(sub); err != nil {
		return errors.Wrap(err, "failed to subscribe to ticker topic")
	}

	// unblock the read loop on cancellation
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	pings := time.NewTicker(pingInterval)
	defer pings.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-pings.C:
				msg := wsMessage{ID: fmt.Sprintf("%d", time.Now().UnixNano()), Type: "ping"}
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			}
		}
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "websocket feed closed")
		}

		if msg.Type != "message" {
			continue
		}

		var data tickerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return errors.Wrap(err, "failed to decode ticker update")
		}
		quote, err := data.toQuote()
		if err != nil {
			return err
		}

		select {
		case out <- entity.TickerTick{Pair: pair, Quote: quote, Time: time.Now()}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// bulletPublic requests a connection token for the public feed.
func (c *Client) bulletPublic(ctx context.Context) (bulletData, error) {
	resp, err := c.http.R().SetContext(ctx).Post("/api/v1/bullet-public")
	if err != nil {
		return bulletData{}, errors.Wrap(err, "failed to request websocket token")
	}
	var data bulletData
	if err := decodeEnvelope(resp.Body(), &data); err != nil {
		return bulletData{}, err
	}
	return data, nil
}
