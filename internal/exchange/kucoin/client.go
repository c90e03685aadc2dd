// Package kucoin is a thin REST/websocket client for the KuCoin spot API.
// Every call is a single attempt; retry policy belongs to the operator.
package kucoin

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"kucli/internal/entity"
)

const defaultBaseURL = "https://api.kucoin.com"

// Config is one configured API session.
type Config struct {
	BaseURL    string
	Key        string
	Secret     string
	Passphrase string
	Timeout    time.Duration
}

// Client talks to the exchange REST API. Public market data endpoints
// work without credentials; account endpoints require them.
type Client struct {
	http  *resty.Client
	creds credentials
}

// NewClient builds a client from an explicit config.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout),
		creds: credentials{key: cfg.Key, secret: cfg.Secret, passphrase: cfg.Passphrase},
	}
}

// GetQuote returns the top-of-book quote for a pair.
func (c *Client) GetQuote(ctx context.Context, pair entity.Pair) (entity.Quote, error) {
	var data tickerData
	query := url.Values{"symbol": {pair.Symbol()}}
	if err := c.get(ctx, "/api/v1/market/orderbook/level1", query, false, &data); err != nil {
		return entity.Quote{}, errors.Wrapf(err, "failed to fetch ticker for %s", pair.Symbol())
	}
	return data.toQuote()
}

// GetBalances lists sub-account balances, optionally filtered by
// account type ("main", "trade", ...). Empty filter returns all.
func (c *Client) GetBalances(ctx context.Context, accountType string) ([]entity.Balance, error) {
	query := url.Values{}
	if accountType != "" {
		query.Set("type", accountType)
	}
	var data []accountData
	if err := c.get(ctx, "/api/v1/accounts", query, true, &data); err != nil {
		return nil, errors.Wrap(err, "failed to fetch balances")
	}
	balances := make([]entity.Balance, 0, len(data))
	for _, a := range data {
		b, err := a.toBalance()
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, nil
}

// GetOrders lists order history, newest page first. status is "active",
// "done" or empty for both.
func (c *Client) GetOrders(ctx context.Context, status string) ([]entity.Order, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var page ordersPage
	if err := c.get(ctx, "/api/v1/orders", query, true, &page); err != nil {
		return nil, errors.Wrap(err, "failed to fetch orders")
	}
	orders := make([]entity.Order, 0, len(page.Items))
	for _, item := range page.Items {
		o, err := item.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// GetDepositAddresses returns the deposit destinations for a currency.
func (c *Client) GetDepositAddresses(ctx context.Context, currency string) ([]entity.DepositAddress, error) {
	query := url.Values{"currency": {currency}}
	var data []depositAddressData
	if err := c.get(ctx, "/api/v2/deposit-addresses", query, true, &data); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch deposit addresses for %s", currency)
	}
	addresses := make([]entity.DepositAddress, 0, len(data))
	for _, a := range data {
		addresses = append(addresses, entity.DepositAddress{Address: a.Address, Memo: a.Memo, Chain: a.Chain})
	}
	return addresses, nil
}

// GetFiatPrices returns unit fiat prices for the given currencies,
// denominated in base (e.g. "USD"). A fresh snapshot on every call.
func (c *Client) GetFiatPrices(ctx context.Context, base string, currencies []string) (entity.PriceMap, error) {
	query := url.Values{}
	if base != "" {
		query.Set("base", base)
	}
	if len(currencies) > 0 {
		query.Set("currencies", strings.Join(currencies, ","))
	}
	var data map[string]string
	if err := c.get(ctx, "/api/v1/prices", query, false, &data); err != nil {
		return nil, errors.Wrap(err, "failed to fetch fiat prices")
	}
	prices := make(entity.PriceMap, len(data))
	for currency, raw := range data {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s fiat price", currency)
		}
		prices[currency] = price
	}
	return prices, nil
}

// CreateLimitOrder submits a resolved order as a limit order and
// returns the exchange order id.
func (c *Client) CreateLimitOrder(ctx context.Context, order entity.ResolvedOrder) (string, error) {
	req := createOrderRequest{
		ClientOid: uuid.NewString(),
		Side:      order.Side.String(),
		Symbol:    order.Pair.Symbol(),
		Type:      "limit",
		Price:     order.LimitPrice.String(),
		Size:      order.AssetQuantity.String(),
	}
	var data orderCreatedData
	if err := c.post(ctx, "/api/v1/orders", req, &data); err != nil {
		return "", errors.Wrap(err, "failed to create order")
	}
	if data.OrderID == "" {
		return "", errors.New("exchange accepted the order but returned no order id")
	}
	return data.OrderID, nil
}

// InnerTransfer moves funds between sub-accounts of the same user and
// returns the transfer order id.
func (c *Client) InnerTransfer(ctx context.Context, currency, from, to string, amount decimal.Decimal) (string, error) {
	req := innerTransferRequest{
		ClientOid: uuid.NewString(),
		Currency:  currency,
		From:      from,
		To:        to,
		Amount:    amount.String(),
	}
	var data orderCreatedData
	if err := c.post(ctx, "/api/v2/accounts/inner-transfer", req, &data); err != nil {
		return "", errors.Wrapf(err, "failed to transfer %s %s", amount.String(), currency)
	}
	return data.OrderID, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, signed bool, out any) error {
	pathWithQuery := path
	if encoded := query.Encode(); encoded != "" {
		pathWithQuery += "?" + encoded
	}

	req := c.http.R().SetContext(ctx)
	if signed {
		if !c.creds.valid() {
			return errors.New("missing API credentials")
		}
		req.SetHeaders(c.creds.headers("GET", pathWithQuery, "", time.Now()))
	}

	resp, err := req.Get(pathWithQuery)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp.Body(), out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	if !c.creds.valid() {
		return errors.New("missing API credentials")
	}

	// the signature covers the exact bytes sent, so marshal once here
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeaders(c.creds.headers("POST", path, string(payload), time.Now())).
		SetBody(payload).
		Post(path)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp.Body(), out)
}

func decodeEnvelope(body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return errors.Wrap(err, "failed to decode exchange response")
	}
	if err := env.err(); err != nil {
		return err
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(env.Data, out), "failed to decode exchange payload")
}
