package kucoin

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"kucli/internal/entity"
)

const codeOK = "200000"

// envelope is the common response wrapper of the exchange REST API.
type envelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (e envelope) err() error {
	if e.Code != codeOK {
		return errors.Errorf("exchange error %s: %s", e.Code, e.Msg)
	}
	return nil
}

type tickerData struct {
	Price   string `json:"price"`
	BestBid string `json:"bestBid"`
	BestAsk string `json:"bestAsk"`
}

func (t tickerData) toQuote() (entity.Quote, error) {
	price, err := decimal.NewFromString(t.Price)
	if err != nil {
		return entity.Quote{}, errors.Wrap(err, "failed to parse last price")
	}
	bid, err := decimal.NewFromString(t.BestBid)
	if err != nil {
		return entity.Quote{}, errors.Wrap(err, "failed to parse best bid")
	}
	ask, err := decimal.NewFromString(t.BestAsk)
	if err != nil {
		return entity.Quote{}, errors.Wrap(err, "failed to parse best ask")
	}
	return entity.Quote{Price: price, BestBid: bid, BestAsk: ask}, nil
}

type accountData struct {
	Currency  string `json:"currency"`
	Type      string `json:"type"`
	Balance   string `json:"balance"`
	Available string `json:"available"`
	Holds     string `json:"holds"`
}

func (a accountData) toBalance() (entity.Balance, error) {
	total, err := decimal.NewFromString(a.Balance)
	if err != nil {
		return entity.Balance{}, errors.Wrapf(err, "failed to parse %s balance", a.Currency)
	}
	available, err := decimal.NewFromString(a.Available)
	if err != nil {
		return entity.Balance{}, errors.Wrapf(err, "failed to parse %s available", a.Currency)
	}
	holds, err := decimal.NewFromString(a.Holds)
	if err != nil {
		return entity.Balance{}, errors.Wrapf(err, "failed to parse %s holds", a.Currency)
	}
	return entity.Balance{
		AccountType: a.Type,
		Currency:    a.Currency,
		Total:       total,
		Available:   available,
		Holds:       holds,
	}, nil
}

type orderData struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	Type      string `json:"type"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	Fee       string `json:"fee"`
	IsActive  bool   `json:"isActive"`
	CreatedAt int64  `json:"createdAt"`
}

func (o orderData) toOrder() (entity.Order, error) {
	price, err := decimal.NewFromString(o.Price)
	if err != nil {
		return entity.Order{}, errors.Wrapf(err, "failed to parse order %s price", o.ID)
	}
	size, err := decimal.NewFromString(o.Size)
	if err != nil {
		return entity.Order{}, errors.Wrapf(err, "failed to parse order %s size", o.ID)
	}
	fee, err := decimal.NewFromString(o.Fee)
	if err != nil {
		return entity.Order{}, errors.Wrapf(err, "failed to parse order %s fee", o.ID)
	}
	return entity.Order{
		ID:        o.ID,
		Symbol:    o.Symbol,
		Side:      entity.Side(o.Side),
		Type:      o.Type,
		Price:     price,
		Size:      size,
		Fee:       fee,
		Active:    o.IsActive,
		CreatedAt: time.UnixMilli(o.CreatedAt),
	}, nil
}

type ordersPage struct {
	Items []orderData `json:"items"`
}

type depositAddressData struct {
	Address string `json:"address"`
	Memo    string `json:"memo"`
	Chain   string `json:"chain"`
}

type orderCreatedData struct {
	OrderID string `json:"orderId"`
}

type createOrderRequest struct {
	ClientOid string `json:"clientOid"`
	Side      string `json:"side"`
	Symbol    string `json:"symbol"`
	Type      string `json:"type"`
	Price     string `json:"price"`
	Size      string `json:"size"`
}

type innerTransferRequest struct {
	ClientOid string `json:"clientOid"`
	Currency  string `json:"currency"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
}
