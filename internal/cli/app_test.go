package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kucli/config"
	"kucli/internal/entity"
)

// fakeExchange is a canned-response Exchange for command tests.
type fakeExchange struct {
	quote     entity.Quote
	balances  []entity.Balance
	orders    []entity.Order
	addresses []entity.DepositAddress
	prices    entity.PriceMap

	createdOrder  *entity.ResolvedOrder
	transferred   bool
	balancesType  string
	ordersStatus  string
	pricesBase    string
	transferErr   error
	createOrderID string
}

func (f *fakeExchange) GetQuote(_ context.Context, _ entity.Pair) (entity.Quote, error) {
	return f.quote, nil
}

func (f *fakeExchange) GetBalances(_ context.Context, accountType string) ([]entity.Balance, error) {
	f.balancesType = accountType
	return f.balances, nil
}

func (f *fakeExchange) GetOrders(_ context.Context, status string) ([]entity.Order, error) {
	f.ordersStatus = status
	return f.orders, nil
}

func (f *fakeExchange) GetDepositAddresses(_ context.Context, _ string) ([]entity.DepositAddress, error) {
	return f.addresses, nil
}

func (f *fakeExchange) GetFiatPrices(_ context.Context, base string, _ []string) (entity.PriceMap, error) {
	f.pricesBase = base
	return f.prices, nil
}

func (f *fakeExchange) CreateLimitOrder(_ context.Context, order entity.ResolvedOrder) (string, error) {
	f.createdOrder = &order
	if f.createOrderID == "" {
		return "ord-1", nil
	}
	return f.createOrderID, nil
}

func (f *fakeExchange) InnerTransfer(_ context.Context, _, _, _ string, _ decimal.Decimal) (string, error) {
	if f.transferErr != nil {
		return "", f.transferErr
	}
	f.transferred = true
	return "tr-1", nil
}

func (f *fakeExchange) WatchTicker(ctx context.Context, _ entity.Pair, _ chan<- entity.TickerTick) error {
	<-ctx.Done()
	return ctx.Err()
}

func testApp(t *testing.T, exchange Exchange) (*App, *bytes.Buffer) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return New(cfg, exchange, nil, zap.NewNop(), out), out
}

func TestBalances_FiltersDust(t *testing.T) {
	exchange := &fakeExchange{balances: []entity.Balance{
		{AccountType: "main", Currency: "BTC",
			Total: decimal.RequireFromString("0.5"), Available: decimal.RequireFromString("0.5")},
		{AccountType: "main", Currency: "XLM",
			Total: decimal.RequireFromString("0.0004"), Available: decimal.RequireFromString("0.0004")},
	}}
	app, out := testApp(t, exchange)

	require.NoError(t, app.Balances(context.Background(), nil))

	assert.Contains(t, out.String(), "BTC")
	assert.NotContains(t, out.String(), "XLM", "dust holding must be hidden")
}

func TestBalances_AllIncludesDust(t *testing.T) {
	exchange := &fakeExchange{balances: []entity.Balance{
		{AccountType: "main", Currency: "XLM",
			Total: decimal.RequireFromString("0.0004"), Available: decimal.RequireFromString("0.0004")},
	}}
	app, out := testApp(t, exchange)

	require.NoError(t, app.Balances(context.Background(), []string{"-all"}))
	assert.Contains(t, out.String(), "XLM")
}

func TestValue_RendersReport(t *testing.T) {
	exchange := &fakeExchange{
		balances: []entity.Balance{
			{AccountType: "trade", Currency: "BTC",
				Total:     decimal.RequireFromString("0.5"),
				Available: decimal.RequireFromString("0.4"),
				Holds:     decimal.RequireFromString("0.1")},
		},
		prices: entity.PriceMap{"BTC": decimal.NewFromInt(20000)},
	}
	app, out := testApp(t, exchange)

	require.NoError(t, app.Value(context.Background(), nil))

	assert.Equal(t, "USD", exchange.pricesBase)
	assert.Contains(t, out.String(), "8000.00", "0.4 available at 20000")
	assert.Contains(t, out.String(), "TOTAL")
}

func TestValue_MissingPriceFails(t *testing.T) {
	exchange := &fakeExchange{
		balances: []entity.Balance{
			{AccountType: "trade", Currency: "DOGE",
				Total: decimal.NewFromInt(100), Available: decimal.NewFromInt(100)},
		},
		prices: entity.PriceMap{},
	}
	app, _ := testApp(t, exchange)

	err := app.Value(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOGE")
}

func TestTicker(t *testing.T) {
	exchange := &fakeExchange{quote: entity.Quote{
		Price:   decimal.RequireFromString("0.495"),
		BestBid: decimal.RequireFromString("0.49"),
		BestAsk: decimal.RequireFromString("0.5"),
	}}
	app, out := testApp(t, exchange)

	require.NoError(t, app.Ticker(context.Background(), []string{"-symbol", "ADA-EUR"}))
	assert.Contains(t, out.String(), "ADA-EUR")
	assert.Contains(t, out.String(), "0.49")
}

func TestTicker_BadSymbol(t *testing.T) {
	app, _ := testApp(t, &fakeExchange{})

	err := app.Ticker(context.Background(), []string{"-symbol", "ADAEUR"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrInvalidPair))
}

func TestCreate_BuyBySpend(t *testing.T) {
	exchange := &fakeExchange{quote: entity.Quote{
		BestBid: decimal.RequireFromString("0.49"),
		BestAsk: decimal.RequireFromString("0.5"),
	}}
	app, out := testApp(t, exchange)

	err := app.Create(context.Background(), []string{
		"-pair", "ADA-EUR", "-spend", "100", "-confirm",
	})
	require.NoError(t, err)

	require.NotNil(t, exchange.createdOrder)
	assert.True(t, exchange.createdOrder.AssetQuantity.Equal(decimal.NewFromInt(200)))
	assert.True(t, exchange.createdOrder.LimitPrice.Equal(decimal.RequireFromString("0.5")))
	assert.Contains(t, out.String(), "Going to buy 200 ADA at 0.5 EUR")
	assert.Contains(t, out.String(), "> created ord-1")
}

func TestCreate_SellUsesBid(t *testing.T) {
	exchange := &fakeExchange{quote: entity.Quote{
		BestBid: decimal.RequireFromString("0.49"),
		BestAsk: decimal.RequireFromString("0.5"),
	}}
	app, out := testApp(t, exchange)

	err := app.Create(context.Background(), []string{
		"-pair", "ADA-EUR", "-direction", "sell", "-quantity", "200", "-confirm",
	})
	require.NoError(t, err)

	require.NotNil(t, exchange.createdOrder)
	assert.True(t, exchange.createdOrder.LimitPrice.Equal(decimal.RequireFromString("0.49")))
	assert.True(t, exchange.createdOrder.CounterAmount.Equal(decimal.NewFromInt(98)))
	assert.Contains(t, out.String(), "proceeds 98 EUR")
}

func TestCreate_NeedsExactlyOneSizing(t *testing.T) {
	exchange := &fakeExchange{quote: entity.Quote{
		BestBid: decimal.RequireFromString("0.49"),
		BestAsk: decimal.RequireFromString("0.5"),
	}}
	app, _ := testApp(t, exchange)

	err := app.Create(context.Background(), []string{"-pair", "ADA-EUR", "-confirm"})
	require.Error(t, err)
	assert.Nil(t, exchange.createdOrder, "nothing must be submitted on a bad intent")

	err = app.Create(context.Background(), []string{
		"-pair", "ADA-EUR", "-quantity", "1", "-spend", "1", "-confirm",
	})
	require.Error(t, err)
	assert.Nil(t, exchange.createdOrder)
}

func TestOrders(t *testing.T) {
	exchange := &fakeExchange{orders: []entity.Order{
		{ID: "o1", Symbol: "ADA-EUR", Side: entity.SideBuy, Type: "limit",
			Price: decimal.RequireFromString("0.5"), Size: decimal.NewFromInt(200),
			Fee: decimal.RequireFromString("0.1"), Active: true},
	}}
	app, out := testApp(t, exchange)

	require.NoError(t, app.Orders(context.Background(), []string{"-status", "active"}))
	assert.Equal(t, "active", exchange.ordersStatus)
	assert.Contains(t, out.String(), "open")
	assert.Contains(t, out.String(), "ADA-EUR")
}

func TestDeposit(t *testing.T) {
	exchange := &fakeExchange{addresses: []entity.DepositAddress{
		{Address: "addr1", Memo: "memo1", Chain: "ERC20"},
	}}
	app, out := testApp(t, exchange)

	require.NoError(t, app.Deposit(context.Background(), []string{"-currency", "ETH"}))
	assert.Contains(t, out.String(), "addr1")
	assert.Contains(t, out.String(), "ERC20")
}

func TestDeposit_RequiresCurrency(t *testing.T) {
	app, _ := testApp(t, &fakeExchange{})
	require.Error(t, app.Deposit(context.Background(), nil))
}

func TestTransfer(t *testing.T) {
	exchange := &fakeExchange{}
	app, out := testApp(t, exchange)

	err := app.Transfer(context.Background(), []string{
		"-currency", "BTC", "-from", "main", "-to", "trade", "-amount", "0.25",
	})
	require.NoError(t, err)
	assert.True(t, exchange.transferred)
	assert.Contains(t, out.String(), "tr-1")
}

func TestTransfer_Validation(t *testing.T) {
	app, _ := testApp(t, &fakeExchange{})

	require.Error(t, app.Transfer(context.Background(), []string{
		"-currency", "BTC", "-from", "main", "-to", "main", "-amount", "1",
	}), "same source and destination")

	require.Error(t, app.Transfer(context.Background(), []string{
		"-currency", "BTC", "-amount", "-1",
	}), "negative amount")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _ := testApp(t, &fakeExchange{})
	require.Error(t, app.Run(context.Background(), "frobnicate", nil))
}
