package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Ahmet872/Alarm-System/internal/service/marketdata"
	"github.com/shopspring/decimal"
)

var _ marketdata.Provider = (*Provider)(nil)

// Provider 通用报价API数据源 (forex/stock)
// Talks to a quote endpoint exposing /price and /history, authenticated
// with an X-API-KEY header.
type Provider struct {
	baseURL string
	apiKey  string
	cli     *http.Client
}

func NewProvider(baseURL, apiKey string, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		baseURL: baseURL,
		apiKey:  apiKey,
		cli:     &http.Client{Timeout: timeout},
	}
}

type priceResp struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

type historyResp struct {
	Symbol string `json:"symbol"`
	Points []struct {
		Timestamp int64           `json:"timestamp"`
		Close     decimal.Decimal `json:"close"`
	} `json:"points"`
}

func (p *Provider) get(ctx context.Context, path string, query url.Values, out any) error {
	u := fmt.Sprintf("%s%s?%s", p.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if p.apiKey != "" {
		req.Header.Set("X-API-KEY", p.apiKey)
	}

	resp, err := p.cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quote api %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (p *Provider) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	var res priceResp
	query := url.Values{"symbol": {symbol}}
	if err := p.get(ctx, "/price", query, &res); err != nil {
		return decimal.Zero, err
	}
	if res.Price.IsZero() {
		return decimal.Zero, fmt.Errorf("no price data for %s", symbol)
	}
	return res.Price, nil
}

func (p *Provider) HistoricalSeries(ctx context.Context, symbol string, minPoints int) (marketdata.Series, error) {
	var res historyResp
	query := url.Values{
		"symbol": {symbol},
		"period": {strconv.Itoa(minPoints)},
	}
	if err := p.get(ctx, "/history", query, &res); err != nil {
		return nil, err
	}
	if len(res.Points) < minPoints {
		return nil, fmt.Errorf("%w: %s returned %d of %d points",
			marketdata.ErrHistoryUnavailable, symbol, len(res.Points), minPoints)
	}

	series := make(marketdata.Series, len(res.Points))
	for i, pt := range res.Points {
		series[i] = marketdata.Point{
			Time:  time.Unix(pt.Timestamp, 0),
			Close: pt.Close,
		}
	}
	return series, nil
}
