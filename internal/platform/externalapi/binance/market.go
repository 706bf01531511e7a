package binance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"backtest_backend/internal/feature/candles/domain/entity"
	"backtest_backend/internal/feature/candles/usecase"
	"backtest_backend/internal/platform/externalapi/binance/dto"
)

// maxKlinesPerRequest は /api/v3/klines の limit の上限です。
const maxKlinesPerRequest = 1000

// BinanceMarket はBinanceのklines APIからローソク足を取得するMarketRepository実装です。
type BinanceMarket struct {
	cfg    Config
	client *http.Client
}

// BinanceMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*BinanceMarket)(nil)

// NewBinanceMarket は指定された設定とHTTPクライアントでBinanceMarketの新しいインスタンスを生成します。
func NewBinanceMarket(cfg Config, client *http.Client) *BinanceMarket {
	return &BinanceMarket{cfg: cfg, client: client}
}

// GetKlines は open_time が [start, end) のローソク足を1000本ずつページングして取得します。
// close_time はklineの最終ミリ秒に1msを足し、連続する足が隙間なく並ぶようにします。
func (b *BinanceMarket) GetKlines(ctx context.Context, symbol, interval string, start, end time.Time) ([]entity.Candle, error) {
	var candles []entity.Candle
	cursor := start
	for cursor.Before(end) {
		page, err := b.fetchPage(ctx, symbol, interval, cursor, end)
		if err != nil {
			return nil, err
		}
		for _, k := range page {
			c, err := toCandle(k)
			if err != nil {
				return nil, fmt.Errorf("binance %s: %w", symbol, err)
			}
			if c.OpenTime.Before(start) || !c.OpenTime.Before(end) {
				continue
			}
			candles = append(candles, c)
		}
		if len(page) < maxKlinesPerRequest {
			break
		}
		next := time.UnixMilli(page[len(page)-1].CloseTime + 1).UTC()
		if !next.After(cursor) {
			break
		}
		cursor = next
	}
	return candles, nil
}

func (b *BinanceMarket) fetchPage(ctx context.Context, symbol, interval string, start, end time.Time) ([]dto.Kline, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("startTime", strconv.FormatInt(start.UnixMilli(), 10))
	q.Set("endTime", strconv.FormatInt(end.UnixMilli()-1, 10))
	q.Set("limit", strconv.Itoa(maxKlinesPerRequest))

	u := fmt.Sprintf("%s/api/v3/klines?%s", b.cfg.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if b.cfg.APIKey != "" {
		req.Header.Set("X-MBX-APIKEY", b.cfg.APIKey)
	}

	res, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		var apiErr dto.APIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Msg != "" {
			return nil, fmt.Errorf("binance http %d: code %d: %s", res.StatusCode, apiErr.Code, apiErr.Msg)
		}
		return nil, fmt.Errorf("binance http %d", res.StatusCode)
	}

	var klines []dto.Kline
	if err := json.Unmarshal(body, &klines); err != nil {
		return nil, fmt.Errorf("binance: decode klines: %w", err)
	}
	return klines, nil
}

func toCandle(k dto.Kline) (entity.Candle, error) {
	return entity.NewCandle(entity.Candle{
		Open:      k.Open,
		High:      k.High,
		Low:       k.Low,
		Close:     k.Close,
		Volume:    k.Volume,
		OpenTime:  time.UnixMilli(k.OpenTime).UTC(),
		CloseTime: time.UnixMilli(k.CloseTime + 1).UTC(),
	})
}
