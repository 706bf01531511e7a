package binance

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// klineServer は startTime から endTime までの1分足を最大 limit 本返すテスト用サーバーです。
func klineServer(t *testing.T, requests *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requests, 1)
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1m", r.URL.Query().Get("interval"))

		startMs, _ := strconv.ParseInt(r.URL.Query().Get("startTime"), 10, 64)
		endMs, _ := strconv.ParseInt(r.URL.Query().Get("endTime"), 10, 64)
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		var rows []string
		for ms := startMs; ms <= endMs && len(rows) < limit; ms += 60_000 {
			rows = append(rows, fmt.Sprintf(`[%d,"100.0","101.5","99.5","100.5","12.25",%d,"1230.0",10,"6.0","600.0","0"]`, ms, ms+59_999))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[" + strings.Join(rows, ",") + "]"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBinanceMarket_GetKlines_Paginates(t *testing.T) {
	t.Parallel()

	var requests int32
	srv := klineServer(t, &requests)
	market := NewBinanceMarket(Config{BaseURL: srv.URL}, srv.Client())

	candles, err := market.GetKlines(context.Background(), "BTCUSDT", "1m", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Len(t, candles, 1440)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests), "1440 minutes need two pages of 1000")
	assert.Equal(t, day, candles[0].OpenTime)
	assert.Equal(t, day.Add(time.Minute), candles[0].CloseTime, "close time is contiguous with the next open")
	for i := 1; i < len(candles); i++ {
		require.Equal(t, candles[i-1].CloseTime, candles[i].OpenTime)
	}
	assert.Equal(t, 101.5, candles[0].High)
	assert.Equal(t, 12.25, candles[0].Volume)
	assert.Nil(t, candles[0].HighTime)
}

func TestBinanceMarket_GetKlines_SinglePage(t *testing.T) {
	t.Parallel()

	var requests int32
	srv := klineServer(t, &requests)
	market := NewBinanceMarket(Config{BaseURL: srv.URL}, srv.Client())

	candles, err := market.GetKlines(context.Background(), "BTCUSDT", "1m", day, day.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Len(t, candles, 10)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestBinanceMarket_GetKlines_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "api error body", status: http.StatusBadRequest, body: `{"code":-1121,"msg":"Invalid symbol."}`, wantMsg: "code -1121: Invalid symbol."},
		{name: "plain http error", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMsg: "binance http 502"},
		{name: "malformed body", status: http.StatusOK, body: `{"unexpected":true}`, wantMsg: "decode klines"},
		{name: "short kline", status: http.StatusOK, body: `[[1704067200000,"1","1"]]`, wantMsg: "expected at least 7 fields"},
		{name: "invalid candle", status: http.StatusOK, body: `[[1704067200000,"100","90","95","99","1",1704067259999]]`, wantMsg: "invalid candle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			market := NewBinanceMarket(Config{BaseURL: srv.URL}, srv.Client())
			_, err := market.GetKlines(context.Background(), "BTCUSDT", "1m", day, day.Add(time.Hour))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestBinanceMarket_SendsAPIKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("X-MBX-APIKEY"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	market := NewBinanceMarket(Config{BaseURL: srv.URL, APIKey: "secret-key"}, srv.Client())
	candles, err := market.GetKlines(context.Background(), "BTCUSDT", "1m", day, day.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, candles)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "")
	t.Setenv("BINANCE_BASE_URL", "")
	t.Setenv("BINANCE_RATE_LIMIT", "600")

	cfg := LoadConfig()
	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 600, cfg.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}
