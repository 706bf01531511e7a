package usecase

import (
	"context"
	"log/slog"
	"time"

	"backtest_backend/internal/feature/candles/domain/entity"
	"backtest_backend/internal/shared/ratelimiter"
)

const (
	minutesInDay = 24 * 60
	dayKeyLayout = "2006-01-02"
)

// MarketRepository は外部の取引所APIからローソク足を取得するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// GetKlines は open_time が [start, end) に含まれるローソク足を返します。
	GetKlines(ctx context.Context, symbol, interval string, start, end time.Time) ([]entity.Candle, error)
}

// IngestUsecase は不足している1分足を外部APIから取得し、データベースに永続化するユースケースを定義します。
type IngestUsecase struct {
	market      MarketRepository
	candle      CandleRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(market MarketRepository, candle CandleRepository, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{market: market, candle: candle, rateLimiter: rateLimiter}
}

// FindIncompleteDates は [from, to] の各UTC日のうち、1分足が1440本に満たない日を返します。
func (iu *IngestUsecase) FindIncompleteDates(ctx context.Context, symbol string, from, to time.Time) ([]time.Time, error) {
	first, last := truncateDay(from), truncateDay(to)
	counts, err := iu.candle.CountPerDay(ctx, symbol, first, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if counts[d.Format(dayKeyLayout)] < minutesInDay {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// Fetch は不足している日ごとに1分足を取得して保存します。
// 1日分の取得に失敗してもログに出力して次の日に進みます。
func (iu *IngestUsecase) Fetch(ctx context.Context, symbol string, from, to time.Time) error {
	dates, err := iu.FindIncompleteDates(ctx, symbol, from, to)
	if err != nil {
		return err
	}
	slog.Info("fetching incomplete days", "symbol", symbol, "days", len(dates))

	for _, d := range dates {
		if err := ctx.Err(); err != nil {
			return err
		}
		iu.rateLimiter.WaitIfNeeded()
		if err := iu.ingestDay(ctx, symbol, d); err != nil {
			slog.Error("failed to ingest day", "symbol", symbol, "date", d.Format(dayKeyLayout), "error", err)
			continue
		}
	}
	return nil
}

// ingestDay は指定日の1分足を外部リポジトリから取得し、一括で挿入（または更新）します。
func (iu *IngestUsecase) ingestDay(ctx context.Context, symbol string, day time.Time) error {
	cs, err := iu.market.GetKlines(ctx, symbol, BaseTimeframe, day, day.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	if len(cs) == 0 {
		return nil
	}
	return iu.candle.UpsertBatch(ctx, symbol, cs)
}

// IngestAll は指定された全銘柄について Fetch を実行します。
// APIのレートリミットは Fetch 内で考慮されます。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string, from, to time.Time) error {
	for _, s := range symbols {
		if err := iu.Fetch(ctx, s, from, to); err != nil {
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の銘柄へ
			slog.Error("failed to ingest symbol", "symbol", s, "error", err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
