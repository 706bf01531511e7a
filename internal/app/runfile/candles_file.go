package runfile

import (
	"context"
	"fmt"
	"os"
	"sort"

	market "backtest_backend/internal/feature/candles/domain/entity"
	candlesusecase "backtest_backend/internal/feature/candles/usecase"

	"github.com/goccy/go-json"
)

// FileSource serves price series from a JSON file of 1m candles.
type FileSource struct {
	candles []market.Candle
}

// LoadCandlesFile reads a JSON array of candles. Every candle is validated.
func LoadCandlesFile(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candles file: %w", err)
	}
	var cs []market.Candle
	if err := json.Unmarshal(raw, &cs); err != nil {
		return nil, fmt.Errorf("parse candles file: %w", err)
	}
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("candle %d: %w", i, err)
		}
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].OpenTime.Before(cs[j].OpenTime) })
	return &FileSource{candles: cs}, nil
}

// Request returns the candles whose open time falls in [From, To), resampled to the query timeframe.
func (s *FileSource) Request(ctx context.Context, q candlesusecase.FluctuationsQuery) (*market.Fluctuations, error) {
	period, err := market.ParsePeriod(q.Timeframe)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", candlesusecase.ErrInvalidQuery, err)
	}
	lo := sort.Search(len(s.candles), func(i int) bool { return !s.candles[i].OpenTime.Before(q.From) })
	hi := sort.Search(len(s.candles), func(i int) bool { return !s.candles[i].OpenTime.Before(q.To) })
	cs := s.candles[lo:hi]
	if !period.Equal(market.MustParsePeriod(candlesusecase.BaseTimeframe)) {
		cs = candlesusecase.Resample(cs, q.From, q.To, period)
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: %s from %s to %s", candlesusecase.ErrNoCandles, q.Symbol(), q.From, q.To)
	}
	return market.NewFluctuations(q.Symbol(), period, cs)
}
