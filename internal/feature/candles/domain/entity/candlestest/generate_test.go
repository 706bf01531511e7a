package candlestest

import (
	"testing"
	"time"

	"backtest_backend/internal/feature/candles/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DropRatio(t *testing.T) {
	t.Parallel()
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	full := Generate(Options{Size: 500, From: from, Seed: 9})
	gapped := Generate(Options{Size: 500, From: from, Seed: 9, DropRatio: 0.3})

	require.Len(t, full, 500)
	assert.Less(t, len(gapped), 450)
	assert.Greater(t, len(gapped), 250)
	assert.Equal(t, from, gapped[0].OpenTime)

	// kept candles are the same candles as in the contiguous series
	byOpen := make(map[time.Time]entity.Candle, len(full))
	for _, c := range full {
		byOpen[c.OpenTime] = c
	}
	gaps := 0
	for i, c := range gapped {
		assert.Equal(t, byOpen[c.OpenTime], c)
		if i > 0 && c.OpenTime.After(gapped[i-1].CloseTime) {
			gaps++
		}
	}
	assert.Positive(t, gaps)

	fl, err := entity.NewFluctuations("BTCUSDT", entity.MustParsePeriod("1m"), gapped)
	require.NoError(t, err)
	assert.Equal(t, len(gapped), fl.Len())

	assert.Equal(t, gapped, Generate(Options{Size: 500, From: from, Seed: 9, DropRatio: 0.3}))
}
