package usecase

import (
	"sort"
	"time"

	"backtest_backend/internal/feature/candles/domain/entity"
)

// Resample は [from, to) を period ごとの区間に分割し、各区間の1分足を1本のローソク足に集約します。
// 空の区間と、長さが period に満たない区間は捨てます。
func Resample(candles []entity.Candle, from, to time.Time, period entity.Period) []entity.Candle {
	sorted := make([]entity.Candle, len(candles))
	copy(sorted, candles)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].OpenTime.Before(sorted[j].OpenTime) })

	var out []entity.Candle
	i := 0
	for start := from; start.Before(to); {
		end := start.Add(period.Duration())
		if end.After(to) {
			end = to
		}

		for i < len(sorted) && sorted[i].OpenTime.Before(start) {
			i++
		}
		j := i
		for j < len(sorted) && sorted[j].OpenTime.Before(end) {
			j++
		}

		if j > i {
			c := summarize(sorted[i:j])
			if c.Duration().Round(time.Minute) == period.Duration() {
				out = append(out, c)
			}
		}
		i, start = j, end
	}
	return out
}

// summarize はローソク足の並びを1本にまとめます。高値・安値の時刻は該当する足の時刻を引き継ぎます。
func summarize(group []entity.Candle) entity.Candle {
	first, last := group[0], group[len(group)-1]
	hi, lo := 0, 0
	var volume float64
	for k, c := range group {
		if c.High > group[hi].High {
			hi = k
		}
		if c.Low < group[lo].Low {
			lo = k
		}
		volume += c.Volume
	}
	highTime := extremeTime(group[hi].HighTime, group[hi].CloseTime)
	lowTime := extremeTime(group[lo].LowTime, group[lo].CloseTime)

	return entity.Candle{
		Open:      first.Open,
		High:      group[hi].High,
		Low:       group[lo].Low,
		Close:     last.Close,
		Volume:    volume,
		OpenTime:  first.OpenTime,
		CloseTime: last.CloseTime,
		HighTime:  &highTime,
		LowTime:   &lowTime,
	}
}

func extremeTime(t *time.Time, fallback time.Time) time.Time {
	if t != nil {
		return *t
	}
	return fallback
}
