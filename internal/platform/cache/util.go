package cache

import (
	"time"
)

// HistoryTTL は当日を含まない過去の期間のキャッシュ保持時間です。
const HistoryTTL = 24 * time.Hour

// TimeUntilNextUTCDay は次のUTC 0時（日次取り込みの区切り）までの期間を返します。
func TimeUntilNextUTCDay(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return next.Sub(now)
}

// RangeTTL は to で終わる期間のキャッシュ保持時間を返します。
// 当日のUTC 0時までに終わる期間は HistoryTTL、それ以外は short と日付変更までの短い方です。
func RangeTTL(to, now time.Time, short time.Duration) time.Duration {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !to.After(today) {
		return HistoryTTL
	}
	return min(short, TimeUntilNextUTCDay(now))
}
