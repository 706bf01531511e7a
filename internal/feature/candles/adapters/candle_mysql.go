package adapters

import (
	"context"
	"time"

	"backtest_backend/internal/feature/candles/domain/entity"
	"backtest_backend/internal/feature/candles/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertChunkSize はプレースホルダ数の上限を超えないよう一度に書き込む行数です。
const upsertChunkSize = 500

type candleMySQL struct {
	db *gorm.DB
}

var _ usecase.CandleRepository = (*candleMySQL)(nil)

func NewCandleRepository(db *gorm.DB) *candleMySQL {
	return &candleMySQL{db: db}
}

// CandleModel は1分足ローソク足の行です。(symbol, open_time) で一意になります。
type CandleModel struct {
	ID       uint      `gorm:"primaryKey"`
	Symbol   string    `gorm:"size:32;not null;uniqueIndex:candle_sym_open,priority:1"`
	OpenTime time.Time `gorm:"not null;uniqueIndex:candle_sym_open,priority:2"`

	CloseTime time.Time `gorm:"not null"`
	Open      float64   `gorm:"not null"`
	High      float64   `gorm:"not null"`
	Low       float64   `gorm:"not null"`
	Close     float64   `gorm:"not null"`
	Volume    float64   `gorm:"not null;default:0"`

	HighTime *time.Time
	LowTime  *time.Time
}

func (CandleModel) TableName() string {
	return "candles"
}

func toModel(symbol string, e entity.Candle) CandleModel {
	return CandleModel{
		Symbol:    symbol,
		OpenTime:  e.OpenTime.UTC(),
		CloseTime: e.CloseTime.UTC(),
		Open:      e.Open,
		High:      e.High,
		Low:       e.Low,
		Close:     e.Close,
		Volume:    e.Volume,
		HighTime:  utcPtr(e.HighTime),
		LowTime:   utcPtr(e.LowTime),
	}
}

func (m CandleModel) toEntity() entity.Candle {
	return entity.Candle{
		Open:      m.Open,
		High:      m.High,
		Low:       m.Low,
		Close:     m.Close,
		Volume:    m.Volume,
		OpenTime:  m.OpenTime.UTC(),
		CloseTime: m.CloseTime.UTC(),
		HighTime:  utcPtr(m.HighTime),
		LowTime:   utcPtr(m.LowTime),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (r *candleMySQL) UpsertBatch(ctx context.Context, symbol string, candles []entity.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	ms := make([]CandleModel, 0, len(candles))
	for _, e := range candles {
		ms = append(ms, toModel(symbol, e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "open_time"}},
		DoUpdates: clause.AssignmentColumns([]string{"close_time", "open", "high", "low", "close", "volume", "high_time", "low_time"}),
	}).CreateInBatches(&ms, upsertChunkSize).Error
}

func (r *candleMySQL) Find(ctx context.Context, symbol string, from, to time.Time) ([]entity.Candle, error) {
	var rows []CandleModel
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND open_time >= ? AND open_time < ?", symbol, from.UTC(), to.UTC()).
		Order("open_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Candle, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// CountPerDay は日付関数がDBごとに異なるため、open_time だけを読み出してGo側で集計します。
func (r *candleMySQL) CountPerDay(ctx context.Context, symbol string, from, to time.Time) (map[string]int, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&CandleModel{}).
		Where("symbol = ? AND open_time >= ? AND open_time < ?", symbol, from.UTC(), to.UTC()).
		Pluck("open_time", &times).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, t := range times {
		counts[t.UTC().Format(time.DateOnly)]++
	}
	return counts, nil
}
