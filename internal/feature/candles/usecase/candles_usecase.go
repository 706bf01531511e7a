// Package usecase はローソク足データの取得・集約・取り込みのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backtest_backend/internal/feature/candles/domain/entity"

	"github.com/go-playground/validator/v10"
)

const (
	// BaseTimeframe は保存されるローソク足の時間足です。
	BaseTimeframe = "1m"
	// DefaultTimeframe はクエリで時間足が省略された場合の既定値です。
	DefaultTimeframe = "1h"
	// MaxQueryRange は一度に要求できる期間の上限です。
	MaxQueryRange = 366 * 24 * time.Hour
)

var (
	// ErrNoCandles は指定期間にローソク足が存在しない場合に返されます。
	ErrNoCandles = errors.New("no candles found")
	// ErrInvalidQuery はクエリの検証に失敗した場合に返されます。
	ErrInvalidQuery = errors.New("invalid fluctuations query")
)

// CandleRepository は1分足ローソク足の永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleRepository interface {
	// Find は open_time が [from, to) に含まれる1分足を open_time 昇順で返します。
	Find(ctx context.Context, symbol string, from, to time.Time) ([]entity.Candle, error)
	// UpsertBatch はローソク足を一括で挿入（または更新）します。
	UpsertBatch(ctx context.Context, symbol string, candles []entity.Candle) error
	// CountPerDay は [from, to) の各UTC日の件数を "2006-01-02" をキーに返します。
	CountPerDay(ctx context.Context, symbol string, from, to time.Time) (map[string]int, error)
}

// FluctuationsQuery は価格系列の要求内容です。
type FluctuationsQuery struct {
	Coin      string    `validate:"required,alphanum"`
	Currency  string    `validate:"required,alphanum"`
	From      time.Time `validate:"required"`
	To        time.Time `validate:"required,gtfield=From"`
	Timeframe string    `validate:"required"`
}

// Symbol は取引ペアのシンボル（例: BTCUSDT）を返します。
func (q FluctuationsQuery) Symbol() string {
	return strings.ToUpper(q.Coin + q.Currency)
}

// FluctuationsUsecase はDBに保存された1分足から指定時間足の価格系列を組み立てます。
type FluctuationsUsecase struct {
	candle   CandleRepository
	validate *validator.Validate
}

// NewFluctuationsUsecase は FluctuationsUsecase の新しいインスタンスを生成します。
func NewFluctuationsUsecase(candle CandleRepository) *FluctuationsUsecase {
	return &FluctuationsUsecase{candle: candle, validate: validator.New()}
}

// Request は [From, To) の1分足を読み込み、Timeframe に集約した価格系列を返します。
func (fu *FluctuationsUsecase) Request(ctx context.Context, q FluctuationsQuery) (*entity.Fluctuations, error) {
	if err := fu.validate.Struct(q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if q.To.Sub(q.From) > MaxQueryRange {
		return nil, fmt.Errorf("%w: range exceeds %s", ErrInvalidQuery, MaxQueryRange)
	}
	period, err := entity.ParsePeriod(q.Timeframe)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	symbol := q.Symbol()
	cs, err := fu.candle.Find(ctx, symbol, q.From, q.To)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: %s from %s to %s", ErrNoCandles, symbol, q.From, q.To)
	}

	if !period.Equal(entity.MustParsePeriod(BaseTimeframe)) {
		cs = Resample(cs, q.From, q.To, period)
		if len(cs) == 0 {
			return nil, fmt.Errorf("%w: no complete %s candle for %s", ErrNoCandles, period, symbol)
		}
	}
	return entity.NewFluctuations(symbol, period, cs)
}
