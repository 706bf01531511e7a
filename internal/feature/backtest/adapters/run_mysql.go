// Package adapters はbacktestフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"backtest_backend/internal/feature/backtest/domain/entity"
	"backtest_backend/internal/feature/backtest/domain/portfolio"
	"backtest_backend/internal/feature/backtest/usecase"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const insertBatchSize = 500

// runMySQL はRunRepositoryインターフェースのgorm実装です。
type runMySQL struct {
	db *gorm.DB
}

var _ usecase.RunRepository = (*runMySQL)(nil)

// NewRunRepository は指定されたDB接続でrunMySQLリポジトリの新しいインスタンスを生成します。
func NewRunRepository(db *gorm.DB) *runMySQL {
	return &runMySQL{db: db}
}

// Save は実行結果とその明細を1トランザクションで保存します。
func (r *runMySQL) Save(ctx context.Context, run *entity.Run) error {
	m, err := toRunModel(run)
	if err != nil {
		return err
	}
	trades, wealth, skipped := m.Trades, m.Wealth, m.Skipped
	m.Trades, m.Wealth, m.Skipped = nil, nil, nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if len(trades) > 0 {
			if err := tx.CreateInBatches(&trades, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(wealth) > 0 {
			if err := tx.CreateInBatches(&wealth, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(skipped) > 0 {
			if err := tx.CreateInBatches(&skipped, insertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID は保存済みの実行結果を返します。見つからない場合は entity.ErrRunNotFound を返します。
func (r *runMySQL) FindByID(ctx context.Context, id string) (*entity.Run, error) {
	bySeq := func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }

	var m RunModel
	err := r.db.WithContext(ctx).
		Preload("Trades", bySeq).
		Preload("Wealth", bySeq).
		Preload("Skipped", bySeq).
		First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", entity.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return m.toEntity()
}

func toRunModel(run *entity.Run) (RunModel, error) {
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return RunModel{}, err
	}
	m := RunModel{
		ID:              run.ID,
		Asset:           run.Asset,
		Timeframe:       run.Timeframe,
		From:            run.From.UTC(),
		To:              run.To.UTC(),
		FeesPct:         run.FeesPct,
		RiskSize:        run.Risk.Size,
		RiskTakeProfit:  run.Risk.TakeProfit,
		RiskStopLoss:    run.Risk.StopLoss,
		InitialCurrency: run.InitialCurrency.String(),
		Summary:         string(summary),
		CreatedAt:       run.CreatedAt.UTC(),
	}
	for i, t := range run.Trades {
		m.Trades = append(m.Trades, TradeModel{
			RunID:             run.ID,
			Seq:               i,
			Side:              string(t.Side),
			Volume:            t.Volume,
			OpenPrice:         t.OpenPrice,
			OpenDate:          t.OpenDate.UTC(),
			InitialInvestment: t.InitialInvestment,
			FeesPct:           t.FeesPct,
			HigherBarrier:     t.HigherBarrier,
			LowerBarrier:      t.LowerBarrier,
			CloseDate:         t.CloseDate.UTC(),
			ClosePrice:        t.ClosePrice,
			ExitMode:          string(t.ExitMode),
		})
	}
	for i, w := range run.Wealth {
		m.Wealth = append(m.Wealth, WealthItemModel{
			RunID:    run.ID,
			Seq:      i,
			Date:     w.Date.UTC(),
			Asset:    w.Asset.String(),
			Currency: w.Currency.String(),
		})
	}
	for i, s := range run.Skipped {
		m.Skipped = append(m.Skipped, SkippedSignalModel{
			RunID:  run.ID,
			Seq:    i,
			Date:   s.Signal.Date.UTC(),
			Side:   string(s.Signal.Side),
			Action: string(s.Signal.Action),
			Reason: string(s.Reason),
		})
	}
	return m, nil
}

func (m RunModel) toEntity() (*entity.Run, error) {
	initial, err := decimal.NewFromString(m.InitialCurrency)
	if err != nil {
		return nil, fmt.Errorf("run %s: initial currency: %w", m.ID, err)
	}
	run := &entity.Run{
		ID:        m.ID,
		Asset:     m.Asset,
		Timeframe: m.Timeframe,
		From:      m.From.UTC(),
		To:        m.To.UTC(),
		FeesPct:   m.FeesPct,
		Risk: entity.RiskConfig{
			Size:       m.RiskSize,
			TakeProfit: m.RiskTakeProfit,
			StopLoss:   m.RiskStopLoss,
		},
		CreatedAt:       m.CreatedAt.UTC(),
		InitialCurrency: initial,
	}
	if err := json.Unmarshal([]byte(m.Summary), &run.Summary); err != nil {
		return nil, fmt.Errorf("run %s: summary: %w", m.ID, err)
	}

	for _, t := range m.Trades {
		pos := entity.Position{
			Side:              entity.Side(t.Side),
			Volume:            t.Volume,
			OpenPrice:         t.OpenPrice,
			OpenDate:          t.OpenDate.UTC(),
			InitialInvestment: t.InitialInvestment,
			FeesPct:           t.FeesPct,
			HigherBarrier:     t.HigherBarrier,
			LowerBarrier:      t.LowerBarrier,
		}
		run.Trades = append(run.Trades, entity.RestoreTrade(pos, t.CloseDate.UTC(), t.ClosePrice, entity.ExitMode(t.ExitMode)))
	}
	for _, w := range m.Wealth {
		asset, err := decimal.NewFromString(w.Asset)
		if err != nil {
			return nil, fmt.Errorf("run %s: wealth asset: %w", m.ID, err)
		}
		currency, err := decimal.NewFromString(w.Currency)
		if err != nil {
			return nil, fmt.Errorf("run %s: wealth currency: %w", m.ID, err)
		}
		run.Wealth = append(run.Wealth, portfolio.WealthItem{Date: w.Date.UTC(), Asset: asset, Currency: currency})
	}
	for _, s := range m.Skipped {
		run.Skipped = append(run.Skipped, entity.SkippedSignal{
			Signal: entity.Signal{Date: s.Date.UTC(), Side: entity.Side(s.Side), Action: entity.Action(s.Action)},
			Reason: entity.SkipReason(s.Reason),
		})
	}
	return run, nil
}
