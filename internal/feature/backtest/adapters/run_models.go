package adapters

import (
	"time"
)

// RunModel は backtest_runs テーブルの行です。金額は丸め誤差を避けるため10進文字列で保存します。
type RunModel struct {
	ID              string    `gorm:"primaryKey;size:36"`
	Asset           string    `gorm:"size:32;not null;index"`
	Timeframe       string    `gorm:"size:16;not null"`
	From            time.Time `gorm:"column:from_date;not null"`
	To              time.Time `gorm:"column:to_date;not null"`
	FeesPct         float64   `gorm:"not null"`
	RiskSize        float64   `gorm:"not null"`
	RiskTakeProfit  float64   `gorm:"not null"`
	RiskStopLoss    float64   `gorm:"not null"`
	InitialCurrency string    `gorm:"size:64;not null"`
	Summary         string    `gorm:"type:text;not null"`
	CreatedAt       time.Time `gorm:"not null"`

	Trades  []TradeModel         `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	Wealth  []WealthItemModel    `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	Skipped []SkippedSignalModel `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

func (RunModel) TableName() string {
	return "backtest_runs"
}

// TradeModel は backtest_trades テーブルの行です。Seq は実行内での順序です。
type TradeModel struct {
	ID    uint   `gorm:"primaryKey"`
	RunID string `gorm:"size:36;not null;index:trade_run_seq,priority:1"`
	Seq   int    `gorm:"not null;index:trade_run_seq,priority:2"`

	Side              string    `gorm:"size:8;not null"`
	Volume            float64   `gorm:"not null"`
	OpenPrice         float64   `gorm:"not null"`
	OpenDate          time.Time `gorm:"not null"`
	InitialInvestment float64   `gorm:"not null"`
	FeesPct           float64   `gorm:"not null"`
	HigherBarrier     float64   `gorm:"not null"`
	LowerBarrier      float64   `gorm:"not null"`
	CloseDate         time.Time `gorm:"not null"`
	ClosePrice        float64   `gorm:"not null"`
	ExitMode          string    `gorm:"size:16;not null"`
}

func (TradeModel) TableName() string {
	return "backtest_trades"
}

// WealthItemModel は backtest_wealth_items テーブルの行です。
type WealthItemModel struct {
	ID       uint      `gorm:"primaryKey"`
	RunID    string    `gorm:"size:36;not null;index:wealth_run_seq,priority:1"`
	Seq      int       `gorm:"not null;index:wealth_run_seq,priority:2"`
	Date     time.Time `gorm:"not null"`
	Asset    string    `gorm:"size:64;not null"`
	Currency string    `gorm:"size:64;not null"`
}

func (WealthItemModel) TableName() string {
	return "backtest_wealth_items"
}

// SkippedSignalModel は backtest_skipped_signals テーブルの行です。
type SkippedSignalModel struct {
	ID     uint      `gorm:"primaryKey"`
	RunID  string    `gorm:"size:36;not null;index:skipped_run_seq,priority:1"`
	Seq    int       `gorm:"not null;index:skipped_run_seq,priority:2"`
	Date   time.Time `gorm:"not null"`
	Side   string    `gorm:"size:8;not null"`
	Action string    `gorm:"size:8;not null"`
	Reason string    `gorm:"size:32;not null"`
}

func (SkippedSignalModel) TableName() string {
	return "backtest_skipped_signals"
}

// Models は AutoMigrate の対象となるモデル一覧です。
func Models() []any {
	return []any{&RunModel{}, &TradeModel{}, &WealthItemModel{}, &SkippedSignalModel{}}
}
