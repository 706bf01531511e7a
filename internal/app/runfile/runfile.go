// Package runfile loads backtest runs described in YAML files for the CLI.
package runfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"backtest_backend/internal/feature/backtest/domain/entity"
	"backtest_backend/internal/feature/backtest/usecase"
	candlesusecase "backtest_backend/internal/feature/candles/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRunFile is returned when the file parses but misses required settings.
var ErrInvalidRunFile = errors.New("invalid run file")

// YAMLFile is the on-disk layout of a run file.
type YAMLFile struct {
	Asset struct {
		Coin     string `yaml:"coin" validate:"required,alphanum"`
		Currency string `yaml:"currency" validate:"required,alphanum"`
	} `yaml:"asset"`
	Timeframe string   `yaml:"timeframe"`
	From      string   `yaml:"from" validate:"required"`
	To        string   `yaml:"to" validate:"required"`
	FeesPct   *float64 `yaml:"fees_pct"`

	Risk entity.RiskConfig `yaml:"risk"`

	Portfolio struct {
		Currency string `yaml:"currency"`
		Asset    string `yaml:"asset"`
	} `yaml:"portfolio"`

	// CandlesFile points at a JSON array of 1m candles used instead of the database.
	// A relative path is resolved against the run file's directory.
	CandlesFile string `yaml:"candles_file"`

	Signals []entity.Signal `yaml:"signals" validate:"required,min=1"`
}

// RunFile is a parsed run file.
type RunFile struct {
	Request     usecase.RunRequest
	CandlesFile string
}

// Load reads and parses the run file at path.
func Load(path string) (RunFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RunFile{}, fmt.Errorf("read run file: %w", err)
	}
	rf, err := Parse(raw)
	if err != nil {
		return RunFile{}, err
	}
	if rf.CandlesFile != "" && !filepath.IsAbs(rf.CandlesFile) {
		rf.CandlesFile = filepath.Join(filepath.Dir(path), rf.CandlesFile)
	}
	return rf, nil
}

// Parse decodes a run file and converts it to a RunRequest with defaults applied.
func Parse(raw []byte) (RunFile, error) {
	var yf YAMLFile
	if err := yaml.Unmarshal(raw, &yf); err != nil {
		return RunFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validator.New().Struct(yf); err != nil {
		return RunFile{}, fmt.Errorf("%w: %v", ErrInvalidRunFile, err)
	}

	from, err := parseTime(yf.From)
	if err != nil {
		return RunFile{}, fmt.Errorf("%w: from: %v", ErrInvalidRunFile, err)
	}
	to, err := parseTime(yf.To)
	if err != nil {
		return RunFile{}, fmt.Errorf("%w: to: %v", ErrInvalidRunFile, err)
	}
	currency, err := parseAmount(yf.Portfolio.Currency)
	if err != nil {
		return RunFile{}, fmt.Errorf("%w: portfolio.currency: %v", ErrInvalidRunFile, err)
	}
	asset, err := parseAmount(yf.Portfolio.Asset)
	if err != nil {
		return RunFile{}, fmt.Errorf("%w: portfolio.asset: %v", ErrInvalidRunFile, err)
	}

	req := usecase.RunRequest{
		Coin:            strings.ToUpper(yf.Asset.Coin),
		Currency:        strings.ToUpper(yf.Asset.Currency),
		Timeframe:       yf.Timeframe,
		From:            from,
		To:              to,
		FeesPct:         usecase.DefaultFeesPct,
		Risk:            yf.Risk,
		InitialCurrency: currency,
		InitialAsset:    asset,
		Signals:         yf.Signals,
	}
	if req.Timeframe == "" {
		req.Timeframe = candlesusecase.DefaultTimeframe
	}
	if yf.FeesPct != nil {
		req.FeesPct = *yf.FeesPct
	}
	return RunFile{Request: req, CandlesFile: yf.CandlesFile}, nil
}

// parseTime accepts RFC 3339 or a bare date, both read as UTC.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
