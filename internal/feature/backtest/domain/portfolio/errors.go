package portfolio

import "errors"

var (
	ErrInsufficientCapital  = errors.New("insufficient capital")
	ErrInsufficientAsset    = errors.New("insufficient asset volume")
	ErrEntryBeforeOpenEntry = errors.New("cannot enter the market before an existing open entry")
	ErrBeforeStart          = errors.New("date is before the portfolio start")
	ErrNegativeBalance      = errors.New("negative balance")
)
