package usecase

import "errors"

// ErrInvalidRequest はバックテスト実行リクエストが不正な場合に返されます。
var ErrInvalidRequest = errors.New("invalid backtest request")
