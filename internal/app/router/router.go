// Package router はHTTPルーティングを組み立てます。
package router

import (
	assethandler "backtest_backend/internal/feature/assetlist/transport/handler"
	backtesthandler "backtest_backend/internal/feature/backtest/transport/handler"
	candleshandler "backtest_backend/internal/feature/candles/transport/handler"
	"backtest_backend/internal/platform/http/handler"
	jwtmw "backtest_backend/internal/platform/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers は各フィーチャーのハンドラーをまとめたものです。
type Handlers struct {
	Assets    *assethandler.AssetHandler
	Candles   *candleshandler.CandlesHandler
	Backtests *backtesthandler.BacktestHandler
	// DB は /readyz の疎通確認に使います。nil の場合 /readyz は登録しません。
	DB handler.Pinger
}

// Options はルーター全体の設定です。
type Options struct {
	JWTSecret string
	// AllowAllOrigins が true の場合、全オリジンからのCORSを許可します。
	AllowAllOrigins bool
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if opts.AllowAllOrigins {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:    []string{"Authorization", "Content-Type"},
		}))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	if h.DB != nil {
		r.GET("/readyz", handler.Ready(h.DB))
	}
	r.GET("/assets", h.Assets.List)
	r.GET("/candles/:symbol", h.Candles.GetCandlesHandler)

	// バックテストの実行と結果取得は JWT 必須
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		auth.POST("/backtests", h.Backtests.Create)
		auth.GET("/backtests/:id", h.Backtests.Get)
	}

	return r
}
