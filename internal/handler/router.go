package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/linkpass/internal/metrics"
	"github.com/hitoshi/linkpass/internal/middleware"
)

// Pinger はヘルスチェックが必要とするDB接続確認のインターフェース。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	SessionFinder     middleware.SessionFinder
	UserFinder        middleware.UserFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig

	// アクセス
	AccessService AccessServiceInterface
	AccessConfig  AccessHandlerConfig

	// リンク発行
	LinkService LinkServiceInterface

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 監査ログ
	SystemLogLister SystemLogListerInterface

	// 運用
	DB              Pinger
	MetricsGatherer prometheus.Gatherer
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → SecurityHeadersMiddleware → LoggingMiddleware → RecoveryMiddleware
//
// 公開アクセスルート（/access/{token}）はIP単位のレート制限のみを適用し、
// 管理APIルート（/api/*）はSession → RateLimit(General) → AdminOnly → CSRFを適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルート共通のミドルウェア
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewRecoveryMiddleware())

	accessHandler := NewAccessHandler(deps.AccessService, deps.AccessConfig)
	linkHandler := NewLinkHandler(deps.LinkService)
	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	logHandler := NewSystemLogHandler(deps.SystemLogLister)

	// --- 認証不要のルート ---

	// 署名付きURLアクセス（IP単位のレート制限でトークン総当たりを抑止）
	r.With(deps.RateLimiter.AccessAttemptMiddleware()).
		Get("/access/{token}", accessHandler.Access)

	// セッション管理
	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// ヘルスチェック
	r.Get("/health", newHealthHandler(deps.DB))

	// Prometheusメトリクス
	if deps.MetricsGatherer != nil {
		r.Get("/metrics", metrics.Handler(deps.MetricsGatherer).ServeHTTP)
	}

	// --- 管理権限が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General) → AdminOnly → CSRF
	// リンク発行と監査ログ参照はCRM運用スタッフ専用のため、
	// エンドユーザーセッションはAdminOnlyで遮断する。
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder, deps.UserFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())
		r.Use(middleware.NewAdminOnlyMiddleware())
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

		r.Route("/api", func(r chi.Router) {
			// 署名付きURL発行
			r.Post("/access-links", linkHandler.IssueLink)

			// 監査ログ参照
			r.Get("/logs", logHandler.ListLogs)

			// CSRFトークン取得
			r.Get("/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig).ServeHTTP)
		})
	})

	return r
}

// newHealthHandler はDB接続確認付きのヘルスチェックハンドラーを返す。
func newHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy"})
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
