package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/gitodo/internal/metrics"
	"github.com/hitoshi/gitodo/internal/middleware"
)

// Pinger はヘルスチェックに必要なデータベース接続のインターフェース。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	UserFinder        middleware.UserFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// メトリクス
	MetricsCollector *metrics.Collector
	MetricsGatherer  prometheus.Gatherer

	// ヘルスチェック
	DB Pinger

	// サービス
	AuthService  AuthServiceInterface
	AuthConfig   AuthHandlerConfig
	TodoService  TodoServiceInterface
	RepoService  RepoServiceInterface
	LabelService LabelServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → CORS → Metrics →（保護ルートのみ）Auth → RateLimit
//
// /health、/metrics、OAuthフロー（/api/auth/github*）は認証の外に置く。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.MetricsCollector != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsCollector))
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	todoHandler := NewTodoHandler(deps.TodoService)
	repoHandler := NewRepoHandler(deps.RepoService)
	labelHandler := NewLabelHandler(deps.LabelService)

	// --- 認証不要のルート ---

	r.Get("/health", newHealthHandler(deps.DB))

	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/github", authHandler.Login)
		r.Get("/github/callback", authHandler.Callback)
	})

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier, deps.UserFinder))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Get("/api/auth/me", authHandler.Me)

		// Todo管理
		r.Route("/api/todos", func(r chi.Router) {
			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", todoHandler.Get)
				r.Put("/", todoHandler.Update)
				r.Delete("/", todoHandler.Delete)
			})
		})

		// リポジトリ管理
		r.Route("/api/repositories", func(r chi.Router) {
			r.Get("/", repoHandler.List)
			r.Post("/", repoHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", repoHandler.Get)
				r.Put("/", repoHandler.Update)
				r.Delete("/", repoHandler.Delete)

				// ラベル関連付け
				r.Get("/labels", repoHandler.ListLabels)
				r.Post("/labels", repoHandler.AddLabel)
				r.Delete("/labels/{labelID}", repoHandler.RemoveLabel)
			})
		})

		// ラベル管理
		r.Route("/api/labels", func(r chi.Router) {
			r.Get("/", labelHandler.List)
			r.Post("/", labelHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", labelHandler.Get)
				r.Put("/", labelHandler.Update)
				r.Delete("/", labelHandler.Delete)

				// GET /api/labels/{id}/repositories - ラベル別リポジトリ一覧
				r.Get("/repositories", repoHandler.ListByLabel)
			})
		})
	})

	return r
}

// newHealthHandler はデータベース接続を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
