package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/gatehouse/internal/access"
	"github.com/hitoshi/gatehouse/internal/metrics"
	"github.com/hitoshi/gatehouse/internal/middleware"
	"github.com/hitoshi/gatehouse/internal/model"
)

// HealthChecker はセッション保存先の疎通確認を行うインターフェース。
// repository.PostgresSlotRepoとsession.MemoryKVが実装する。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	Sessions          middleware.StoreOpener
	SlotCookie        middleware.SlotCookieConfig
	CSRF              middleware.CSRFConfig
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// メトリクス。Gathererがnilの場合は/metricsを公開しない
	Metrics         metrics.Recorder
	MetricsGatherer prometheus.Gatherer

	// 認証
	Resolver IdentityResolver

	// ダッシュボード
	Dashboard DashboardService
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RealIP → Recovery → SecurityHeaders → CORS → Metrics
//	  → Session → Logging                  （/auth, /api, ページ）
//	  → CSRF → APIGuard → RateLimit(General) （/api）
//
// /health と /metrics はセッションを開かない。
func NewRouter(deps *RouterDeps) http.Handler {
	rec := deps.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewMetricsMiddleware(rec))

	authHandler := NewAuthHandler(deps.Resolver, deps.SlotCookie, rec)
	pageHandler := NewPageHandler(deps.Dashboard, rec)
	residentHandler := NewResidentHandler(deps.Dashboard, NewValidator(), rec)
	guardHandler := NewGuardHandler(deps.Dashboard, rec)
	adminHandler := NewAdminHandler(deps.Dashboard)

	// --- セッション不要のルート ---
	r.Get("/health", healthHandler(deps.HealthChecker))
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}
	r.NotFound(pageHandler.NotFound)

	// --- セッションスロットを開くルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.Sessions, deps.SlotCookie))
		r.Use(middleware.NewLoggingMiddleware(logger))

		r.Route("/auth", func(r chi.Router) {
			r.With(deps.RateLimiter.LoginMiddleware()).Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.NewCSRFMiddleware(deps.CSRF))
			r.Method(http.MethodGet, "/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRF))

			r.Route("/resident", func(r chi.Router) {
				r.Use(middleware.NewAPIGuard(rec, model.RoleResident))
				r.Use(deps.RateLimiter.GeneralMiddleware())

				r.Get("/visitors", residentHandler.ListVisitors)
				r.Route("/visitors/{id}", func(r chi.Router) {
					r.Post("/approve", residentHandler.ApproveVisitor)
					r.Post("/reject", residentHandler.RejectVisitor)
					r.Post("/pass", residentHandler.IssuePass)
				})
				r.Get("/services", residentHandler.Services)
				r.Get("/facilities", residentHandler.Facilities)
				r.Post("/facilities/bookings", residentHandler.BookFacility)
				r.Get("/marketplace", residentHandler.ListListings)
				r.Post("/marketplace", residentHandler.AddListing)
				r.Get("/feed", residentHandler.ListPosts)
			})

			r.Route("/guard", func(r chi.Router) {
				r.Use(middleware.NewAPIGuard(rec, model.RoleGuard))
				r.Use(deps.RateLimiter.GeneralMiddleware())

				r.Get("/visitors", guardHandler.ListVisitors)
				r.Post("/visitors/{id}/approve", guardHandler.ApproveVisitor)
				r.Post("/visitors/{id}/deny", guardHandler.DenyVisitor)
				r.Get("/parcels", guardHandler.ListParcels)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.NewAPIGuard(rec, model.RoleAdmin))
				r.Use(deps.RateLimiter.GeneralMiddleware())

				r.Get("/overview", adminHandler.Overview)
			})
		})

		// ページ。判定はaccess.Routesの表に従う
		for _, route := range access.Routes {
			r.Method(http.MethodGet, route.Pattern, pageHandler)
		}
	})

	return r
}

// healthHandler はセッション保存先に疎通できれば200を返す。
// GET /health
func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
