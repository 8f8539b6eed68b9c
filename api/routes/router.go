package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nahidhasan/messmate-backend/api/controllers"
	"github.com/nahidhasan/messmate-backend/api/middleware"
	"github.com/nahidhasan/messmate-backend/internal/auth"
	"github.com/nahidhasan/messmate-backend/internal/handoff"
	"github.com/nahidhasan/messmate-backend/internal/houses"
	"github.com/nahidhasan/messmate-backend/internal/ledger"
	"github.com/nahidhasan/messmate-backend/internal/notifications"
	"github.com/nahidhasan/messmate-backend/pkg/auth/session"
	"github.com/nahidhasan/messmate-backend/pkg/config"
	"github.com/nahidhasan/messmate-backend/pkg/logger"
	"github.com/nahidhasan/messmate-backend/pkg/metrics"
	"github.com/nahidhasan/messmate-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DBPinger    controllers.HealthPinger
	RedisClient *redis.Client

	SessionVerifier session.AccessSessionChecker

	AuthService         auth.Service
	RegisterService     auth.RegisterService
	HouseService        houses.Service
	LedgerService       ledger.Service
	NotificationService notifications.Service
	HandoffService      handoff.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	readyDeps := map[string]controllers.HealthPinger{
		"postgres": deps.DBPinger,
	}
	if deps.RedisClient != nil {
		readyDeps["redis"] = deps.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RedisClient, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionVerifier, logg))
			r.Get("/me", controllers.AuthMe(deps.AuthService, logg))
			r.Put("/me/nickname", controllers.AuthUpdateNickname(deps.AuthService, logg))
			r.Put("/me/password", controllers.AuthChangePassword(deps.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionVerifier, logg))

		r.Route("/house/members", func(r chi.Router) {
			r.Get("/", controllers.HouseListMembers(deps.HouseService, logg))
			r.With(middleware.RequireManager(logg)).Post("/", controllers.HouseAddMember(deps.HouseService, logg))
			r.With(middleware.RequireManager(logg)).Delete("/{memberId}", controllers.HouseRemoveMember(deps.HouseService, logg))
		})

		r.Route("/meals", func(r chi.Router) {
			r.Get("/", controllers.MealsList(deps.LedgerService, logg))
			r.Post("/", controllers.MealsAdd(deps.LedgerService, logg))
			r.Delete("/{entryId}", controllers.MealsDelete(deps.LedgerService, logg))
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", controllers.ExpensesList(deps.LedgerService, logg))
			r.Post("/", controllers.ExpensesAdd(deps.LedgerService, logg))
			r.Delete("/{entryId}", controllers.ExpensesDelete(deps.LedgerService, logg))
		})

		r.Get("/stats", controllers.Stats(deps.LedgerService, logg))

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.NotificationsList(deps.NotificationService, logg))
			r.Get("/unread-count", controllers.NotificationsUnreadCount(deps.NotificationService, logg))
			r.Post("/{id}/read", controllers.NotificationsMarkRead(deps.NotificationService, logg))
			r.Post("/read-all", controllers.NotificationsMarkAllRead(deps.NotificationService, logg))
		})

		r.Route("/manager-switch", func(r chi.Router) {
			r.With(middleware.RequireManager(logg)).Post("/request", controllers.ManagerSwitchRequest(deps.HandoffService, logg))
			r.Post("/respond", controllers.ManagerSwitchRespond(deps.HandoffService, logg))
		})
	})

	return r
}
