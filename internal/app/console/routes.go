package console

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	auditlist "github.com/infom4th/club-console/internal/http/handlers/audit/list"
	"github.com/infom4th/club-console/internal/http/handlers/auth/login"
	"github.com/infom4th/club-console/internal/http/handlers/auth/register"
	"github.com/infom4th/club-console/internal/http/handlers/content/archive"
	contentcreate "github.com/infom4th/club-console/internal/http/handlers/content/create"
	contentlist "github.com/infom4th/club-console/internal/http/handlers/content/list"
	"github.com/infom4th/club-console/internal/http/handlers/content/restore"
	contentupdate "github.com/infom4th/club-console/internal/http/handlers/content/update"
	dashboardhandler "github.com/infom4th/club-console/internal/http/handlers/dashboard"
	"github.com/infom4th/club-console/internal/http/handlers/join/submit"
	"github.com/infom4th/club-console/internal/http/handlers/profile/settings"
	publiclist "github.com/infom4th/club-console/internal/http/handlers/public/list"
	publicnews "github.com/infom4th/club-console/internal/http/handlers/public/news"
	"github.com/infom4th/club-console/internal/http/handlers/requests/decide"
	requestslist "github.com/infom4th/club-console/internal/http/handlers/requests/list"
	searchhandler "github.com/infom4th/club-console/internal/http/handlers/search"
	"github.com/infom4th/club-console/internal/http/handlers/users/changerole"
	userslist "github.com/infom4th/club-console/internal/http/handlers/users/list"
	"github.com/infom4th/club-console/internal/http/middlewarectx"
	"github.com/infom4th/club-console/internal/obs"
	auditservice "github.com/infom4th/club-console/internal/services/audit"
	authservice "github.com/infom4th/club-console/internal/services/auth"
	contentservice "github.com/infom4th/club-console/internal/services/content"
	dashboardservice "github.com/infom4th/club-console/internal/services/dashboard"
	joinrequestservice "github.com/infom4th/club-console/internal/services/joinrequest"
	profileservice "github.com/infom4th/club-console/internal/services/profile"
	searchservice "github.com/infom4th/club-console/internal/services/search"
)

// Services collects everything the router needs.
type Services struct {
	Auth           *authservice.Service
	Profiles       *profileservice.Service
	Content        *contentservice.Service
	Search         *searchservice.Service
	SearchDebounce time.Duration
	Dashboard      *dashboardservice.Service
	Join           *joinrequestservice.Service
	Audit          *auditservice.Service
	Roles          middlewarectx.RoleReader
}

// RegisterRoutes registers every route of the console.
func RegisterRoutes(r chi.Router, logger *slog.Logger, services *Services) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		obs.Instrument,
	)

	joinLimiter := rate.NewLimiter(1, 3)

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints.
		r.Post("/auth/register", register.New(logger, services.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, services.Auth).ServeHTTP)
		r.Get("/content/{kind}", publiclist.New(logger, services.Content).ServeHTTP)
		r.Get("/news/{slug}", publicnews.New(logger, services.Content).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(joinLimiter, logger))
			r.Post("/join", submit.New(logger, services.Join).ServeHTTP)
		})

		// Authenticated member endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(services.Auth, logger))

			profileHandler := settings.New(logger, services.Profiles)
			r.Get("/profile", profileHandler.Get)
			r.Put("/profile", profileHandler.Update)

			// Admin console. Every route re-checks the role against
			// the store; the gate fails closed.
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(services.Roles, logger))

				r.Get("/dashboard", dashboardhandler.New(logger, services.Dashboard).ServeHTTP)
				r.Get("/search", searchhandler.New(logger, services.Search, services.SearchDebounce).ServeHTTP)
				r.Get("/audit", auditlist.New(logger, services.Audit).ServeHTTP)

				r.Get("/users", userslist.New(logger, services.Profiles).ServeHTTP)
				r.Put("/users/{id}/role", changerole.New(logger, services.Profiles).ServeHTTP)

				r.Get("/requests", requestslist.New(logger, services.Join).ServeHTTP)
				r.Put("/requests/{id}", decide.New(logger, services.Join).ServeHTTP)

				r.Get("/content", contentlist.New(logger, services.Content).ServeHTTP)
				r.Post("/content/{kind}", contentcreate.New(logger, services.Content).ServeHTTP)
				r.Put("/content/{kind}/{id}", contentupdate.New(logger, services.Content).ServeHTTP)
				r.Post("/content/{kind}/{id}/archive", archive.New(logger, services.Content).ServeHTTP)
				r.Post("/content/{kind}/{id}/restore", restore.New(logger, services.Content).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
