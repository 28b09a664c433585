package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/assistant"
	"github.com/frahmantamala/toolbox/internal/auth"
	"github.com/frahmantamala/toolbox/internal/dashboard"
	"github.com/frahmantamala/toolbox/internal/functionalarea"
	"github.com/frahmantamala/toolbox/internal/metrics"
	"github.com/frahmantamala/toolbox/internal/permission"
	"github.com/frahmantamala/toolbox/internal/reference"
	"github.com/frahmantamala/toolbox/internal/role"
	"github.com/frahmantamala/toolbox/internal/task"
	"github.com/frahmantamala/toolbox/internal/transport/middleware"
	"github.com/frahmantamala/toolbox/internal/transport/swagger"
	"github.com/frahmantamala/toolbox/internal/user"
	"github.com/go-chi/chi"
)

// Screen titles guarding read routes. They must match the screens configuration.
const (
	screenTaskList        = "Task List"
	screenFunctionalAreas = "Functional Areas"
	screenReference       = "Reference"
	screenAIChat          = "AI Chat"
	screenUsers           = "Users"
	screenRoles           = "Roles"
	screenPermissions     = "Permissions"
)

// Handlers groups every HTTP handler the API mounts. Nil handlers leave their
// routes unregistered.
type Handlers struct {
	Auth           *auth.Handler
	Users          *user.Handler
	Roles          *role.Handler
	Permissions    *permission.Handler
	FunctionalArea *functionalarea.Handler
	Reference      *reference.Handler
	Tasks          *task.Handler
	Dashboard      *dashboard.Handler
	Assistant      *assistant.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, rbac *auth.RBACAuthorization, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	if cfg.Observability.Metrics.Enabled {
		router.Use(metrics.Middleware)
		router.Handle(cfg.Observability.Metrics.Path, metrics.Handler())
	}

	// OpenAPI document at the root, outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, swagger.SpecPath)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)
		r.Get("/app/config", appConfigHandler(cfg.App))

		if h.Auth == nil {
			return
		}

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			if h.Users != nil {
				pr.Get("/users/me", h.Users.GetCurrentUser)
				pr.Route("/users", func(ur chi.Router) {
					ur.Use(rbac.RequireRead(screenUsers))
					ur.Get("/", h.Users.List)
					ur.Get("/count", h.Users.Count)
					ur.Get("/{id}", h.Users.Get)
					ur.Group(func(ar chi.Router) {
						ar.Use(rbac.RequireAdmin())
						ar.Post("/", h.Users.Create)
						ar.Put("/{id}", h.Users.Update)
						ar.Delete("/{id}", h.Users.Delete)
					})
				})
			}

			if h.Roles != nil {
				pr.Route("/roles", func(rr chi.Router) {
					rr.Use(rbac.RequireRead(screenRoles))
					rr.Get("/", h.Roles.List)
					rr.Get("/count", h.Roles.Count)
					rr.Get("/{id}", h.Roles.Get)
					rr.Group(func(ar chi.Router) {
						ar.Use(middleware.RequireRoles("ADMIN"))
						ar.Post("/", h.Roles.Create)
						ar.Put("/{id}", h.Roles.Update)
						ar.Delete("/{id}", h.Roles.Delete)
					})
				})
			}

			if h.Permissions != nil {
				pr.Get("/permissions/me", h.Permissions.Mine)
				pr.Group(func(ppr chi.Router) {
					ppr.Use(rbac.RequireRead(screenPermissions))
					ppr.Get("/permissions/roles/{roleID}", h.Permissions.GetByRole)
					ppr.Get("/permissions/count", h.Permissions.Count)
					ppr.With(rbac.RequireAdmin()).Put("/permissions", h.Permissions.Save)
				})
			}

			if h.Dashboard != nil {
				pr.Get("/dashboard/tiles", h.Dashboard.Dashboard)
				pr.Get("/menu", h.Dashboard.Menu)
				pr.Get("/dashboard/tiles/all", h.Dashboard.All)
			}

			// write permission for these screens is enforced by their services
			if h.FunctionalArea != nil {
				pr.Route("/functional-areas", func(fr chi.Router) {
					fr.Use(rbac.RequireRead(screenFunctionalAreas))
					fr.Get("/", h.FunctionalArea.List)
					fr.Get("/count", h.FunctionalArea.Count)
					fr.Get("/{id}", h.FunctionalArea.Get)
					fr.Post("/", h.FunctionalArea.Create)
					fr.Put("/{id}", h.FunctionalArea.Update)
					fr.Delete("/{id}", h.FunctionalArea.Delete)
				})
			}

			if h.Reference != nil {
				pr.Route("/reference", func(rr chi.Router) {
					rr.Use(rbac.RequireRead(screenReference))
					rr.Get("/", h.Reference.List)
					rr.Get("/count", h.Reference.Count)
					rr.Get("/{id}", h.Reference.Get)
					rr.Post("/", h.Reference.Create)
					rr.Put("/{id}", h.Reference.Update)
					rr.Delete("/{id}", h.Reference.Delete)
				})
			}

			if h.Tasks != nil {
				pr.Route("/tasks", func(tr chi.Router) {
					tr.Use(rbac.RequireRead(screenTaskList))
					tr.Get("/", h.Tasks.List)
					tr.Post("/", h.Tasks.Create)
				})
			}

			if h.Assistant != nil {
				pr.Route("/chat", func(cr chi.Router) {
					cr.Use(rbac.RequireRead(screenAIChat))
					cr.Get("/providers", h.Assistant.ListProviders)
					cr.Post("/message", h.Assistant.SendMessage)
					cr.Post("/analyze", h.Assistant.AnalyzeCode)
					cr.Post("/query-db", h.Assistant.QueryDatabase)
					cr.Get("/context/{type}", h.Assistant.GetContext)
					cr.With(rbac.RequireAdmin()).Get("/file", h.Assistant.GetFile)
				})
			}
		})
	})
}
