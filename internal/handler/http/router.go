package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/handler/http/middleware"
	"github.com/flulance/flulance-backend-go/internal/pkg/jwt"
	"github.com/flulance/flulance-backend-go/internal/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the transport settings of NewRouter.
type RouterOptions struct {
	Env         string
	Version     string
	CORSOrigins []string
	LogLevel    slog.Level

	Limiter         ratelimit.Limiter
	RateLimit       int
	RateLimitWindow time.Duration

	// UploadsDir is served under /uploads when set.
	UploadsDir string
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Job          JobHandler
	Application  ApplicationHandler
	Brief        BriefHandler
	Match        MatchHandler
	Commission   CommissionHandler
	Dashboard    DashboardHandler
	Notification NotificationHandler
}

func NewRouter(JWTService jwt.Service, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "flulance"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	limiter := opts.Limiter
	if limiter == nil {
		limiter = ratelimit.NewLocalLimiter()
	}

	// authenticated installs token verification, identity resolution and
	// per-caller rate limiting.
	authenticated := func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
		r.Use(middleware.RateLimit(limiter, opts.RateLimit, opts.RateLimitWindow))
	}

	brandOnly := middleware.RequireRole(identity.RoleBrand)
	influencerOnly := middleware.RequireRole(identity.RoleInfluencer)
	brandOrAdmin := middleware.RequireRole(identity.RoleBrand, identity.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/jobs", func(r chi.Router) {
			// Public catalog
			r.Get("/", h.Job.ListPublic)
			r.Get("/{id}", h.Job.Get)

			r.Group(func(r chi.Router) {
				authenticated(r)

				r.With(brandOnly).Post("/", h.Job.Create)
				r.With(brandOnly).Get("/my-jobs", h.Job.ListMine)
				r.With(brandOrAdmin).Put("/{id}", h.Job.Update)
				r.With(brandOrAdmin).Delete("/{id}", h.Job.Delete)
				r.With(brandOnly).Post("/{id}/renew", h.Job.Renew)
				r.With(brandOrAdmin).Get("/{id}/applications", h.Application.ListForJob)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			authenticated(r)

			r.Route("/applications", func(r chi.Router) {
				r.With(influencerOnly).Post("/", h.Application.Apply)
				r.With(influencerOnly).Get("/my-applications", h.Application.ListMine)
				r.With(brandOnly).Post("/{id}/accept", h.Application.Accept)
			})

			r.Route("/briefs", func(r chi.Router) {
				r.Get("/", h.Brief.ListOpen)
				r.With(brandOnly).Post("/", h.Brief.Create)
				r.With(brandOnly).Get("/my-briefs", h.Brief.ListMine)
				r.Get("/{id}", h.Brief.Get)

				r.Route("/{id}/proposals", func(r chi.Router) {
					r.With(influencerOnly).Post("/", h.Brief.SubmitProposal)
					r.With(brandOrAdmin).Get("/", h.Brief.ListProposals)
					r.With(brandOnly).Put("/{pid}/accept", h.Brief.AcceptProposal)
				})
			})

			r.With(influencerOnly).Get("/proposals/my-proposals", h.Brief.ListMyProposals)

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", h.Match.ListMine)
				r.Get("/{id}", h.Match.Get)
				r.Put("/{id}/complete", h.Match.Complete)
				r.Get("/{id}/messages", h.Match.ListMessages)
				r.Post("/{id}/messages", h.Match.SendMessage)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Put("/read", h.Notification.MarkAsRead)
				r.Put("/read-all", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
				r.Get("/preferences", h.Notification.GetPreferences)
				r.Put("/preferences", h.Notification.UpdatePreference)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Get("/stats", h.Dashboard.GetStats)
				r.Get("/jobs", h.Job.AdminList)
				r.Put("/jobs/{id}/approval", h.Job.SetApproval)
				r.Get("/matches", h.Match.AdminList)
				r.Get("/commission", h.Commission.Get)
				r.Put("/commission", h.Commission.Update)
			})
		})
	})
	return r
}
