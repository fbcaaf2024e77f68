package http

import (
	"net/http"

	"bookd/internal/auth"
	"bookd/internal/config"
	"bookd/internal/http/handler"
	mw "bookd/internal/http/middleware"
	"bookd/internal/jobs"
	"bookd/internal/reservation"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, resSvc *reservation.Service, jobRepo *jobs.Repo) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	resH := &handler.ReservationHandler{Svc: resSvc}
	remH := &handler.ReminderHandler{DB: db}
	jobH := &handler.JobHandler{Repo: jobRepo}

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", resH.Create)
			r.Get("/", resH.List)
			r.Get("/{id}", resH.Get)
		})

		r.Get("/reminders", remH.List)

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", jobH.Create)
			r.Get("/", jobH.List)
		})
	})

	return r
}
