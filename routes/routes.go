package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/openbracket/tournament-api/handlers"
	"github.com/openbracket/tournament-api/middleware"
	"github.com/openbracket/tournament-api/prometheus"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Tournament  *handlers.TournamentHandler
	Participant *handlers.ParticipantHandler
	Match       *handlers.MatchHandler
	Stats       *handlers.StatsHandler
}

// SetupRoutes wires every handler into a chi router. Routes under
// /api are split into a public group and a group behind the session
// resolver.
func SetupRoutes(h Handlers, sessionResolver *middleware.SessionResolver, corsAllowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(prometheus.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(api chi.Router) {
		// Public routes.
		api.Post("/auth/register", h.Auth.Register)
		api.Post("/auth/login", h.Auth.Login)

		api.Get("/users/{userID}", h.User.GetByID)

		api.Get("/tournaments", h.Tournament.List)
		api.Get("/tournaments/{tournamentID}", h.Tournament.GetByID)
		api.Get("/tournaments/{tournamentID}/participants", h.Participant.ListByTournament)
		api.Get("/tournaments/{tournamentID}/matches", h.Match.ListByTournament)

		api.Get("/matches/{matchID}", h.Match.GetByID)

		api.Get("/stats", h.Stats.Get)

		// Routes requiring a valid bearer token.
		api.Group(func(protected chi.Router) {
			protected.Use(sessionResolver.Authenticate)

			protected.Get("/users/me", h.User.Me)
			protected.Put("/users/me", h.User.UpdateMe)
			protected.Post("/users/me/avatar", h.User.UploadAvatar)

			protected.Post("/tournaments", h.Tournament.Create)
			protected.Put("/tournaments/{tournamentID}", h.Tournament.Update)
			protected.Delete("/tournaments/{tournamentID}", h.Tournament.Delete)

			protected.Post("/tournaments/{tournamentID}/join", h.Participant.Join)
			protected.Delete("/tournaments/{tournamentID}/leave", h.Participant.Leave)
			protected.Patch("/tournaments/{tournamentID}/participants/{participantID}", h.Participant.Update)

			protected.Put("/matches/{matchID}", h.Match.Update)
		})
	})

	return r
}
