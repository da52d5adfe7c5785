package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/goalledger-backend/internal/handlers"
	"github.com/AnshRaj112/goalledger-backend/internal/middleware"
)

func SetupRoutes(r chi.Router, h *handlers.Handler) {
	r.Get("/", handlers.Index)
	r.Get("/health", handlers.Health)

	// Account routes
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)

	// Live activity feed authenticates itself (token may come as a query parameter)
	r.Get("/ws/activities", h.ActivityWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.Sessions))
		r.Use(middleware.MutationRateLimit)

		r.Post("/api/auth/logout", h.Logout)
		r.Get("/api/auth/me", h.Me)

		// Goal routes. GET {id} is the owner id, PUT/DELETE {id} the goal id;
		// chi needs one wildcard name per segment.
		r.Post("/api/goals", h.CreateGoal)
		r.Get("/api/goals/{id}", h.ListGoals)
		r.Get("/api/goals/{id}/summary", h.GoalSummary)
		r.Put("/api/goals/{id}", h.UpdateGoal)
		r.Post("/api/goals/{id}/add-money", h.AddMoney)
		r.Delete("/api/goals/{id}", h.DeleteGoal)

		// Activity journal
		r.Get("/api/activities/{id}", h.ListActivities)

		// Database viewer, admins only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(h.Accounts))
			r.Get("/api/database", h.DatabaseDump)
			r.Get("/api/database/stats", h.DatabaseStats)
			r.Post("/api/database/backup", h.CreateBackup)
		})
	})
}
