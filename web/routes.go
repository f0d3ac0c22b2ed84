package web

import (
	"net/http"

	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all companion UI routes.
func setupRoutes(s *rweb.Server, app *App) {
	// Landing — the login page is the front door
	s.Get("/", func(ctx rweb.Context) error {
		return ctx.Redirect(http.StatusFound, "/login")
	})

	// Pages
	s.Get("/signup", app.showSignup)
	s.Get("/login", app.showLogin)
	s.Get("/dashboard", app.showDashboard)

	// Form submissions — each proxies through the client layer
	s.Post("/signup", app.handleSignup)
	s.Post("/login", app.handleLogin)
	s.Post("/dashboard", app.handleEntry)
	s.Post("/quick-mood", app.handleQuickMood)
	s.Post("/book", app.handleBook)

	// JSON endpoints
	s.Get("/api/mood-data", app.moodData)
	s.Get("/check/:invoice", app.checkPayment)

	s.Get("/logout", app.handleLogout)
}
