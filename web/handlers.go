package web

import (
	"context"
	"net/http"
	"net/url"

	"moodlog/chart"
	"moodlog/client"
	"moodlog/web/pages"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// The companion UI is the presenting layer for client Outcomes: a
// Navigate becomes a redirect, a Reload becomes a redirect back to the
// dashboard, and a Message becomes a banner on the rendered page.

// showSignup renders the signup page, with the outcome of a previous
// submission as the banner when present.
func (a *App) showSignup(ctx rweb.Context) error {
	return writePage(ctx, pages.NewSignupPage(ctx.Request().QueryParam("msg")).Render())
}

// showLogin renders the login page.
func (a *App) showLogin(ctx rweb.Context) error {
	return writePage(ctx, pages.NewLoginPage(ctx.Request().QueryParam("msg")).Render())
}

// handleSignup submits the signup form through the client layer.
func (a *App) handleSignup(ctx rweb.Context) error {
	form := client.NewSignupForm(a.client,
		client.StaticField(ctx.Request().FormValue("username")),
		client.StaticField(ctx.Request().FormValue("email")),
		client.StaticField(ctx.Request().FormValue("password")),
	)

	outcome := form.Submit(context.Background())
	if outcome.Navigate != "" {
		return redirectWithMessage(ctx, outcome.Navigate, outcome.Message)
	}
	return writePage(ctx, pages.NewSignupPage(outcome.Message).Render())
}

// handleLogin submits the login form through the client layer.
func (a *App) handleLogin(ctx rweb.Context) error {
	form := client.NewLoginForm(a.client,
		client.StaticField(ctx.Request().FormValue("username")),
		client.StaticField(ctx.Request().FormValue("password")),
	)

	outcome := form.Submit(context.Background())
	if outcome.Navigate != "" {
		return redirectWithMessage(ctx, outcome.Navigate, outcome.Message)
	}
	return writePage(ctx, pages.NewLoginPage(outcome.Message).Render())
}

// showDashboard renders the dashboard: entry form, quick moods, the
// mood chart, and the booking form.
func (a *App) showDashboard(ctx rweb.Context) error {
	return a.renderDashboard(ctx, ctx.Request().QueryParam("msg"))
}

// handleEntry submits a journal entry through the client layer.
func (a *App) handleEntry(ctx rweb.Context) error {
	form := client.NewEntryForm(a.client,
		client.StaticField(ctx.Request().FormValue("content")),
	)

	outcome := form.Submit(context.Background())
	if outcome.Reload {
		return redirectWithMessage(ctx, "/dashboard", outcome.Message)
	}
	return a.renderDashboard(ctx, outcome.Message)
}

// handleQuickMood records a one-tap mood.
func (a *App) handleQuickMood(ctx rweb.Context) error {
	if err := a.client.QuickMood(context.Background(), ctx.Request().FormValue("mood")); err != nil {
		logger.LogErr(err, "quick mood failed")
		return a.renderDashboard(ctx, "Could not record mood. Please try again.")
	}
	return redirectWithMessage(ctx, "/dashboard", "Mood recorded!")
}

// handleBook initiates a therapy-session booking.
func (a *App) handleBook(ctx rweb.Context) error {
	receipt, err := a.client.Book(context.Background(), ctx.Request().FormValue("phone"))
	if err != nil {
		logger.LogErr(err, "booking failed")
		return a.renderDashboard(ctx, "Booking failed. Please try again.")
	}
	return redirectWithMessage(ctx, "/dashboard", receipt.Message)
}

// checkPayment proxies a payment-status lookup.
func (a *App) checkPayment(ctx rweb.Context) error {
	status, err := a.client.CheckPayment(context.Background(), ctx.Request().Param("invoice"))
	if err != nil {
		logger.LogErr(err, "payment status lookup failed")
		ctx.SetStatus(http.StatusBadGateway)
		return ctx.WriteJSON(map[string]any{"error": "payment status unavailable"})
	}
	return ctx.WriteJSON(status)
}

// moodData serves the history the dashboard chart is built from, for
// clients that want the raw series.
func (a *App) moodData(ctx rweb.Context) error {
	records, stale := a.loadHistory()
	return ctx.WriteJSON(map[string]any{
		"records": records,
		"stale":   stale,
	})
}

// handleLogout ends the service session and returns to the login page.
func (a *App) handleLogout(ctx rweb.Context) error {
	if err := a.client.Logout(context.Background()); err != nil {
		logger.LogErr(err, "logout failed")
	}
	return ctx.Redirect(http.StatusFound, "/login")
}

// renderDashboard fetches history, refreshes the cache, and renders
// the dashboard with the given banner.
func (a *App) renderDashboard(ctx rweb.Context, banner string) error {
	records, stale := a.loadHistory()
	lineChart := chart.MoodLine(chart.BuildSeries(records))
	return writePage(ctx, pages.NewDashboardPage(banner, lineChart, stale).Render())
}

// loadHistory returns live history from the service when reachable,
// refreshing the local cache; otherwise it falls back to the cache and
// reports the data as stale.
func (a *App) loadHistory() (records []client.MoodRecord, stale bool) {
	records, err := a.client.MoodHistory(context.Background())
	if err == nil {
		if cacheErr := a.store.ReplaceHistory(records); cacheErr != nil {
			logger.LogErr(cacheErr, "failed to refresh history cache")
		}
		return records, false
	}

	logger.LogErr(err, "mood history fetch failed, falling back to cache")
	cached, cacheErr := a.store.History()
	if cacheErr != nil {
		logger.LogErr(cacheErr, "history cache read failed")
		return nil, true
	}
	return cached, true
}

// writePage sends a rendered HTML page.
func writePage(ctx rweb.Context, html string) error {
	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(html)
}

// redirectWithMessage redirects to path, carrying the outcome message
// as a query parameter for the destination page's banner.
func redirectWithMessage(ctx rweb.Context, path, message string) error {
	if message != "" {
		path += "?msg=" + url.QueryEscape(message)
	}
	return ctx.Redirect(http.StatusFound, path)
}
