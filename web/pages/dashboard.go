package pages

import (
	"moodlog/chart"

	"github.com/rohanthewiz/element"
)

// quickMoods are the one-tap mood labels the service's quick-mood
// endpoint accepts.
var quickMoods = []string{"joy", "calmness", "neutral", "sadness", "anger"}

// DashboardPage renders the journal dashboard: entry form, quick-mood
// row, the mood-over-time chart, and the booking form.
type DashboardPage struct {
	Title  string
	Banner string
	Chart  chart.LineChart
	Stale  bool // true when showing cached history because the service was unreachable
}

// NewDashboardPage creates a new dashboard page.
func NewDashboardPage(banner string, lineChart chart.LineChart, stale bool) DashboardPage {
	return DashboardPage{
		Title:  "Dashboard - MoodLog",
		Banner: banner,
		Chart:  lineChart,
		Stale:  stale,
	}
}

// Render generates the HTML for the dashboard page.
func (p DashboardPage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		b.Head().R(
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Title().T(p.Title),
			b.Link("rel", "stylesheet", "href", "/static/css/app.css"),
			// Canvas renderer for the mood chart
			b.Script("src", "https://cdn.jsdelivr.net/npm/chart.js@4").R(),
		),
		b.Body().R(
			b.Header("class", "dash-header").R(
				b.H1().T("MoodLog"),
				b.Nav().R(
					b.A("href", "/logout", "class", "logout-link").T("Log out"),
				),
			),

			b.Main("class", "dash-main").R(
				renderBanner(b, p.Banner),

				// New entry
				b.DivClass("dash-section").R(
					b.H2Class("dash-title").T("How are you feeling today?"),
					b.Form("class", "entry-form", "method", "post", "action", "/dashboard").R(
						b.TextArea("class", "entry-input", "id", "content", "name", "content",
							"rows", "4", "required", "required",
							"placeholder", "Write about your day...").R(),
						b.Button("type", "submit", "class", "entry-submit").T("Save Entry"),
					),
				),

				// Quick mood
				b.DivClass("dash-section").R(
					b.H2Class("dash-title").T("Quick mood"),
					b.Form("class", "quick-mood-form", "method", "post", "action", "/quick-mood").R(
						b.Wrap(func() {
							for _, mood := range quickMoods {
								b.Button("type", "submit", "class", "quick-mood-btn",
									"name", "mood", "value", mood).T(mood)
							}
						}),
					),
				),

				// Mood chart
				b.DivClass("dash-section").R(
					b.H2Class("dash-title").T("Mood Over Time"),
					b.Wrap(func() {
						if p.Stale {
							b.DivClass("stale-note").T("Showing cached history — the journal service is unreachable.")
						}
					}),
					chart.Mount(b, p.Chart),
				),

				// Therapy booking
				b.DivClass("dash-section").R(
					b.H2Class("dash-title").T("Book a therapy session"),
					b.Form("class", "book-form", "method", "post", "action", "/book").R(
						b.Input("type", "tel", "class", "form-input", "name", "phone",
							"required", "required", "placeholder", "+254712345678"),
						b.Button("type", "submit", "class", "book-submit").T("Book"),
					),
				),
			),
		),
	)

	return b.String()
}
