package pages

import "github.com/rohanthewiz/element"

// SignupPage renders the account-creation form.
type SignupPage struct {
	Title  string
	Banner string // outcome message from the last submission, may be empty
}

// NewSignupPage creates a new signup page.
func NewSignupPage(banner string) SignupPage {
	return SignupPage{
		Title:  "Sign Up - MoodLog",
		Banner: banner,
	}
}

// Render generates the HTML for the signup page.
func (p SignupPage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		renderHead(b, p.Title),
		b.Body().R(
			b.DivClass("auth-container").R(
				b.DivClass("auth-card").R(
					b.DivClass("auth-logo").R(
						b.H1().T("MoodLog"),
					),
					b.H2Class("auth-title").T("Create your account"),

					renderBanner(b, p.Banner),

					b.Form("class", "auth-form", "method", "post", "action", "/signup").R(
						b.DivClass("form-group").R(
							b.LabelClass("form-label", "for", "username").T("Username"),
							b.Input("type", "text", "class", "form-input", "id", "username",
								"name", "username", "required", "required",
								"placeholder", "Choose a username"),
						),
						b.DivClass("form-group").R(
							b.LabelClass("form-label", "for", "email").T("Email"),
							b.Input("type", "email", "class", "form-input", "id", "email",
								"name", "email", "required", "required",
								"placeholder", "you@example.com"),
						),
						b.DivClass("form-group").R(
							b.LabelClass("form-label", "for", "password").T("Password"),
							b.Input("type", "password", "class", "form-input", "id", "password",
								"name", "password", "required", "required",
								"placeholder", "Choose a password"),
						),
						b.Button("type", "submit", "class", "auth-submit").T("Sign Up"),
					),

					b.DivClass("auth-footer").R(
						b.Span().T("Already have an account? "),
						b.A("href", "/login").T("Sign in"),
					),
				),
			),
		),
	)

	return b.String()
}

// LoginPage renders the sign-in form.
type LoginPage struct {
	Title  string
	Banner string
}

// NewLoginPage creates a new login page.
func NewLoginPage(banner string) LoginPage {
	return LoginPage{
		Title:  "Login - MoodLog",
		Banner: banner,
	}
}

// Render generates the HTML for the login page.
func (p LoginPage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		renderHead(b, p.Title),
		b.Body().R(
			b.DivClass("auth-container").R(
				b.DivClass("auth-card").R(
					b.DivClass("auth-logo").R(
						b.H1().T("MoodLog"),
					),
					b.H2Class("auth-title").T("Sign in to your account"),

					renderBanner(b, p.Banner),

					b.Form("class", "auth-form", "method", "post", "action", "/login").R(
						b.DivClass("form-group").R(
							b.LabelClass("form-label", "for", "username").T("Username"),
							b.Input("type", "text", "class", "form-input", "id", "username",
								"name", "username", "required", "required", "autocomplete", "username",
								"placeholder", "Enter your username"),
						),
						b.DivClass("form-group").R(
							b.LabelClass("form-label", "for", "password").T("Password"),
							b.Input("type", "password", "class", "form-input", "id", "password",
								"name", "password", "required", "required", "autocomplete", "current-password",
								"placeholder", "Enter your password"),
						),
						b.Button("type", "submit", "class", "auth-submit").T("Sign In"),
					),

					b.DivClass("auth-footer").R(
						b.Span().T("Don't have an account? "),
						b.A("href", "/signup").T("Create one"),
					),
				),
			),
		),
	)

	return b.String()
}

// renderHead builds the shared document head.
func renderHead(b *element.Builder, title string) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(title),
		b.Link("rel", "stylesheet", "href", "/static/css/app.css"),
	)
}

// renderBanner shows the outcome of the last submission, if any.
func renderBanner(b *element.Builder, banner string) any {
	return b.Wrap(func() {
		if banner != "" {
			b.DivClass("banner").T(banner)
		}
	})
}
