package client

import (
	"context"
	"encoding/json"
	"io"
	"net/url"

	"github.com/rohanthewiz/logger"
)

// ============================================================================
// Form Submission
//
// Each form is an independently constructible component: it is handed its
// field sources and client at construction time, reads the current field
// values when Submit is called, performs a single round trip, and reports
// a structured Outcome. The presenting layer (web page, CLI, test) decides
// what a message or a navigation target looks like on screen.
//
// Submit never returns a Go error — every failure class is recovered
// locally into an Outcome so a submission attempt always yields exactly
// one user-visible effect description. Transport failures and malformed
// response bodies are logged and collapse into a generic fallback message;
// application errors surface the service's own error text.
//
// There is intentionally no submit-in-progress guard: a second Submit
// while one is in flight issues a second concurrent request, matching the
// service's page behavior. Callers that want disable-on-submit disable
// their own control.
// ============================================================================

// FieldSource supplies the current value of a form field at submission
// time. Forms read their sources on every Submit, so a source backed by
// a live input always submits the latest value.
type FieldSource func() string

// StaticField wraps a fixed value as a FieldSource.
func StaticField(value string) FieldSource {
	return func() string { return value }
}

// Outcome is the structured result of one submission attempt.
// Message is dialog-worthy text (may be empty), Navigate is a target
// path for the presenting layer (empty for none), and Reload asks the
// presenting layer to re-render its current view.
type Outcome struct {
	OK       bool
	Message  string
	Navigate string
	Reload   bool
}

// fallbackMessage is shown for any transport-level failure: unreachable
// host, timeout, or a response body that is not the JSON the service
// promises. The cause is logged, never shown to the user.
const fallbackMessage = "Something went wrong. Please try again."

// Handler-specific defaults when the service returns a failure status
// with no error field.
const (
	signupDefaultError = "Unknown error"
	loginDefaultError  = "Login failed"
	entryDefaultError  = "Failed to save entry"
)

// SignupRequest is the JSON body for the signup endpoint.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupForm submits new-account registrations.
type SignupForm struct {
	client   *Client
	username FieldSource
	email    FieldSource
	password FieldSource
}

// NewSignupForm builds a signup form bound to its three field sources.
// Nil sources are a programming error and will panic on Submit, the
// same way the original page fails fast on a missing input element.
func NewSignupForm(c *Client, username, email, password FieldSource) *SignupForm {
	return &SignupForm{client: c, username: username, email: email, password: password}
}

// Submit posts the signup request. On success the user is told to log
// in and pointed at the login page; on an application error the
// service's message is surfaced verbatim.
func (f *SignupForm) Submit(ctx context.Context) Outcome {
	payload := SignupRequest{
		Username: f.username(),
		Email:    f.email(),
		Password: f.password(),
	}

	resp, err := f.client.submit(ctx, SignupPath, payload)
	if err != nil {
		logger.LogErr(err, "signup request failed")
		return Outcome{Message: fallbackMessage}
	}
	defer resp.Body.Close()

	// The body is parsed regardless of status — a success body may carry
	// a message and a failure body carries the error field.
	errMsg, err := errorField(resp.Body)
	if err != nil {
		logger.LogErr(err, "signup response unreadable", "status", resp.StatusCode)
		return Outcome{Message: fallbackMessage}
	}

	if isSuccess(resp.StatusCode) {
		return Outcome{OK: true, Message: "Account created! Please log in.", Navigate: "/login"}
	}
	if errMsg == "" {
		errMsg = signupDefaultError
	}
	return Outcome{Message: errMsg}
}

// LoginForm submits login attempts.
type LoginForm struct {
	client   *Client
	username FieldSource
	password FieldSource
}

// NewLoginForm builds a login form bound to its two field sources.
func NewLoginForm(c *Client, username, password FieldSource) *LoginForm {
	return &LoginForm{client: c, username: username, password: password}
}

// Submit posts the login request. Success navigates straight to the
// dashboard with no confirmation message. When the service returns a
// bearer token alongside the session cookie, it is cached on the client.
func (f *LoginForm) Submit(ctx context.Context) Outcome {
	payload := LoginRequest{
		Username: f.username(),
		Password: f.password(),
	}

	resp, err := f.client.submit(ctx, LoginPath, payload)
	if err != nil {
		logger.LogErr(err, "login request failed")
		return Outcome{Message: fallbackMessage}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.LogErr(err, "login response unreadable", "status", resp.StatusCode)
		return Outcome{Message: fallbackMessage}
	}

	var decoded struct {
		Error string `json:"error"`
		Token string `json:"token"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &decoded); err != nil {
			logger.LogErr(err, "login response is not JSON", "status", resp.StatusCode)
			return Outcome{Message: fallbackMessage}
		}
	}

	if isSuccess(resp.StatusCode) {
		if decoded.Token != "" {
			f.client.SetAuthToken(decoded.Token)
		}
		return Outcome{OK: true, Navigate: "/dashboard"}
	}
	if decoded.Error == "" {
		decoded.Error = loginDefaultError
	}
	return Outcome{Message: decoded.Error}
}

// EntryForm submits journal entries. Unlike the auth forms this posts
// form-urlencoded data to the dashboard page's own path — the service
// saves the entry and re-renders the dashboard, so the presenting layer
// reloads on success.
type EntryForm struct {
	client  *Client
	content FieldSource
}

// NewEntryForm builds an entry form bound to its content source.
func NewEntryForm(c *Client, content FieldSource) *EntryForm {
	return &EntryForm{client: c, content: content}
}

// Submit posts the entry. A failure body that is not JSON is treated
// the same as a transport failure: logged, generic fallback.
func (f *EntryForm) Submit(ctx context.Context) Outcome {
	values := url.Values{}
	values.Set("content", f.content())

	resp, err := f.client.submit(ctx, DashboardPath, values)
	if err != nil {
		logger.LogErr(err, "entry save request failed")
		return Outcome{Message: fallbackMessage}
	}
	defer resp.Body.Close()

	if isSuccess(resp.StatusCode) {
		// Success body is the re-rendered dashboard page — ignored here.
		return Outcome{OK: true, Message: "Entry saved!", Reload: true}
	}

	errMsg, err := errorField(resp.Body)
	if err != nil {
		logger.LogErr(err, "entry save error response unreadable", "status", resp.StatusCode)
		return Outcome{Message: fallbackMessage}
	}
	if errMsg == "" {
		errMsg = entryDefaultError
	}
	return Outcome{Message: errMsg}
}

// isSuccess reports whether the status code is in the 2xx range.
func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
