// Package nav is the client's navigation contract: the route paths the
// session layer and the route gate reason about, and the Intent value that
// tells the caller where to go next.
package nav

import (
	"net/url"
	"strings"
)

const (
	Home               = "/"
	Login              = "/login"
	Register           = "/register"
	CheckEmail         = "/check-email"
	StudentDashboard   = "/student/dashboard"
	StudentJobs        = "/student/jobs"
	EmployerDashboard  = "/employer/dashboard"
	StudentOnboarding  = "/register/worker/post"
	EmployerOnboarding = "/register/employer/post"
)

// Track identifies which onboarding flow a path belongs to.
type Track int

const (
	TrackNone Track = iota
	TrackStudent
	TrackEmployer
)

// IsOnboarding reports whether path is one of the onboarding pages.
func IsOnboarding(path string) bool {
	p := Clean(path)
	return p == StudentOnboarding || p == EmployerOnboarding ||
		strings.HasPrefix(p, StudentOnboarding+"/") || strings.HasPrefix(p, EmployerOnboarding+"/")
}

// OnboardingTrack infers the track from the path alone: "/worker/" marks the
// student flow and "/employer/" the employer flow.
func OnboardingTrack(path string) Track {
	p := Clean(path) + "/"
	switch {
	case strings.Contains(p, "/worker/"):
		return TrackStudent
	case strings.Contains(p, "/employer/"):
		return TrackEmployer
	default:
		return TrackNone
	}
}

// Clean strips the query and fragment and any trailing slash, and makes sure
// the result starts with "/".
func Clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// WithQuery re-attaches a raw query to a path, if there is one.
func WithQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// Kind says whether an Intent keeps the user where they are.
type Kind int

const (
	Stay Kind = iota
	Redirect
)

func (k Kind) String() string {
	if k == Redirect {
		return "redirect"
	}
	return "stay"
}

// Intent is a navigation outcome. From carries the originally requested
// path and query when a guard sends the user to the login page, so they can
// be sent back after authenticating.
type Intent struct {
	Kind   Kind
	Target string
	From   string
}

func RedirectTo(target string) Intent { return Intent{Kind: Redirect, Target: target} }
