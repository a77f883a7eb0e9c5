// Package gate decides, for every navigation, whether the current session
// may see the requested page or has to be sent somewhere else.
//
// Guards are pure functions of a session.State and the requested URI. They
// never fail: states they cannot make sense of resolve to a redirect home.
package gate

import (
	"slices"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/nav"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/session"
)

type Status int

const (
	// Checking means the session is still being restored; render nothing.
	Checking Status = iota
	Redirect
	OK
)

func (s Status) String() string {
	switch s {
	case Checking:
		return "checking"
	case Redirect:
		return "redirect"
	case OK:
		return "ok"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a guard. Target is set for Redirect. From is
// set when the user is sent to log in, and holds the requested path and
// query so they can be brought back afterwards.
type Decision struct {
	Status Status
	Target string
	From   string
}

// Intent converts the decision for callers that only care where to go.
func (d Decision) Intent() nav.Intent {
	if d.Status == Redirect {
		return nav.Intent{Kind: nav.Redirect, Target: d.Target, From: d.From}
	}
	return nav.Intent{Kind: nav.Stay}
}

func allow() Decision                 { return Decision{Status: OK} }
func redirect(target string) Decision { return Decision{Status: Redirect, Target: target} }

func toLogin(requestURI string) Decision {
	return Decision{Status: Redirect, Target: nav.Login, From: requestURI}
}

// Guard decides a single navigation.
type Guard func(st session.State, requestURI string) Decision

// Evaluate is the onboarding gate. Users with a complete profile are kept
// out of onboarding, and users still onboarding are kept on the flow that
// matches their account type.
func Evaluate(st session.State, requestURI string) Decision {
	if st.Loading {
		return Decision{Status: Checking}
	}
	if !st.IsAuthenticated() {
		return toLogin(requestURI)
	}

	if !nav.IsOnboarding(requestURI) {
		return allow()
	}

	account := st.Session.AccountType
	if st.HasCompletedProfile() {
		return redirect(session.DashboardFor(account))
	}
	if nav.OnboardingTrack(requestURI) != trackOf(account) {
		return redirect(session.OnboardingFor(account))
	}
	return allow()
}

func trackOf(a session.AccountType) nav.Track {
	switch a {
	case session.Student:
		return nav.TrackStudent
	case session.Employer:
		return nav.TrackEmployer
	default:
		return nav.TrackNone
	}
}

// Protect only requires a session. With roles it also requires the account
// type to be one of them, sending everyone else home.
func Protect(st session.State, requestURI string, roles ...session.AccountType) Decision {
	if st.Loading {
		return Decision{Status: Checking}
	}
	if !st.IsAuthenticated() {
		return toLogin(requestURI)
	}
	if len(roles) > 0 && !slices.Contains(roles, st.Session.AccountType) {
		return redirect(nav.Home)
	}
	return allow()
}

// Public lets everyone through once the session is known.
func Public(st session.State, _ string) Decision {
	if st.Loading {
		return Decision{Status: Checking}
	}
	return allow()
}

// Only binds Protect to a fixed set of roles.
func Only(roles ...session.AccountType) Guard {
	return func(st session.State, requestURI string) Decision {
		return Protect(st, requestURI, roles...)
	}
}

// Chain runs guards in order and returns the first decision that is not OK.
func Chain(guards ...Guard) Guard {
	return func(st session.State, requestURI string) Decision {
		for _, g := range guards {
			if d := g(st, requestURI); d.Status != OK {
				return d
			}
		}
		return allow()
	}
}

// LandingIntent is where a user goes right after logging in.
func LandingIntent(s session.Session) nav.Intent { return session.LandingIntent(s) }
