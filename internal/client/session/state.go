package session

import "github.com/VinkoRobi2/CameYa-sub001/internal/client/nav"

// State is an immutable snapshot of the store. Session is nil whenever the
// user is not authenticated.
type State struct {
	Loading bool
	Token   string
	Session *Session
}

func (s State) IsAuthenticated() bool { return s.Token != "" && s.Session != nil }

func (s State) IsStudent() bool {
	return s.IsAuthenticated() && s.Session.AccountType == Student
}

func (s State) IsEmployer() bool {
	return s.IsAuthenticated() && s.Session.AccountType == Employer
}

func (s State) HasVerifiedEmail() bool {
	return s.IsAuthenticated() && s.Session.EmailVerified
}

func (s State) HasCompletedProfile() bool {
	return s.IsAuthenticated() && s.Session.ProfileComplete
}

// DashboardFor returns the dashboard of the account type, or home when the
// type is unknown.
func DashboardFor(a AccountType) string {
	switch a {
	case Student:
		return nav.StudentDashboard
	case Employer:
		return nav.EmployerDashboard
	default:
		return nav.Home
	}
}

// OnboardingFor returns the onboarding flow of the account type, or home when
// the type is unknown.
func OnboardingFor(a AccountType) string {
	switch a {
	case Student:
		return nav.StudentOnboarding
	case Employer:
		return nav.EmployerOnboarding
	default:
		return nav.Home
	}
}

// LandingIntent decides where a freshly logged-in user goes: the
// verification notice while the email is unverified, onboarding while the
// profile is incomplete, and the dashboard otherwise.
func LandingIntent(s Session) nav.Intent {
	switch {
	case !s.EmailVerified:
		return nav.RedirectTo(nav.CheckEmail)
	case !s.ProfileComplete:
		return nav.RedirectTo(OnboardingFor(s.AccountType))
	default:
		return nav.RedirectTo(DashboardFor(s.AccountType))
	}
}
