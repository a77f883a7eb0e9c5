package gate

import (
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/nav"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/session"
)

// Routes maps clean paths to the guard that protects them. Paths missing
// from the table fall back to Protect.
type Routes map[string]Guard

// DefaultRoutes is the client's page table.
func DefaultRoutes() Routes {
	return Routes{
		nav.Home:       Public,
		nav.Login:      Public,
		nav.Register:   Public,
		nav.CheckEmail: Public,

		nav.StudentOnboarding:  Evaluate,
		nav.EmployerOnboarding: Evaluate,

		nav.StudentDashboard:  Chain(Only(session.Student), Evaluate),
		nav.EmployerDashboard: Chain(Only(session.Employer), Evaluate),
		nav.StudentJobs:       Only(session.Student),
	}
}

// Decide looks up the guard for requestURI and applies it.
func (r Routes) Decide(st session.State, requestURI string) Decision {
	if g, ok := r[nav.Clean(requestURI)]; ok {
		return g(st, requestURI)
	}
	return Protect(st, requestURI)
}

// Known reports whether the table has an entry for requestURI.
func (r Routes) Known(requestURI string) bool {
	_, ok := r[nav.Clean(requestURI)]
	return ok
}
