package cli

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/client"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/gate"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/nav"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/session"
)

// Go opens path. The gate decides where the user actually ends up.
func (a *App) Go(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	a.navigate(path)
	return nil
}

// Jobs opens the job feed at page and lists it when the gate allows.
func (a *App) Jobs(ctx context.Context, page string) error {
	n := 1
	if page != "" {
		v, err := strconv.Atoi(page)
		if err != nil || v < 1 {
			a.printf("Usage: jobs [page]\n")
			return errors.New("invalid page")
		}
		n = v
	}

	ev := a.navigate(nav.WithQuery(nav.StudentJobs, url.Values{"page": {strconv.Itoa(n)}}))
	a.settle()
	if nav.Clean(ev.Path) != nav.StudentJobs || ev.Decision.Status != gate.OK {
		return nil
	}

	res, err := a.jobService.Feed(ctx, n, a.pageSize())
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.printf("Your session has expired, please log in again.\n")
		} else {
			a.printf("Could not load jobs: %s\n", explain(err))
		}
		return err
	}
	a.printJobs(res)
	return nil
}

func (a *App) pageSize() int {
	if a.config != nil && a.config.PageSize > 0 {
		return a.config.PageSize
	}
	return 0
}

func (a *App) printJobs(res client.JobsPage) {
	if len(res.Jobs) == 0 {
		a.printf("No open jobs right now.\n")
		return
	}
	for _, j := range res.Jobs {
		a.printf("#%d %s", j.ID, j.Title)
		if j.City != "" {
			a.printf(" | %s", j.City)
		}
		if j.Modality != "" {
			a.printf(" | %s", j.Modality)
		}
		if j.Salary != "" {
			a.printf(" | $%s", j.Salary)
			if j.Negotiable {
				a.printf(" (negotiable)")
			}
		}
		a.printf("\n")
		if name := strings.TrimSpace(j.EmployerName + " " + j.EmployerSurname); name != "" {
			a.printf("    by %s", name)
			if j.EmployerRating != "" {
				a.printf(" (%s★)", j.EmployerRating)
			}
			a.printf("\n")
		}
	}
	a.printf("Page %d of %d, %d jobs.", res.Page, res.TotalPages, res.TotalJobs)
	if res.Page < res.TotalPages {
		a.printf(" Next: jobs %d", res.Page+1)
	}
	a.printf("\n")
}

// render draws the page for ev.
func (a *App) render(ev gate.Event) {
	if ev.Decision.Status == gate.Checking {
		a.printf("Loading...\n")
		return
	}

	st := a.store.Snapshot()
	path := nav.Clean(ev.Path)

	a.printf("== %s ==\n", path)
	switch {
	case path == nav.Home:
		a.printf("CameYa: flash jobs for students.\n")
		if st.IsAuthenticated() {
			a.printf("Go to your dashboard with 'go %s'.\n", session.LandingIntent(*st.Session).Target)
		} else {
			a.printf("Type 'login' or 'register' to start.\n")
		}

	case path == nav.Login:
		a.printf("Type 'login' to sign in.\n")
		if ev.From != "" {
			a.printf("You will be taken back to %s afterwards.\n", ev.From)
		}

	case path == nav.Register:
		a.printf("Create a student or employer account.\n")

	case path == nav.CheckEmail:
		email := queryParam(ev.Path, "email")
		if email == "" && st.IsAuthenticated() {
			email = st.Session.Email
		}
		if email != "" {
			a.printf("We sent a verification link to %s.\n", email)
		}
		a.printf("Use 'verify <token>' with the token from the email, or 'resend' to get a new one.\n")

	case nav.IsOnboarding(path):
		a.printf("Your profile is not complete yet. Type 'complete' to fill it in.\n")

	case path == nav.StudentDashboard || path == nav.EmployerDashboard:
		if st.IsAuthenticated() {
			a.printf("Hello, %s!\n", st.Session.FullName())
		}
		if path == nav.StudentDashboard {
			a.printf("Browse open jobs with 'jobs'.\n")
		} else {
			a.printf("Type 'whoami' to review your profile.\n")
		}

	case path == nav.StudentJobs:
		a.printf("Open jobs.\n")

	default:
		a.printf("Page not found.\n")
	}
}

func queryParam(uri, key string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return u.Query().Get(key)
}
