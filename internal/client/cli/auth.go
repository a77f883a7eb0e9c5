package cli

import (
	"context"
	"errors"
	"net/url"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/client"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/nav"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/services"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/session"
)

// The get* variables are indirections over the interactive input helpers.
// Tests swap them for stubs.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getList       = GetList
	getYesNo      = GetYesNo
)

// explain turns a service error into something to show the user.
func explain(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "The CameYa server is unavailable, try again later."
	case errors.Is(err, services.ErrTokenExpired):
		return "The server issued an expired session, please try again."
	}
	return client.Message(err, err.Error())
}

// landing is where a freshly authenticated user should go.
func (a *App) landing(s session.Session) string {
	return session.LandingIntent(s).Target
}

// Register prompts for the account details and creates the account. The
// password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	a.navigate(nav.Register)
	a.settle()

	req, err := a.readRegistration()
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)
	req.Password = string(password)

	msg, err := a.authService.Register(ctx, req)
	if err != nil {
		a.printf("Registration failed: %s\n", explain(err))
		return err
	}

	if msg == "" {
		msg = "Account created."
	}
	a.printf("%s\n", msg)
	a.navigate(nav.WithQuery(nav.CheckEmail, url.Values{"email": {req.Email}}))
	return nil
}

func (a *App) readRegistration() (client.RegisterRequest, error) {
	var (
		req client.RegisterRequest
		err error
	)
	kind, err := getSimpleText(a.reader, "Account type: (s)tudent or (e)mployer", a.out)
	if err != nil {
		return req, err
	}
	switch kind {
	case "e", "employer", client.AccountEmployer:
		req.AccountType = client.AccountEmployer
	default:
		req.AccountType = client.AccountStudent
	}

	prompts := []field{
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
		{"Email", &req.Email},
		{"Phone", &req.Phone},
		{"National ID", &req.NationalID},
		{"Birth date (YYYY-MM-DD)", &req.BirthDate},
	}
	if req.AccountType == client.AccountStudent {
		prompts = append(prompts, field{"Career", &req.Career}, field{"University", &req.University})
	} else {
		prompts = append(prompts, field{"City", &req.City})
	}

	if err = a.readFields(prompts); err != nil {
		return req, err
	}

	req.TermsAccepted, err = getYesNo(a.reader, "Do you accept the terms and conditions?", a.out)
	return req, err
}

// Login prompts the user for credentials and authenticates. On success the
// user lands on the page their account state calls for, or on the page a
// login redirect interrupted when the account is fully set up.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	intent, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		a.printf("Login failed: %s\n", explain(err))
		if errors.Is(err, client.ErrForbidden) {
			// the backend refuses unverified accounts
			a.navigate(nav.WithQuery(nav.CheckEmail, url.Values{"email": {email}}))
		}
		return err
	}
	a.log.Info(ctx, "login successful")

	target := intent.Target
	if back := a.takeReturnTo(); back != "" {
		if st := a.store.Snapshot(); st.IsAuthenticated() &&
			target == session.DashboardFor(st.Session.AccountType) {
			target = back
		}
	}
	a.navigate(target)
	return nil
}

// Verify confirms an email address with the token from the verification
// email.
func (a *App) Verify(ctx context.Context, token string) error {
	msg, err := a.authService.Verify(ctx, token)
	if err != nil {
		a.printf("Verification failed: %s\n", explain(err))
		return err
	}
	if msg == "" {
		msg = "Email verified."
	}
	a.printf("%s\n", msg)

	if st := a.store.Snapshot(); st.IsAuthenticated() && st.Session.EmailVerified {
		return nil
	}
	a.printf("Log in to continue.\n")
	a.navigate(nav.Login)
	return nil
}

// Resend asks the backend to send the verification email again. With no
// email the session's address is used.
func (a *App) Resend(ctx context.Context, email string) error {
	msg, err := a.authService.ResendVerification(ctx, email)
	if err != nil {
		a.printf("Could not resend: %s\n", explain(err))
		return err
	}
	if msg == "" {
		msg = "Verification email sent."
	}
	a.printf("%s\n", msg)
	return nil
}

// Logout forgets the session. The gate moves the user off any protected page.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.printf("Logout failed: %s\n", err)
		return err
	}
	a.printf("Logged out.\n")
	a.navigate(nav.Home)
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	st := a.store.Snapshot()
	if !st.IsAuthenticated() {
		a.printf("Not logged in.\n")
		return services.ErrNotLoggedIn
	}
	s := st.Session
	a.printf("%s <%s>\n", s.FullName(), s.Email)
	a.printf("  account:  %s", s.AccountType)
	if s.IdentityType != session.IdentityNone {
		a.printf(" (%s)", s.IdentityType)
	}
	a.printf("\n  verified: %t\n  profile:  %s\n", s.EmailVerified, completeness(s.ProfileComplete))
	return nil
}

func completeness(done bool) string {
	if done {
		return "complete"
	}
	return "incomplete, run 'complete'"
}

// field is one free-text prompt and where its answer goes.
type field struct {
	label string
	dst   *string
}

func (a *App) readFields(fields []field) error {
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.label, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}
