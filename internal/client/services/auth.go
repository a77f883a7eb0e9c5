// Package services contains application services for the CameYa client.
// This file defines the authentication service: login, registration, email
// verification, profile completion, and logout, all flowing through the
// session store so that the live session and its persisted copy agree.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/client"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/nav"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/session"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrNoProfileForm      = errors.New("no profile form for this account type")
)

// MinPasswordLen is what registration asks for.
const MinPasswordLen = 8

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Restore: load the persisted session; never fails.
//   - Login: authenticate and replace the live session. On any error the
//     session is left exactly as it was.
//   - Register, Verify, ResendVerification: account lifecycle calls that do
//     not touch the session.
//   - CompleteProfile: send the onboarding form matching the live account
//     type and mark the session's profile complete.
//   - Logout: forget the session locally. It never calls the backend.
//
// All methods honor context cancellation/timeouts.
type AuthService interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, email, password string) (nav.Intent, error)
	Register(ctx context.Context, req client.RegisterRequest) (string, error)
	Verify(ctx context.Context, token string) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	CompleteProfile(ctx context.Context, form ProfileForm) (session.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ProfileForm carries an onboarding form. Only the one matching the live
// account type is sent.
type ProfileForm struct {
	Student  *client.StudentProfile
	Employer *client.EmployerProfile
}

type authService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the API client and the
// session store.
func NewAuthService(c client.Client, store *session.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, store: store, log: log.With("component", "auth")}
}

func (a *authService) Restore(ctx context.Context) {
	a.store.Restore(ctx)
}

// Login authenticates against the backend and hands the response to the
// store. Fields missing from the response are taken from the token claims
// when the token is a JWT; a token that is already expired is refused.
func (a *authService) Login(ctx context.Context, email, password string) (nav.Intent, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nav.Intent{}, ErrMissingCredentials
	}

	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nav.Intent{}, fmt.Errorf("login error: %w", err)
	}

	claims, err := parseClaims(res.Token)
	switch {
	case errors.Is(err, ErrTokenExpired):
		return nav.Intent{}, err
	case err != nil:
		a.log.Debug(ctx, "token is not a readable jwt", "error", err)
	}

	payload := res.Raw
	if claims != nil {
		payload = session.Backfill(res.Raw, claims)
	}

	intent, err := a.store.Login(ctx, res.Token, payload)
	if err != nil {
		return nav.Intent{}, fmt.Errorf("session error: %w", err)
	}
	return intent, nil
}

func (a *authService) Register(ctx context.Context, req client.RegisterRequest) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := validEmail(req.Email); err != nil {
		return "", err
	}
	if len(req.Password) < MinPasswordLen {
		return "", fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	if req.FirstName == "" {
		return "", errors.New("first name is required")
	}
	if req.AccountType != client.AccountStudent && req.AccountType != client.AccountEmployer {
		return "", fmt.Errorf("unknown account type %q", req.AccountType)
	}
	if !req.TermsAccepted {
		return "", errors.New("terms must be accepted")
	}

	msg, err := a.client.Register(ctx, req)
	if err != nil {
		return "", fmt.Errorf("register error: %w", err)
	}
	return msg, nil
}

func (a *authService) Verify(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New("verification token is required")
	}
	msg, err := a.client.VerifyEmail(ctx, token)
	if err != nil {
		return "", fmt.Errorf("verify error: %w", err)
	}
	return msg, nil
}

// ResendVerification defaults to the live session's address when email is
// empty.
func (a *authService) ResendVerification(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		if st := a.store.Snapshot(); st.IsAuthenticated() {
			email = st.Session.Email
		}
	}
	if err := validEmail(email); err != nil {
		return "", err
	}
	msg, err := a.client.ResendVerification(ctx, email)
	if err != nil {
		return "", fmt.Errorf("resend error: %w", err)
	}
	return msg, nil
}

// CompleteProfile submits the onboarding form for the live account type and
// merges the outcome into the session. The profile is marked complete when
// the backend accepts an employer form, or a student form with every field
// filled in. Fields the backend echoes back are merged too.
func (a *authService) CompleteProfile(ctx context.Context, form ProfileForm) (session.Session, error) {
	st := a.store.Snapshot()
	if !st.IsAuthenticated() {
		return session.Session{}, ErrNotLoggedIn
	}

	var (
		echoed   map[string]any
		complete bool
		err      error
	)
	switch st.Session.AccountType {
	case session.Employer:
		if form.Employer == nil {
			return session.Session{}, ErrNoProfileForm
		}
		echoed, err = a.client.CompleteEmployerProfile(ctx, *form.Employer)
		complete = true
	default:
		if form.Student == nil {
			return session.Session{}, ErrNoProfileForm
		}
		echoed, err = a.client.CompleteStudentProfile(ctx, *form.Student)
		complete = form.Student.Complete()
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("complete profile error: %w", err)
	}

	fields := echoedFields(echoed)
	fields["perfil_completo"] = complete

	updated, ok, err := a.store.UpdatePartial(ctx, fields)
	if err != nil {
		return session.Session{}, fmt.Errorf("session error: %w", err)
	}
	if !ok {
		return session.Session{}, ErrNotLoggedIn
	}
	return updated, nil
}

// echoedFields extracts the user fields from a profile completion response.
// Identity fields are never taken from it: the response describes a profile,
// not who is logged in.
func echoedFields(resp map[string]any) map[string]any {
	out := map[string]any{}
	if resp == nil {
		return out
	}
	src := resp
	for _, k := range []string{"user_data", "user", "perfil"} {
		if inner, ok := resp[k].(map[string]any); ok {
			src = inner
			break
		}
	}
	if src == nil {
		return out
	}
	for k, v := range src {
		switch k {
		case "message", "token", "user_id", "id", "email", "correo", "tipo_cuenta", "role":
			continue
		}
		out[k] = v
	}
	return out
}

// Logout forgets the session locally.
func (a *authService) Logout(ctx context.Context) error {
	return a.store.Logout(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func validEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
