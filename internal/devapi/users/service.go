package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/auth"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/config"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

// PhotoPath is where stored photos are served from.
const PhotoPath = "/uploads/"

type Service struct {
	repo                        Repository
	photos                      *PhotoStore
	signer                      *auth.Signer
	tokenValidityDuration       time.Duration
	verifyTokenValidityDuration time.Duration
	logger                      logging.Logger
}

func NewService(repo Repository, photos *PhotoStore, signer *auth.Signer, cfg *config.Config, l logging.Logger) *Service {
	return &Service{
		repo:                        repo,
		photos:                      photos,
		signer:                      signer,
		tokenValidityDuration:       cfg.TokenValidityDuration,
		verifyTokenValidityDuration: cfg.VerifyTokenValidityDuration,
		logger:                      l.With("module", "users"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register creates an unverified account and returns it with the token the
// verification email would carry. No mail is sent; the link is logged.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, string, error) {
	email := normalizeEmail(in.Email)

	switch {
	case !validEmail(email):
		return nil, "", ErrInvalidEmail
	case in.Password == "":
		return nil, "", ErrPasswordRequired
	case in.AccountType != RoleStudent && in.AccountType != RoleEmployer:
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidAccountType, in.AccountType)
	case strings.TrimSpace(in.FirstName) == "":
		return nil, "", fmt.Errorf("%w: first name", ErrMissingFields)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         email,
		PasswordHash:  hash,
		AccountType:   in.AccountType,
		Phone:         in.Phone,
		NationalID:    in.NationalID,
		BirthDate:     in.BirthDate,
		Career:        in.Career,
		University:    in.University,
		City:          in.City,
		TermsAccepted: in.TermsAccepted,
		PhotoURL:      in.ProfilePhoto,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.verificationToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID, "email", user.Email, "account", user.AccountType)
	return user, token, nil
}

func (s *Service) verificationToken(ctx context.Context, user *User) (string, error) {
	token, err := s.signer.GenerateToken(auth.Claims{
		UserID:  user.ID,
		Email:   user.Email,
		Purpose: auth.PurposeVerify,
	}, s.verifyTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating verification token: %w", err)
	}
	s.logger.Info(ctx, "Verification link", "email", user.Email, "token", token)
	return token, nil
}

// Login checks credentials and issues a session token. Unverified accounts
// are refused even with the right password.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("error loading user: %w", err)
	}

	if !CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return "", nil, ErrNotVerified
	}

	token, err := s.SessionToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info(ctx, "Logged in", "user_id", user.ID)
	return token, user, nil
}

// SessionToken signs a session token describing user as it is now.
func (s *Service) SessionToken(user *User) (string, error) {
	token, err := s.signer.GenerateToken(auth.Claims{
		UserID:          user.ID,
		Email:           user.Email,
		Role:            user.AccountType,
		EmailVerified:   user.EmailVerified,
		ProfileComplete: user.ProfileComplete,
		Purpose:         auth.PurposeSession,
	}, s.tokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// Verify marks the address behind a verification token as confirmed.
// Verifying twice succeeds.
func (s *Service) Verify(ctx context.Context, token string) (*User, error) {
	claims, err := s.signer.ParseToken(token, auth.PurposeVerify)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(claims.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if user.EmailVerified {
		return user, nil
	}

	user.EmailVerified = true
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	s.logger.Info(ctx, "Email verified", "user_id", user.ID)
	return user, nil
}

// ResendVerification issues a fresh verification token. ErrNotFound lets
// callers answer without revealing whether the account exists.
func (s *Service) ResendVerification(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return "", ErrInvalidEmail
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if user.EmailVerified {
		return "", ErrAlreadyVerified
	}

	return s.verificationToken(ctx, user)
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) userWithRole(ctx context.Context, id int64, role string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.AccountType != role {
		return nil, fmt.Errorf("%w: account is not %s", ErrWrongAccountType, role)
	}
	return user, nil
}

func (s *Service) savePhoto(encoded string) (string, error) {
	data, err := decodePhoto(encoded)
	if err != nil {
		return "", err
	}
	name, err := s.photos.Save(data)
	if err != nil {
		return "", err
	}
	return PhotoPath + name, nil
}

// CompleteStudent stores the student onboarding form. Skills, availability
// and biography are required; the profile only counts as complete once
// every field is filled.
func (s *Service) CompleteStudent(ctx context.Context, userID int64, p StudentProfile) (*User, error) {
	user, err := s.userWithRole(ctx, userID, RoleStudent)
	if err != nil {
		return nil, err
	}

	if len(p.Skills) == 0 || strings.TrimSpace(p.Availability) == "" || strings.TrimSpace(p.Bio) == "" {
		return nil, fmt.Errorf("%w: skills, availability and biography", ErrMissingFields)
	}

	if p.PhotoBase64 != "" {
		url, err := s.savePhoto(p.PhotoBase64)
		if err != nil {
			return nil, err
		}
		user.PhotoURL = url
	}
	p.PhotoBase64, p.PhotoMIME = "", ""

	user.Student = &p
	user.ProfileComplete = p.complete()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	s.logger.Info(ctx, "Student profile saved", "user_id", user.ID, "complete", user.ProfileComplete)
	return user, nil
}

// CompleteEmployer stores the employer onboarding form. Companies must give
// their name.
func (s *Service) CompleteEmployer(ctx context.Context, userID int64, p EmployerProfile) (*User, error) {
	user, err := s.userWithRole(ctx, userID, RoleEmployer)
	if err != nil {
		return nil, err
	}

	switch p.Kind {
	case KindPerson:
	case KindCompany:
		if strings.TrimSpace(p.CompanyName) == "" {
			return nil, fmt.Errorf("%w: company name", ErrMissingFields)
		}
	default:
		return nil, fmt.Errorf("%w: employer kind %q", ErrInvalidInput, p.Kind)
	}

	if p.PhotoBase64 != "" {
		url, err := s.savePhoto(p.PhotoBase64)
		if err != nil {
			return nil, err
		}
		user.PhotoURL = url
	}
	p.PhotoBase64 = ""

	user.Employer = &p
	user.ProfileComplete = true

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	s.logger.Info(ctx, "Employer profile saved", "user_id", user.ID, "kind", p.Kind)
	return user, nil
}
