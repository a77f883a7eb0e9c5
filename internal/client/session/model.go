package session

import (
	"encoding/json"
	"maps"
	"strings"
)

// AccountType is the kind of account a user registered with.
type AccountType string

const (
	Student  AccountType = "student"
	Employer AccountType = "employer"
)

// wire returns the token the backend uses for the account type.
func (a AccountType) wire() string {
	switch a {
	case Employer:
		return "empleador"
	case Student:
		return "estudiante"
	default:
		return ""
	}
}

// IdentityType tells person-employers apart from company-employers. It is
// empty for students and for employers who have not chosen yet.
type IdentityType string

const (
	IdentityNone    IdentityType = ""
	IdentityPerson  IdentityType = "person"
	IdentityCompany IdentityType = "company"
)

func (i IdentityType) wire() string {
	switch i {
	case IdentityPerson:
		return "persona"
	case IdentityCompany:
		return "empresa"
	default:
		return ""
	}
}

// Session is the normalized record of the authenticated user.
type Session struct {
	UserID          int64
	Email           string
	EmailVerified   bool
	ProfileComplete bool
	AccountType     AccountType
	IdentityType    IdentityType
	DisplayName     string
	ProfilePhotoURL string

	// Extra holds every backend field the normalizer does not interpret,
	// exactly as received.
	Extra map[string]any
}

// Canonical field names written by ToMap; they match the backend's login
// response so older readers of the stored record keep working.
const (
	fieldUserID          = "user_id"
	fieldEmail           = "email"
	fieldEmailVerified   = "email_verificado"
	fieldProfileComplete = "perfil_completo"
	fieldAccountType     = "tipo_cuenta"
	fieldIdentityType    = "tipo_identidad"
	fieldDisplayName     = "nombre"
	fieldProfilePhotoURL = "foto_perfil"
)

// ToMap flattens the session into the backend's field names merged with
// Extra. Normalize(ToMap(s)) reproduces s.
func (s Session) ToMap() map[string]any {
	m := make(map[string]any, len(s.Extra)+8)
	maps.Copy(m, s.Extra)

	m[fieldUserID] = s.UserID
	m[fieldEmail] = s.Email
	m[fieldEmailVerified] = s.EmailVerified
	m[fieldProfileComplete] = s.ProfileComplete
	m[fieldAccountType] = s.AccountType.wire()
	if s.IdentityType != IdentityNone {
		m[fieldIdentityType] = s.IdentityType.wire()
	}
	if s.DisplayName != "" {
		m[fieldDisplayName] = s.DisplayName
	}
	if s.ProfilePhotoURL != "" {
		m[fieldProfilePhotoURL] = s.ProfilePhotoURL
	}
	return m
}

func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// Clone returns a copy that shares nothing mutable with s. Nested values in
// Extra are shared; they are never modified by this package.
func (s Session) Clone() Session {
	c := s
	if s.Extra != nil {
		c.Extra = maps.Clone(s.Extra)
	}
	return c
}

// FullName joins DisplayName with a surname the backend may have sent.
func (s Session) FullName() string {
	surname, _ := s.Extra["apellido"].(string)
	return strings.TrimSpace(strings.TrimSpace(s.DisplayName) + " " + strings.TrimSpace(surname))
}
