package client

import (
	"context"
	"encoding/json"
)

type Client interface {
	Close() error
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) (string, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	CompleteStudentProfile(ctx context.Context, p StudentProfile) (map[string]any, error)
	CompleteEmployerProfile(ctx context.Context, p EmployerProfile) (map[string]any, error)
	Jobs(ctx context.Context, page, limit int) (JobsPage, error)
	Ping(ctx context.Context) error
}

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// LoginResult is the token plus the login response as received. Raw still
// needs normalizing before it describes a session.
type LoginResult struct {
	Token string
	Raw   map[string]any
}

// Account types as the backend spells them.
const (
	AccountStudent  = "estudiante"
	AccountEmployer = "empleador"
)

type RegisterRequest struct {
	FirstName     string `json:"nombre"`
	LastName      string `json:"apellido"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	AccountType   string `json:"tipo_cuenta"`
	Phone         string `json:"telefono,omitempty"`
	NationalID    string `json:"cedula,omitempty"`
	BirthDate     string `json:"fecha_nacimiento,omitempty"`
	Career        string `json:"carrera,omitempty"`
	University    string `json:"universidad,omitempty"`
	City          string `json:"ciudad,omitempty"`
	TermsAccepted bool   `json:"terminos_aceptados"`
	ProfilePhoto  string `json:"foto_perfil"`
}

// StudentProfile is the student onboarding form.
type StudentProfile struct {
	Title        string   `json:"titulo_perfil"`
	Sectors      []string `json:"sector_preferencias"`
	Skills       []string `json:"habilidades"`
	Availability string   `json:"disponibilidad"`
	Bio          string   `json:"biografia"`
	Links        []string `json:"links"`
	PhotoBase64  string   `json:"foto_perfil_base64,omitempty"`
	PhotoMIME    string   `json:"foto_perfil_mime,omitempty"`
}

// Complete reports whether every required field is filled in. The backend
// only marks the profile complete when it is.
func (p StudentProfile) Complete() bool {
	return p.Title != "" && len(p.Sectors) > 0 && len(p.Skills) > 0 &&
		p.Availability != "" && p.Bio != "" && len(p.Links) > 0
}

// Employer kinds.
const (
	EmployerPerson  = "persona"
	EmployerCompany = "empresa"
)

// EmployerProfile is the employer onboarding form. Person employers fill
// Headline and WhatsApp, companies CompanyName and Website.
type EmployerProfile struct {
	Kind        string `json:"tipo_empleador"`
	Headline    string `json:"headline,omitempty"`
	Description string `json:"descripcion,omitempty"`
	WhatsApp    string `json:"whatsapp,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
	OtherLink   string `json:"otro_link,omitempty"`
	CompanyName string `json:"nombre_empresa,omitempty"`
	Website     string `json:"website,omitempty"`
	PhotoBase64 string `json:"foto_perfil,omitempty"`
}

type Job struct {
	ID              int64       `json:"id"`
	EmployerID      int64       `json:"empleador_id"`
	Title           string      `json:"titulo"`
	Description     string      `json:"descripcion"`
	Category        string      `json:"categoria"`
	Requirements    string      `json:"requisitos"`
	Skills          string      `json:"habilidades"`
	Salary          string      `json:"salario"`
	Negotiable      bool        `json:"negociable"`
	City            string      `json:"ciudad"`
	Modality        string      `json:"modalidad"`
	CreatedAt       string      `json:"fecha_creacion"`
	Status          string      `json:"estado"`
	EmployerName    string      `json:"nombre_empleador,omitempty"`
	EmployerSurname string      `json:"apellido_empleador,omitempty"`
	EmployerRating  json.Number `json:"rating_empleador,omitempty"`
}

type JobsPage struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	TotalJobs  int   `json:"total_jobs"`
	Jobs       []Job `json:"jobs"`
}
