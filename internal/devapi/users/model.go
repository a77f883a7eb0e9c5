package users

import "time"

// Account types.
const (
	RoleStudent  = "estudiante"
	RoleEmployer = "empleador"
)

// Employer kinds.
const (
	KindPerson  = "persona"
	KindCompany = "empresa"
)

type User struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	PasswordHash  string
	AccountType   string
	Phone         string
	NationalID    string
	BirthDate     string
	Career        string
	University    string
	City          string
	TermsAccepted bool

	EmailVerified   bool
	ProfileComplete bool
	PhotoURL        string

	Student  *StudentProfile
	Employer *EmployerProfile

	CreatedAt time.Time
}

// IdentityType is the employer kind, empty for students and for employers
// that have not onboarded yet.
func (u *User) IdentityType() string {
	if u.Employer == nil {
		return ""
	}
	return u.Employer.Kind
}

func (u *User) clone() *User {
	c := *u
	if u.Student != nil {
		s := *u.Student
		s.Sectors = append([]string(nil), u.Student.Sectors...)
		s.Skills = append([]string(nil), u.Student.Skills...)
		s.Links = append([]string(nil), u.Student.Links...)
		c.Student = &s
	}
	if u.Employer != nil {
		e := *u.Employer
		c.Employer = &e
	}
	return &c
}

// RegisterInput is what a sign-up form sends.
type RegisterInput struct {
	FirstName     string `json:"nombre"`
	LastName      string `json:"apellido"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	AccountType   string `json:"tipo_cuenta"`
	Phone         string `json:"telefono"`
	NationalID    string `json:"cedula"`
	BirthDate     string `json:"fecha_nacimiento"`
	Career        string `json:"carrera"`
	University    string `json:"universidad"`
	City          string `json:"ciudad"`
	TermsAccepted bool   `json:"terminos_aceptados"`
	ProfilePhoto  string `json:"foto_perfil"`
}

type StudentProfile struct {
	Title        string   `json:"titulo_perfil"`
	Sectors      []string `json:"sector_preferencias"`
	Skills       []string `json:"habilidades"`
	Availability string   `json:"disponibilidad"`
	Bio          string   `json:"biografia"`
	Links        []string `json:"links"`
	PhotoBase64  string   `json:"foto_perfil_base64"`
	PhotoMIME    string   `json:"foto_perfil_mime"`
}

// complete mirrors the rule the web onboarding applies: every field filled.
func (p StudentProfile) complete() bool {
	return p.Title != "" && len(p.Sectors) > 0 && len(p.Skills) > 0 &&
		p.Availability != "" && p.Bio != "" && len(p.Links) > 0
}

type EmployerProfile struct {
	Kind        string `json:"tipo_empleador"`
	Headline    string `json:"headline"`
	Description string `json:"descripcion"`
	WhatsApp    string `json:"whatsapp"`
	LinkedIn    string `json:"linkedin"`
	OtherLink   string `json:"otro_link"`
	CompanyName string `json:"nombre_empresa"`
	Website     string `json:"website"`
	// PhotoBase64 is a data URL: data:<mime>;base64,<payload>.
	PhotoBase64 string `json:"foto_perfil"`
}
