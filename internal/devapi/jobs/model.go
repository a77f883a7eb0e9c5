package jobs

import "time"

// Job statuses.
const (
	StatusOpen   = "abierto"
	StatusClosed = "cerrado"
)

type Job struct {
	ID              int64     `json:"id"`
	EmployerID      int64     `json:"empleador_id"`
	Title           string    `json:"titulo"`
	Description     string    `json:"descripcion"`
	Category        string    `json:"categoria"`
	Requirements    string    `json:"requisitos"`
	Skills          string    `json:"habilidades"`
	Salary          string    `json:"salario"`
	Negotiable      bool      `json:"negociable"`
	City            string    `json:"ciudad"`
	Modality        string    `json:"modalidad"`
	CreatedAt       time.Time `json:"fecha_creacion"`
	Status          string    `json:"estado"`
	EmployerName    string    `json:"nombre_empleador,omitempty"`
	EmployerSurname string    `json:"apellido_empleador,omitempty"`
	EmployerRating  float64   `json:"rating_empleador,omitempty"`
}

// Page is one page of the job feed.
type Page struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	TotalJobs  int   `json:"total_jobs"`
	Jobs       []Job `json:"jobs"`
}
