package jobs

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

var (
	seedTitles = []string{
		"Mesero para evento", "Repartidor de volantes", "Asistente de inventario",
		"Promotor de marca", "Tutor de matemáticas", "Diseño de logo",
		"Fotógrafo de boda", "Cajero fin de semana", "Community manager",
	}
	seedCities     = []string{"Quito", "Guayaquil", "Cuenca", "Manta"}
	seedModalities = []string{"presencial", "remoto", "híbrido"}
	seedEmployers  = [][2]string{{"Ana", "Torres"}, {"Carlos", "Mena"}, {"Eventos", "SA"}}
)

// Seed publishes n sample jobs, oldest first, so the feed has something to
// page through.
func Seed(ctx context.Context, repo Repository, n int, now time.Time) error {
	for i := 0; i < n; i++ {
		emp := seedEmployers[i%len(seedEmployers)]
		job := Job{
			EmployerID:      int64(1000 + i%len(seedEmployers)),
			Title:           seedTitles[i%len(seedTitles)],
			Description:     fmt.Sprintf("Trabajo de ejemplo número %d.", i+1),
			Category:        "general",
			Salary:          strconv.Itoa(15 + (i%8)*5),
			Negotiable:      i%3 == 0,
			City:            seedCities[i%len(seedCities)],
			Modality:        seedModalities[i%len(seedModalities)],
			CreatedAt:       now.Add(time.Duration(i-n) * time.Hour),
			Status:          StatusOpen,
			EmployerName:    emp[0],
			EmployerSurname: emp[1],
			EmployerRating:  3.5 + float64(i%4)*0.5,
		}
		if _, err := repo.Add(ctx, job); err != nil {
			return fmt.Errorf("error seeding job %d: %w", i+1, err)
		}
	}
	return nil
}
