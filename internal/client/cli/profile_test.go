package cli

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/client"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/nav"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/services"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestComplete_RequiresLogin(t *testing.T) {
	ta := newTestApp(t, "")
	require.ErrorIs(t, ta.Complete(context.Background()), services.ErrNotLoggedIn)
	assert.Contains(t, ta.output(), "Log in first.")
}

func TestComplete_StudentFinishesOnboarding(t *testing.T) {
	photo := writeFile(t, "me.png", pngHeader)
	input := "Estudiante de diseño\nfines de semana\neventos, retail\nfigma, canva\nhttps://behance.net/luis\n" +
		"Me gusta diseñar.\nY atender eventos.\n\n" + photo + "\n"

	ta := newTestApp(t, input)
	loggedIn(t, ta, client.AccountStudent, true, false)
	require.Equal(t, nav.StudentOnboarding, ta.watcher.Path())

	require.NoError(t, ta.Complete(context.Background()))

	got := ta.auth.profile.Student
	require.NotNil(t, got)
	assert.Nil(t, ta.auth.profile.Employer)
	assert.Equal(t, "Estudiante de diseño", got.Title)
	assert.Equal(t, "fines de semana", got.Availability)
	assert.Equal(t, []string{"eventos", "retail"}, got.Sectors)
	assert.Equal(t, []string{"figma", "canva"}, got.Skills)
	assert.Equal(t, []string{"https://behance.net/luis"}, got.Links)
	assert.Equal(t, "Me gusta diseñar.\nY atender eventos.", got.Bio)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pngHeader), got.PhotoBase64)
	assert.Equal(t, "image/png", got.PhotoMIME)

	assert.Contains(t, ta.output(), "Profile complete.")
	assert.Equal(t, nav.StudentDashboard, ta.watcher.Path())
}

func TestComplete_StudentMissingFieldsStaysOnboarding(t *testing.T) {
	input := "Titulo\n\n\n\n\n\n\n"

	ta := newTestApp(t, input)
	loggedIn(t, ta, client.AccountStudent, true, false)

	require.NoError(t, ta.Complete(context.Background()))
	assert.Contains(t, ta.output(), "Fill in every field")
	assert.Equal(t, nav.StudentOnboarding, ta.watcher.Path())
}

func TestComplete_EmployerCompany(t *testing.T) {
	input := "c\nEventos SA\nhttps://eventos.ec\nhttps://linkedin.com/company/eventos\n0991234567\n" +
		"Organizamos eventos.\n\n\n"

	ta := newTestApp(t, input)
	loggedIn(t, ta, client.AccountEmployer, true, false)
	require.Equal(t, nav.EmployerOnboarding, ta.watcher.Path())

	require.NoError(t, ta.Complete(context.Background()))

	got := ta.auth.profile.Employer
	require.NotNil(t, got)
	assert.Equal(t, client.EmployerProfile{
		Kind:        client.EmployerCompany,
		CompanyName: "Eventos SA",
		Website:     "https://eventos.ec",
		LinkedIn:    "https://linkedin.com/company/eventos",
		WhatsApp:    "0991234567",
		Description: "Organizamos eventos.",
	}, *got)
	assert.Equal(t, nav.EmployerDashboard, ta.watcher.Path())
}

func TestComplete_EmployerPersonWithPhoto(t *testing.T) {
	photo := writeFile(t, "me.png", pngHeader)
	input := "p\nOrganizador\n099\n\n\nHago eventos.\n\n" + photo + "\n"

	ta := newTestApp(t, input)
	loggedIn(t, ta, client.AccountEmployer, true, false)

	require.NoError(t, ta.Complete(context.Background()))

	got := ta.auth.profile.Employer
	require.NotNil(t, got)
	assert.Equal(t, client.EmployerPerson, got.Kind)
	assert.Equal(t, "Organizador", got.Headline)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngHeader), got.PhotoBase64)
}

func TestComplete_ServiceErrorShown(t *testing.T) {
	input := "c\nX\n\n\n\n\n\n"

	ta := newTestApp(t, input)
	loggedIn(t, ta, client.AccountEmployer, true, false)
	ta.auth.profileErr = &client.APIError{Status: 400, Message: "Datos inválidos"}

	require.Error(t, ta.Complete(context.Background()))
	assert.Contains(t, ta.output(), "Could not save the profile: Datos inválidos")
	assert.Equal(t, nav.EmployerOnboarding, ta.watcher.Path())
}

func TestEncodePhoto(t *testing.T) {
	_, _, err := encodePhoto(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)

	text := writeFile(t, "notes.txt", []byte("just some text\n"))
	_, _, err = encodePhoto(text)
	require.ErrorContains(t, err, "is not an image")

	big := writeFile(t, "big.png", append(pngHeader, make([]byte, maxPhotoSize)...))
	_, _, err = encodePhoto(big)
	require.ErrorContains(t, err, "larger than")

	data, mime, err := encodePhoto(writeFile(t, "ok.png", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pngHeader), data)
}
