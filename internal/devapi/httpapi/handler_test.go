package httpapi

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/jobs"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/users"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func registerBody(email, role string) map[string]any {
	return map[string]any{
		"nombre":             "Luis",
		"apellido":           "Perez",
		"email":              email,
		"password":           "secret123",
		"tipo_cuenta":        role,
		"terminos_aceptados": true,
	}
}

func TestRegisterVerifyLogin(t *testing.T) {
	ts := newTestServer(t, 0)

	rec, out := ts.call(t, http.MethodPost, "/register", registerBody("Luis@X.com", users.RoleStudent), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Usuario registrado correctamente. Verifica tu correo electrónico.", out["message"])

	rec, out = ts.call(t, http.MethodPost, "/login", map[string]string{"email": "luis@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Debes verificar tu correo electrónico para continuar.", out["error"])

	verify, err := ts.users.ResendVerification(context.Background(), "luis@x.com")
	require.NoError(t, err)

	rec, out = ts.call(t, http.MethodPost, "/verify?token="+verify, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Correo electrónico verificado correctamente.", out["message"])

	rec, out = ts.call(t, http.MethodPost, "/login", map[string]string{"email": " LUIS@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, out["token"])

	data, ok := out["user_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Luis", data["nombre"])
	assert.Equal(t, "luis@x.com", data["email"])
	assert.Equal(t, users.RoleStudent, data["tipo_cuenta"])
	assert.Equal(t, true, data["email_verificado"])
	assert.Equal(t, false, data["perfil_completo"])
	assert.EqualValues(t, 1, data["user_id"])
	assert.NotContains(t, data, "tipo_identidad")
}

func TestRegister_Errors(t *testing.T) {
	ts := newTestServer(t, 0)
	_, _ = ts.call(t, http.MethodPost, "/register", registerBody("a@b.com", users.RoleStudent), "")

	noPassword := registerBody("c@d.com", users.RoleStudent)
	delete(noPassword, "password")

	tests := []struct {
		name string
		body any
		code int
		want string
	}{
		{"account type", registerBody("c@d.com", "admin"), http.StatusBadRequest, "Tipo de cuenta no válido"},
		{"password", noPassword, http.StatusBadRequest, "La contraseña es obligatoria"},
		{"email", registerBody("nope", users.RoleStudent), http.StatusBadRequest, "Email inválido"},
		{"duplicate", registerBody("a@b.com", users.RoleEmployer), http.StatusConflict, "El email ya está registrado"},
		{"not json", "text", http.StatusBadRequest, "Datos de registro inválidos"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, out := ts.call(t, http.MethodPost, "/register", tc.body, "")
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.want, out["error"])
		})
	}
}

func TestLogin_Errors(t *testing.T) {
	ts := newTestServer(t, 0)
	ts.account(t, "luis@x.com", users.RoleStudent)

	rec, out := ts.call(t, http.MethodPost, "/login", map[string]string{"email": "luis@x.com"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email y contraseña requeridos", out["error"])

	rec, out = ts.call(t, http.MethodPost, "/login", map[string]string{"email": "luis@x.com", "password": "bad"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Credenciales inválidas", out["error"])
}

func TestLogin_EmployerIdentity(t *testing.T) {
	ts := newTestServer(t, 0)
	token := ts.account(t, "ana@x.com", users.RoleEmployer)

	rec, _ := ts.call(t, http.MethodPatch, "/protected/completar-perfil-empleador",
		map[string]string{"tipo_empleador": users.KindCompany, "nombre_empresa": "Eventos SA"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, out := ts.call(t, http.MethodPost, "/login", map[string]string{"email": "ana@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := out["user_data"].(map[string]any)
	assert.Equal(t, users.KindCompany, data["tipo_identidad"])
	assert.Equal(t, true, data["perfil_completo"])
}

func TestVerify_Forms(t *testing.T) {
	ts := newTestServer(t, 0)
	ctx := context.Background()
	_, token, err := ts.users.Register(ctx, users.RegisterInput{
		FirstName: "Luis", Email: "luis@x.com", Password: "secret123", AccountType: users.RoleStudent,
	})
	require.NoError(t, err)

	rec, _ := ts.call(t, http.MethodGet, "/verify/"+token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.call(t, http.MethodGet, "/verify?token="+token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, out := ts.call(t, http.MethodGet, "/verify", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Token no proporcionado", out["error"])

	rec, out = ts.call(t, http.MethodPost, "/verify?token=garbage", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token inválido o expirado", out["error"])
}

func TestResendVerification(t *testing.T) {
	ts := newTestServer(t, 0)
	_, _ = ts.call(t, http.MethodPost, "/register", registerBody("luis@x.com", users.RoleStudent), "")
	ts.account(t, "ana@x.com", users.RoleEmployer)

	tests := []struct {
		name  string
		email string
		code  int
		field string
		want  string
	}{
		{"sent", "luis@x.com", http.StatusOK, "message", "Se ha enviado un nuevo correo de verificación."},
		{"unknown", "ghost@x.com", http.StatusOK, "message", "Si el correo existe, se ha enviado un nuevo enlace de verificación."},
		{"verified", "ana@x.com", http.StatusBadRequest, "error", "La cuenta ya está verificada"},
		{"invalid", "nope", http.StatusBadRequest, "error", "Email inválido o faltante"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, out := ts.call(t, http.MethodPost, "/auth/resend-verification", map[string]string{"email": tc.email}, "")
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.want, out[tc.field])
		})
	}
}

func TestCompleteStudent(t *testing.T) {
	ts := newTestServer(t, 0)
	token := ts.account(t, "luis@x.com", users.RoleStudent)

	rec, out := ts.call(t, http.MethodPatch, "/protected/completar-perfil",
		map[string]any{"habilidades": []string{"figma"}}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Debes completar al menos habilidades, disponibilidad y biografía.", out["error"])

	form := map[string]any{
		"titulo_perfil":       "Diseñador",
		"sector_preferencias": []string{"eventos"},
		"habilidades":         []string{"figma"},
		"disponibilidad":      "fines de semana",
		"biografia":           "Hola",
		"links":               []string{"https://behance.net/luis"},
		"foto_perfil_base64":  base64.StdEncoding.EncodeToString(pngHeader),
		"foto_perfil_mime":    "image/png",
	}
	rec, out = ts.call(t, http.MethodPatch, "/protected/completar-perfil", form, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Perfil actualizado correctamente", out["message"])
	assert.Equal(t, true, out["profile_completo"])

	url, _ := out["foto_perfil"].(string)
	require.True(t, strings.HasPrefix(url, users.PhotoPath))

	rec, _ = ts.call(t, http.MethodGet, url, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, rec.Body.Bytes())

	rec, _ = ts.call(t, http.MethodGet, users.PhotoPath+"missing.png", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompleteStudent_BadPhotoAndWrongAccount(t *testing.T) {
	ts := newTestServer(t, 0)
	student := ts.account(t, "luis@x.com", users.RoleStudent)
	employer := ts.account(t, "ana@x.com", users.RoleEmployer)

	form := map[string]any{
		"habilidades":        []string{"figma"},
		"disponibilidad":     "x",
		"biografia":          "y",
		"foto_perfil_base64": base64.StdEncoding.EncodeToString([]byte("hello")),
	}
	rec, out := ts.call(t, http.MethodPatch, "/protected/completar-perfil", form, student)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Foto de perfil inválida", out["error"])

	rec, _ = ts.call(t, http.MethodPatch, "/protected/completar-perfil", form, employer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCompleteEmployer(t *testing.T) {
	ts := newTestServer(t, 0)
	token := ts.account(t, "ana@x.com", users.RoleEmployer)

	rec, out := ts.call(t, http.MethodPatch, "/protected/completar-perfil-empleador",
		map[string]string{"tipo_empleador": users.KindCompany}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El nombre de la empresa es obligatorio", out["error"])

	rec, out = ts.call(t, http.MethodPatch, "/protected/completar-perfil-empleador",
		map[string]string{"tipo_empleador": "otro"}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Datos de perfil inválidos", out["error"])

	rec, out = ts.call(t, http.MethodPatch, "/protected/completar-perfil-empleador", map[string]string{
		"tipo_empleador": users.KindPerson,
		"headline":       "Organizador",
		"foto_perfil":    "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader),
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, users.RoleEmployer, out["tipo_cuenta"])
	assert.Equal(t, users.KindPerson, out["tipo_identidad"])
	assert.Equal(t, true, out["completed_onboarding"])
	assert.NotEmpty(t, out["foto_perfil"])
}

func TestListJobs(t *testing.T) {
	ts := newTestServer(t, 23)
	token := ts.account(t, "luis@x.com", users.RoleStudent)

	rec, out := ts.call(t, http.MethodGet, "/protected/todos_trabajos", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, out["page"])
	assert.EqualValues(t, 3, out["total_pages"])
	assert.EqualValues(t, 23, out["total_jobs"])
	assert.Len(t, out["jobs"], jobs.DefaultLimit)

	rec, out = ts.call(t, http.MethodGet, "/protected/todos_trabajos?page=2&limit=20", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, out["total_pages"])
	assert.Len(t, out["jobs"], 3)

	first := out["jobs"].([]any)[0].(map[string]any)
	assert.Contains(t, first, "titulo")
	assert.Contains(t, first, "rating_empleador")

	rec, out = ts.call(t, http.MethodGet, "/protected/todos_trabajos?page=922337203685477582", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, out["jobs"])
	assert.EqualValues(t, 23, out["total_jobs"])
}

func TestListJobs_Errors(t *testing.T) {
	ts := newTestServer(t, 1)
	student := ts.account(t, "luis@x.com", users.RoleStudent)
	employer := ts.account(t, "ana@x.com", users.RoleEmployer)

	tests := []struct {
		name  string
		query string
		token string
		code  int
	}{
		{"employer", "", employer, http.StatusForbidden},
		{"page zero", "?page=0", student, http.StatusBadRequest},
		{"page text", "?page=x", student, http.StatusBadRequest},
		{"limit too big", "?limit=51", student, http.StatusBadRequest},
		{"limit zero", "?limit=0", student, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, out := ts.call(t, http.MethodGet, "/protected/todos_trabajos"+tc.query, nil, tc.token)
			assert.Equal(t, tc.code, rec.Code)
			assert.NotEmpty(t, out["error"])
		})
	}
}

type failingJobs struct{}

func (failingJobs) List(context.Context, int, int) (jobs.Page, error) {
	return jobs.Page{}, errors.New("disk on fire")
}

func TestListJobs_InternalError(t *testing.T) {
	ts := newTestServer(t, 0)
	token := ts.account(t, "luis@x.com", users.RoleStudent)

	s := NewServer("", logging.Nop(), ts.users, failingJobs{}, users.NewPhotoStore(), ts.signer)
	ts.Server = s

	rec, out := ts.call(t, http.MethodGet, "/protected/todos_trabajos", nil, token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgInternal, out["error"])
}
