package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/jobs"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/users"
)

const msgInternal = "Error interno del servidor"

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), err.Error(), "request_id", c.GetString(requestIDKey))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func userData(u *users.User) gin.H {
	data := gin.H{
		"user_id":          u.ID,
		"nombre":           u.FirstName,
		"apellido":         u.LastName,
		"email":            u.Email,
		"tipo_cuenta":      u.AccountType,
		"foto_perfil":      u.PhotoURL,
		"email_verificado": u.EmailVerified,
		"perfil_completo":  u.ProfileComplete,
	}
	if u.AccountType == users.RoleEmployer {
		data["tipo_identidad"] = u.IdentityType()
	}
	return data
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email y contraseña requeridos"})
		return
	}

	token, user, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, users.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email y contraseña requeridos"})
		return
	case errors.Is(err, users.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	case errors.Is(err, users.ErrNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": "Debes verificar tu correo electrónico para continuar."})
		return
	case err != nil:
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_data": userData(user)})
}

func (s *Server) register(c *gin.Context) {
	var in users.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de registro inválidos"})
		return
	}

	_, _, err := s.users.Register(c.Request.Context(), in)
	switch {
	case errors.Is(err, users.ErrInvalidAccountType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de cuenta no válido"})
		return
	case errors.Is(err, users.ErrPasswordRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "La contraseña es obligatoria"})
		return
	case errors.Is(err, users.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email inválido"})
		return
	case errors.Is(err, users.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de registro inválidos"})
		return
	case errors.Is(err, users.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "El email ya está registrado"})
		return
	case err != nil:
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuario registrado correctamente. Verifica tu correo electrónico."})
}

// verify accepts the token as a path segment or as ?token=, the form
// verification links use.
func (s *Server) verify(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		token = c.DefaultQuery("token", "")
	}
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token no proporcionado"})
		return
	}

	_, err := s.users.Verify(c.Request.Context(), token)
	switch {
	case errors.Is(err, users.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido o expirado"})
		return
	case err != nil:
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Correo electrónico verificado correctamente."})
}

func (s *Server) resendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email inválido o faltante"})
		return
	}

	_, err := s.users.ResendVerification(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, users.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email inválido o faltante"})
		return
	case errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusOK, gin.H{"message": "Si el correo existe, se ha enviado un nuevo enlace de verificación."})
		return
	case errors.Is(err, users.ErrAlreadyVerified):
		c.JSON(http.StatusBadRequest, gin.H{"error": "La cuenta ya está verificada"})
		return
	case err != nil:
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Se ha enviado un nuevo correo de verificación."})
}

// profileError answers the failures both onboarding endpoints share. It
// reports whether err was handled.
func (s *Server) profileError(c *gin.Context, err error, missing string) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, users.ErrWrongAccountType):
		c.JSON(http.StatusForbidden, gin.H{"error": "Esta acción no está permitida para tu tipo de cuenta"})
	case errors.Is(err, users.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": missing})
	case errors.Is(err, users.ErrInvalidPhoto):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Foto de perfil inválida"})
	case errors.Is(err, users.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de perfil inválidos"})
	case errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
	default:
		s.internalError(c, err)
	}
	return true
}

func (s *Server) completeStudent(c *gin.Context) {
	claims := claimsFrom(c)

	var p users.StudentProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de perfil inválidos"})
		return
	}

	user, err := s.users.CompleteStudent(c.Request.Context(), claims.UserID, p)
	if s.profileError(c, err, "Debes completar al menos habilidades, disponibilidad y biografía.") {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Perfil actualizado correctamente",
		"profile_completo": user.ProfileComplete,
		"perfil_completo":  user.ProfileComplete,
		"foto_perfil":      user.PhotoURL,
	})
}

func (s *Server) completeEmployer(c *gin.Context) {
	claims := claimsFrom(c)

	var p users.EmployerProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de perfil inválidos"})
		return
	}

	user, err := s.users.CompleteEmployer(c.Request.Context(), claims.UserID, p)
	if s.profileError(c, err, "El nombre de la empresa es obligatorio") {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":              "Perfil de empleador actualizado correctamente",
		"tipo_cuenta":          user.AccountType,
		"tipo_identidad":       user.IdentityType(),
		"completed_onboarding": user.ProfileComplete,
		"perfil_completo":      user.ProfileComplete,
		"foto_perfil":          user.PhotoURL,
	})
}

func (s *Server) listJobs(c *gin.Context) {
	if claims := claimsFrom(c); claims.Role != users.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Solo los estudiantes pueden ver los trabajos"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro page inválido"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(jobs.DefaultLimit)))
	if err != nil || limit < 1 || limit > jobs.MaxLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro limit inválido (1-50)"})
		return
	}

	result, err := s.jobs.List(c.Request.Context(), page, limit)
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) photo(c *gin.Context) {
	p, ok := s.photos.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Foto no encontrada"})
		return
	}
	c.Data(http.StatusOK, p.MIME, p.Data)
}
