package service

import (
	"context"
	"testing"

	"minegocio/internal/config"
	"minegocio/internal/dto"
	"minegocio/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*stubUsuarioRepo, *stubActividadRepo, AuthService) {
	usuarioRepo := newStubUsuarioRepo()
	actividadRepo := &stubActividadRepo{}
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		AdminEmail:         "admin@minegocio.com",
	}
	return usuarioRepo, actividadRepo, NewAuthService(usuarioRepo, actividadRepo, cfg)
}

func conPassword(u *model.Usuario, password string) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u.PasswordHash = string(hash)
	return u
}

func TestLogin_Exitoso(t *testing.T) {
	usuarioRepo, actividadRepo, svc := newAuthFixture()
	usuarioRepo.agregar(conPassword(&model.Usuario{
		Username: "maria", Nombre: "María", Rol: model.RolVendedor, Activo: true,
	}, "secreto"))

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "maria", resp.User.Username)

	// Exactamente una entrada de login en el registro de actividad
	require.Len(t, actividadRepo.entradas, 1)
	assert.Equal(t, model.ActividadLogin, actividadRepo.entradas[0].Tipo)
	assert.Equal(t, "María", actividadRepo.entradas[0].Usuario)
}

func TestLogin_ErrorGenerico(t *testing.T) {
	usuarioRepo, _, svc := newAuthFixture()
	usuarioRepo.agregar(conPassword(&model.Usuario{
		Username: "maria", Nombre: "María", Rol: model.RolVendedor, Activo: true,
	}, "secreto"))

	// Usuario inexistente y password incorrecto responden idéntico
	_, errNoUser := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	_, errBadPass := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "incorrecta"})

	require.ErrorIs(t, errNoUser, ErrCredenciales)
	require.ErrorIs(t, errBadPass, ErrCredenciales)
	assert.Equal(t, errNoUser.Error(), errBadPass.Error())
}

func TestLogin_ActividadNoBloquea(t *testing.T) {
	usuarioRepo, actividadRepo, svc := newAuthFixture()
	actividadRepo.failWrite = true
	usuarioRepo.agregar(conPassword(&model.Usuario{
		Username: "maria", Nombre: "María", Rol: model.RolAdmin, Activo: true,
	}, "secreto"))

	// El registro de actividad es best-effort: el login no falla
	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogout_RegistraActividad(t *testing.T) {
	usuarioRepo, actividadRepo, svc := newAuthFixture()
	u := usuarioRepo.agregar(conPassword(&model.Usuario{
		Username: "maria", Nombre: "María", Rol: model.RolVendedor, Activo: true,
	}, "secreto"))

	require.NoError(t, svc.Logout(context.Background(), u.ID, u.Nombre))
	require.Len(t, actividadRepo.entradas, 1)
	assert.Equal(t, model.ActividadLogout, actividadRepo.entradas[0].Tipo)
}

func TestAdminProtegido_NoSeModifica(t *testing.T) {
	usuarioRepo, _, svc := newAuthFixture()
	email := "admin@minegocio.com"
	admin := usuarioRepo.agregar(conPassword(&model.Usuario{
		Username: "admin", Nombre: "Administrador", Email: &email, Rol: model.RolAdmin, Activo: true,
	}, "admin123"))

	_, err := svc.ActualizarUsuario(context.Background(), admin.ID, dto.ActualizarUsuarioRequest{Rol: model.RolVendedor})
	assert.ErrorIs(t, err, ErrAdminProtegido)

	err = svc.DesactivarUsuario(context.Background(), admin.ID)
	assert.ErrorIs(t, err, ErrAdminProtegido)

	// Nada cambió
	assert.Equal(t, model.RolAdmin, admin.Rol)
	assert.True(t, admin.Activo)
}

func TestAdminProtegido_MatchInsensibleAMayusculas(t *testing.T) {
	usuarioRepo, _, svc := newAuthFixture()
	email := "Admin@MiNegocio.com"
	admin := usuarioRepo.agregar(conPassword(&model.Usuario{
		Username: "admin", Nombre: "Administrador", Email: &email, Rol: model.RolAdmin, Activo: true,
	}, "admin123"))

	err := svc.DesactivarUsuario(context.Background(), admin.ID)
	assert.ErrorIs(t, err, ErrAdminProtegido)
}

func TestUsuariosComunes_SiSeDesactivan(t *testing.T) {
	usuarioRepo, _, svc := newAuthFixture()
	email := "vendedor@minegocio.com"
	vendedor := usuarioRepo.agregar(conPassword(&model.Usuario{
		Username: "vendedor", Nombre: "Vendedor", Email: &email, Rol: model.RolVendedor, Activo: true,
	}, "1234"))

	require.NoError(t, svc.DesactivarUsuario(context.Background(), vendedor.ID))
	assert.False(t, vendedor.Activo)

	require.NoError(t, svc.ReactivarUsuario(context.Background(), vendedor.ID))
	assert.True(t, vendedor.Activo)
}

func TestCrearUsuario_HashYListado(t *testing.T) {
	_, _, svc := newAuthFixture()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "nuevo", Nombre: "Nuevo", Password: "clave1234", Rol: model.RolVendedor,
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)

	// El password nunca viaja en la respuesta y el login funciona con el hash
	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nuevo", Password: "clave1234"})
	require.NoError(t, err)
	assert.Equal(t, "nuevo", login.User.Username)

	activos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)
}

func TestAdministracionDeUsuarios_RegistraActividad(t *testing.T) {
	_, actividadRepo, svc := newAuthFixture()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "nuevo", Nombre: "Nuevo", Password: "clave1234", Rol: model.RolVendedor,
	})
	require.NoError(t, err)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	_, err = svc.ActualizarUsuario(context.Background(), id, dto.ActualizarUsuarioRequest{Nombre: "Renombrado"})
	require.NoError(t, err)
	require.NoError(t, svc.DesactivarUsuario(context.Background(), id))
	require.NoError(t, svc.ReactivarUsuario(context.Background(), id))

	// Más reciente primero: reactivar, desactivar, actualizar, crear
	require.Len(t, actividadRepo.entradas, 4)
	assert.Equal(t, model.ActividadUpdate, actividadRepo.entradas[0].Tipo)
	assert.Equal(t, model.ActividadDelete, actividadRepo.entradas[1].Tipo)
	assert.Equal(t, model.ActividadUpdate, actividadRepo.entradas[2].Tipo)
	assert.Equal(t, model.ActividadCreate, actividadRepo.entradas[3].Tipo)
	assert.Equal(t, "Usuario desactivado", actividadRepo.entradas[1].Accion)
}
