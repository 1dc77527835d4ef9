package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"minegocio/internal/config"
	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, usuarioID uuid.UUID, nombre string) error
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
	ReactivarUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo      repository.UsuarioRepository
	actividad repository.ActividadRepository
	cfg       *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, actividad repository.ActividadRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, actividad: actividad, cfg: cfg}
}

// Login deliberately returns the same generic error for a wrong password and
// for a missing user (or an unreachable store): the caller cannot tell which
// failure mode occurred. The detail is logged internally.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		log.Debug().Err(err).Str("username", req.Username).Msg("login: usuario no resuelto")
		return nil, ErrCredenciales
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Str("username", req.Username).Msg("login: password incorrecto")
		return nil, ErrCredenciales
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	s.registrarActividad(ctx, user, "Inicio de sesión", "El usuario inició sesión", model.ActividadLogin)

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *usuarioToResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, usuarioID uuid.UUID, nombre string) error {
	entrada := &model.ActividadEntrada{
		ID:          uuid.NewString(),
		UsuarioID:   usuarioID.String(),
		Usuario:     nombre,
		Accion:      "Cierre de sesión",
		Descripcion: "El usuario cerró sesión",
		Tipo:        model.ActividadLogout,
		Fecha:       time.Now(),
	}
	return s.actividad.Append(ctx, entrada)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Activo {
		return nil, errors.New("usuario no encontrado o inactivo")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *usuarioToResponse(user),
	}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.registrarActividad(ctx, user, "Usuario creado", "Se creó el usuario "+user.Username, model.ActividadCreate)
	return usuarioToResponse(user), nil
}

func (s *authService) ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	var users []model.Usuario
	var err error
	if incluirInactivos {
		users, err = s.repo.ListAll(ctx)
	} else {
		users, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = *usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	// The protected admin accepts no mutation at all — role, credentials, or
	// otherwise. Rejected before any persistence call.
	if s.esAdminProtegido(user) {
		return nil, ErrAdminProtegido
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Rol != "" {
		user.Rol = req.Rol
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.registrarActividad(ctx, user, "Usuario actualizado", "Se actualizó el usuario "+user.Username, model.ActividadUpdate)
	return usuarioToResponse(user), nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("usuario no encontrado")
	}
	if s.esAdminProtegido(user) {
		return ErrAdminProtegido
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.registrarActividad(ctx, user, "Usuario desactivado", "Se desactivó el usuario "+user.Username, model.ActividadDelete)
	return nil
}

func (s *authService) ReactivarUsuario(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return err
	}
	if user, err := s.repo.FindByID(ctx, id); err == nil {
		s.registrarActividad(ctx, user, "Usuario reactivado", "Se reactivó el usuario "+user.Username, model.ActividadUpdate)
	}
	return nil
}

// esAdminProtegido matches the distinguished principal admin by its
// configured email (case-insensitive).
func (s *authService) esAdminProtegido(u *model.Usuario) bool {
	if u.Email == nil || s.cfg.AdminEmail == "" {
		return false
	}
	return strings.EqualFold(*u.Email, s.cfg.AdminEmail)
}

func (s *authService) registrarActividad(ctx context.Context, user *model.Usuario, accion, descripcion, tipo string) {
	entrada := &model.ActividadEntrada{
		ID:          uuid.NewString(),
		UsuarioID:   user.ID.String(),
		Usuario:     user.Nombre,
		Accion:      accion,
		Descripcion: descripcion,
		Tipo:        tipo,
		Fecha:       time.Now(),
	}
	// Best effort: the activity log never blocks auth.
	if err := s.actividad.Append(ctx, entrada); err != nil {
		log.Warn().Err(err).Msg("actividad: no se pudo registrar la entrada")
	}
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"nombre":   user.Nombre,
		"rol":      user.Rol,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Email:    u.Email,
		Rol:      u.Rol,
		Activo:   u.Activo,
	}
}
