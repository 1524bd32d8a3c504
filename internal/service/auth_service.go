package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/auth"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/config"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/geo"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/infra"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	// RolInvitado is the only role a guest table session may claim.
	RolInvitado = "GUEST"

	msgUsuarioNoEncontrado = "Usuario no encontrado"
	msgUsuarioInactivo     = "Usuario inactivo. No se puede realizar esta acción"
	msgUbicacionSinConfig  = "La ubicación del restaurante no está configurada"
	msgTokensUbicacion     = "Tokens de ubicación inválidos o expirados"
)

// cedulaRegex: optional V/E/J/P prefix, optional dash, 5 to 15 digits.
var cedulaRegex = regexp.MustCompile(`(?i)^(?:[VEJP]-?)?\d{5,15}$`)

// AuthService implements the session protocol: staff login, geofence
// verification, guest sessions, password changes and permission introspection.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	VerificarUbicacion(ctx context.Context, req dto.VerificarUbicacionRequest) (*dto.UbicacionResponse, error)
	VerificarTokenUbicacion(ctx context.Context, req dto.VerificarTokenUbicacionRequest) (*dto.UbicacionResponse, error)
	SesionCliente(ctx context.Context, req dto.ClientSessionRequest) (*dto.TokenResponse, error)
	CambiarPassword(ctx context.Context, p *auth.Principal, req dto.PasswordChangeRequest) error
	CambiarPasswordAdmin(ctx context.Context, req dto.AdminPasswordChangeRequest) error
	ObtenerRoles(ctx context.Context, p *auth.Principal, req dto.GetRolesRequest) ([]dto.RolSesionResponse, error)
	TienePermiso(ctx context.Context, p *auth.Principal, req dto.HasPermissionRequest) (*dto.HasPermissionResponse, error)
	TienePermisoVista(ctx context.Context, p *auth.Principal, req dto.HasPermissionViewRequest) (*dto.HasPermissionViewResponse, error)
}

type authService struct {
	usuarios    repository.UsuarioRepository
	roles       repository.RolRepository
	restaurante ConfiguracionRestaurante
	authz       Autorizador
	codec       *auth.TokenCodec
	cfg         *config.Config
}

func NewAuthService(
	usuarios repository.UsuarioRepository,
	roles repository.RolRepository,
	restaurante ConfiguracionRestaurante,
	authz Autorizador,
	codec *auth.TokenCodec,
	cfg *config.Config,
) AuthService {
	return &authService{
		usuarios:    usuarios,
		roles:       roles,
		restaurante: restaurante,
		authz:       authz,
		codec:       codec,
		cfg:         cfg,
	}
}

// Login never tells an unknown email apart from a wrong password. The active
// flag is only looked at once the password matched.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.usuarios.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			infra.RecordLogin("invalid_credentials")
			return nil, apierror.InvalidCredentials()
		}
		return nil, err
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		infra.RecordLogin("invalid_credentials")
		log.Warn().Uint("user_id", user.ID).Msg("login rechazado: contraseña incorrecta")
		return nil, apierror.InvalidCredentials()
	}
	if !user.IsActive {
		infra.RecordLogin("inactive")
		log.Warn().Uint("user_id", user.ID).Msg("login rechazado: usuario inactivo")
		return nil, apierror.AccountInactive()
	}

	token, err := s.codec.Issue(auth.SessionClaims(user))
	if err != nil {
		return nil, err
	}
	infra.RecordLogin("success")
	return &dto.TokenResponse{Token: token}, nil
}

func (s *authService) VerificarUbicacion(ctx context.Context, req dto.VerificarUbicacionRequest) (*dto.UbicacionResponse, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return nil, apierror.Validation("Latitud y longitud son requeridos")
	}
	rest, err := s.restaurante.Configuracion(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.ConfigurationMissing(msgUbicacionSinConfig)
		}
		return nil, err
	}

	lat, lon, radio := rest.Coordenadas()
	resp := &dto.UbicacionResponse{
		IsInside:  geo.IsWithinRadius(*req.Latitude, *req.Longitude, lat, lon, radio),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if !resp.IsInside {
		infra.RecordGeofence("outside")
		return resp, nil
	}
	infra.RecordGeofence("inside")
	resp.LocationToken, resp.LocationRefreshToken, err = s.emitirTokensUbicacion()
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// VerificarTokenUbicacion accepts a live location token as is; otherwise a
// live refresh token rotates both tokens.
func (s *authService) VerificarTokenUbicacion(_ context.Context, req dto.VerificarTokenUbicacionRequest) (*dto.UbicacionResponse, error) {
	if strings.TrimSpace(req.LocationToken) == "" {
		return nil, apierror.Validation("locationToken es requerido")
	}
	if _, err := s.codec.VerifyType(req.LocationToken, auth.TypeLocation); err == nil {
		return &dto.UbicacionResponse{IsInside: true}, nil
	}
	if req.LocationRefreshToken != "" {
		if _, err := s.codec.VerifyType(req.LocationRefreshToken, auth.TypeLocationRefresh); err == nil {
			access, refresh, err := s.emitirTokensUbicacion()
			if err != nil {
				return nil, err
			}
			return &dto.UbicacionResponse{
				LocationToken:        access,
				LocationRefreshToken: refresh,
				IsInside:             true,
			}, nil
		}
	}
	return nil, apierror.Unauthorized(msgTokensUbicacion)
}

func (s *authService) emitirTokensUbicacion() (string, string, error) {
	access, err := s.codec.IssueWithTTL(auth.LocationClaims(auth.TypeLocation), s.cfg.LocationTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.codec.IssueWithTTL(auth.LocationClaims(auth.TypeLocationRefresh), s.cfg.LocationRefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// SesionCliente issues a guest token for a table. The token carries no link
// to users, roles or permissions.
func (s *authService) SesionCliente(_ context.Context, req dto.ClientSessionRequest) (*dto.TokenResponse, error) {
	if req.TableID == nil || req.CustomerName == nil || req.CustomerDNI == nil || req.Role == nil {
		return nil, apierror.Validation("table_id, customer_name, customer_dni y role son requeridos")
	}
	if *req.TableID <= 0 {
		return nil, apierror.Validation("table_id debe ser un número entero positivo")
	}
	nombre := strings.TrimSpace(*req.CustomerName)
	if nombre == "" {
		return nil, apierror.Validation("customer_name no puede estar vacío")
	}
	cedula := strings.TrimSpace(*req.CustomerDNI)
	if !cedulaRegex.MatchString(cedula) {
		return nil, apierror.Validation(
			"customer_dni debe ser una cédula válida (prefijo opcional V/E/J/P y solo dígitos, entre 5 y 15 caracteres)")
	}
	if *req.Role != RolInvitado {
		return nil, apierror.Validation(`role solo puede tener el valor "GUEST"`)
	}

	token, err := s.codec.Issue(auth.ClientClaims(*req.TableID, nombre, strings.ToUpper(cedula), RolInvitado))
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

func (s *authService) CambiarPassword(ctx context.Context, p *auth.Principal, req dto.PasswordChangeRequest) error {
	user, err := s.usuarioActivo(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return apierror.Validation("La contraseña actual es incorrecta")
	}
	return s.guardarPassword(ctx, user.ID, req.NewPassword)
}

// CambiarPasswordAdmin resets another user's password; the caller was
// already checked for User_seguridad/Update.
func (s *authService) CambiarPasswordAdmin(ctx context.Context, req dto.AdminPasswordChangeRequest) error {
	if _, err := s.usuarios.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound(msgUsuarioNoEncontrado)
		}
		return err
	}
	return s.guardarPassword(ctx, req.UserID, req.NewPassword)
}

func (s *authService) guardarPassword(ctx context.Context, userID uint, plain string) error {
	if err := auth.ValidatePasswordPolicy(plain); err != nil {
		return apierror.Validation(err.Error())
	}
	hash, err := auth.HashPassword(plain, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.usuarios.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound(msgUsuarioNoEncontrado)
		}
		return err
	}
	return nil
}

// usuarioActivo reloads the caller; tokens outlive deactivation.
func (s *authService) usuarioActivo(ctx context.Context, id uint) (*model.Usuario, error) {
	user, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.NotFound(msgUsuarioNoEncontrado)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apierror.Forbidden(msgUsuarioInactivo)
	}
	return user, nil
}

// ObtenerRoles returns the requested roles with their permissions, all or nothing.
func (s *authService) ObtenerRoles(ctx context.Context, p *auth.Principal, req dto.GetRolesRequest) ([]dto.RolSesionResponse, error) {
	if len(req.Roles) == 0 {
		return nil, apierror.Validation("Se requiere un array de IDs de roles")
	}
	user, err := s.usuarioActivo(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	ids := unicos(req.Roles)
	for _, id := range ids {
		if !user.TieneRol(id) {
			return nil, apierror.Forbidden("Uno o más roles no pertenecen al usuario")
		}
	}

	roles, err := s.roles.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(ids) {
		return nil, apierror.NotFound("Uno o más roles no existen")
	}

	result := make([]dto.RolSesionResponse, 0, len(roles))
	for _, r := range roles {
		perms := make([]dto.PermisoSesionResponse, 0, len(r.Permisos))
		for _, pm := range r.Permisos {
			perms = append(perms, dto.PermisoSesionResponse{
				ID:       pm.ID,
				Type:     string(pm.Tipo),
				Resource: string(pm.Recurso),
				Method:   string(pm.Metodo),
				RoleID:   pm.RolID,
			})
		}
		result = append(result, dto.RolSesionResponse{ID: r.ID, Name: r.Nombre, Permissions: perms})
	}
	return result, nil
}

// TienePermiso routes method View to the view rule and anything else to the
// resource rule.
func (s *authService) TienePermiso(ctx context.Context, p *auth.Principal, req dto.HasPermissionRequest) (*dto.HasPermissionResponse, error) {
	r, err := model.ParseResource(req.Resource)
	if err != nil {
		return nil, apierror.Validation(err.Error())
	}
	m, err := model.ParseMethod(req.Method)
	if err != nil {
		return nil, apierror.Validation(err.Error())
	}

	var ok bool
	if m == model.MethodView {
		ok, err = s.authz.TienePermisoVista(ctx, p.UserID, r)
	} else {
		ok, err = s.authz.TienePermiso(ctx, p.UserID, r, m)
	}
	if err != nil {
		return nil, err
	}
	return &dto.HasPermissionResponse{HasPermission: ok}, nil
}

func (s *authService) TienePermisoVista(ctx context.Context, p *auth.Principal, req dto.HasPermissionViewRequest) (*dto.HasPermissionViewResponse, error) {
	rs := make([]model.Resource, 0, len(req.Resources))
	for _, raw := range req.Resources {
		r, err := model.ParseResource(raw)
		if err != nil {
			return nil, apierror.Validation(err.Error())
		}
		rs = append(rs, r)
	}
	decisiones, err := s.authz.TienePermisosVista(ctx, p.UserID, rs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(decisiones))
	for r, ok := range decisiones {
		out[string(r)] = ok
	}
	return &dto.HasPermissionViewResponse{Permissions: out}, nil
}

func unicos(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
