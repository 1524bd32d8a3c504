package handler

import (
	"net/http"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/middleware"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/seguridad/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerificarUbicacion godoc
// @Summary Verifica si el dispositivo está dentro del restaurante
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VerificarUbicacionRequest true "Coordenadas"
// @Success 200 {object} dto.UbicacionResponse
// @Failure 422 {object} apierror.APIError
// @Router /api/seguridad/auth/verify-location [post]
func (h *AuthHandler) VerificarUbicacion(c *gin.Context) {
	var req dto.VerificarUbicacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.VerificarUbicacion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerificarTokenUbicacion godoc
// @Summary Valida el token de ubicación o lo renueva con el refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VerificarTokenUbicacionRequest true "Tokens"
// @Success 200 {object} dto.UbicacionResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/seguridad/auth/verify-location-token [post]
func (h *AuthHandler) VerificarTokenUbicacion(c *gin.Context) {
	var req dto.VerificarTokenUbicacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.VerificarTokenUbicacion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SesionCliente godoc
// @Summary Abre una sesión de invitado para una mesa
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ClientSessionRequest true "Mesa y cliente"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/seguridad/auth/clientSession [post]
func (h *AuthHandler) SesionCliente(c *gin.Context) {
	var req dto.ClientSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SesionCliente(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerRoles godoc
// @Summary Devuelve los roles del usuario autenticado con sus permisos
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.GetRolesRequest true "IDs de roles"
// @Success 200 {array} dto.RolSesionResponse
// @Failure 403 {object} apierror.APIError
// @Router /api/seguridad/auth/rol [post]
func (h *AuthHandler) ObtenerRoles(c *gin.Context) {
	var req dto.GetRolesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ObtenerRoles(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TienePermiso godoc
// @Summary Consulta si el usuario autenticado tiene un permiso
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.HasPermissionRequest true "Recurso y método"
// @Success 200 {object} dto.HasPermissionResponse
// @Router /api/seguridad/auth/hasPermission [post]
func (h *AuthHandler) TienePermiso(c *gin.Context) {
	var req dto.HasPermissionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.TienePermiso(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TienePermisoVista godoc
// @Summary Consulta varias vistas a la vez
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.HasPermissionViewRequest true "Vistas"
// @Success 200 {object} dto.HasPermissionViewResponse
// @Router /api/seguridad/auth/hasPermissionView [post]
func (h *AuthHandler) TienePermisoVista(c *gin.Context) {
	var req dto.HasPermissionViewRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.TienePermisoVista(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarPassword godoc
// @Summary Cambia la contraseña del usuario autenticado
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.PasswordChangeRequest true "Contraseñas"
// @Success 200 {object} dto.MensajeResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/seguridad/auth/passwordChange [post]
func (h *AuthHandler) CambiarPassword(c *gin.Context) {
	var req dto.PasswordChangeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarPassword(c.Request.Context(), middleware.GetPrincipal(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Message: "Contraseña actualizada exitosamente"})
}

// CambiarPasswordAdmin godoc
// @Summary Cambia la contraseña de otro usuario
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.AdminPasswordChangeRequest true "Usuario y nueva contraseña"
// @Success 200 {object} dto.MensajeResponse
// @Failure 403 {object} apierror.APIError
// @Router /api/seguridad/auth/passwordChange/admin [post]
func (h *AuthHandler) CambiarPasswordAdmin(c *gin.Context) {
	var req dto.AdminPasswordChangeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarPasswordAdmin(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Message: "Contraseña actualizada exitosamente"})
}
