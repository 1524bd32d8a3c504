package handler

import (
	"net/http"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/service"

	"github.com/gin-gonic/gin"
)

type PermisosHandler struct{ svc service.PermisoService }

func NewPermisosHandler(svc service.PermisoService) *PermisosHandler {
	return &PermisosHandler{svc: svc}
}

// Crear godoc
// @Summary Crea un permiso en un rol
// @Tags permissions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CrearPermisoRequest true "Permiso"
// @Success 201 {object} dto.PermisoResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/seguridad/permissions [post]
func (h *PermisosHandler) Crear(c *gin.Context) {
	var req dto.CrearPermisoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista permisos con su rol
// @Tags permissions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.PermisoResponse
// @Router /api/seguridad/permissions [get]
func (h *PermisosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID godoc
// @Summary Obtiene un permiso
// @Tags permissions
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.PermisoResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/seguridad/permissions/{id} [get]
func (h *PermisosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualiza un permiso
// @Tags permissions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param body body dto.ActualizarPermisoRequest true "Cambios"
// @Success 200 {object} dto.PermisoResponse
// @Router /api/seguridad/permissions/{id} [patch]
func (h *PermisosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPermisoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Elimina un permiso
// @Tags permissions
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.MensajeResponse
// @Router /api/seguridad/permissions/{id} [delete]
func (h *PermisosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Message: "Permiso eliminado exitosamente"})
}
