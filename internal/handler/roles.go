package handler

import (
	"net/http"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/service"

	"github.com/gin-gonic/gin"
)

type RolesHandler struct{ svc service.RolService }

func NewRolesHandler(svc service.RolService) *RolesHandler { return &RolesHandler{svc: svc} }

// Crear godoc
// @Summary Crea un rol con sus permisos
// @Tags roles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CrearRolRequest true "Rol"
// @Success 201 {object} dto.RolMutacionResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/seguridad/roles [post]
func (h *RolesHandler) Crear(c *gin.Context) {
	var req dto.CrearRolRequest
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
// @Summary Lista roles
// @Tags roles
// @Security BearerAuth
// @Produce json
// @Param includeUsers query bool false "Incluir usuarios"
// @Success 200 {array} dto.RolResponse
// @Router /api/seguridad/roles [get]
func (h *RolesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), includeFlag(c, "includeUsers"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID godoc
// @Summary Obtiene un rol
// @Tags roles
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID"
// @Param includeUsers query bool false "Incluir usuarios"
// @Success 200 {object} dto.RolResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/seguridad/roles/{id} [get]
func (h *RolesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id, includeFlag(c, "includeUsers"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualiza un rol
// @Description permissions conserva solo los IDs listados; existing_permissions y new_permissions editan y agregan.
// @Tags roles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param body body dto.ActualizarRolRequest true "Cambios"
// @Success 200 {object} dto.RolMutacionResponse
// @Router /api/seguridad/roles/{id} [patch]
func (h *RolesHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarRolRequest
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
// @Summary Elimina un rol, sus permisos y sus asignaciones
// @Tags roles
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.MensajeResponse
// @Router /api/seguridad/roles/{id} [delete]
func (h *RolesHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Message: "Rol eliminado exitosamente"})
}
