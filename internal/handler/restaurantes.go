package handler

import (
	"net/http"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/service"

	"github.com/gin-gonic/gin"
)

type RestaurantesHandler struct{ svc service.RestauranteService }

func NewRestaurantesHandler(svc service.RestauranteService) *RestaurantesHandler {
	return &RestaurantesHandler{svc: svc}
}

// Crear godoc
// @Summary Configura el restaurante (radio en km)
// @Tags restaurants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CrearRestauranteRequest true "Coordenadas"
// @Success 201 {object} dto.RestauranteResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/seguridad/restaurants [post]
func (h *RestaurantesHandler) Crear(c *gin.Context) {
	var req dto.CrearRestauranteRequest
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
// @Summary Lista la configuración del restaurante
// @Tags restaurants
// @Produce json
// @Success 200 {array} dto.RestauranteResponse
// @Router /api/seguridad/restaurants [get]
func (h *RestaurantesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID godoc
// @Summary Obtiene el restaurante por ID
// @Tags restaurants
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.RestauranteResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/seguridad/restaurants/{id} [get]
func (h *RestaurantesHandler) ObtenerPorID(c *gin.Context) {
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

// ActualizarCoordenadas godoc
// @Summary Actualiza las coordenadas del restaurante configurado
// @Tags restaurants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.ActualizarRestauranteRequest true "Coordenadas"
// @Success 200 {object} dto.MensajeResponse
// @Failure 422 {object} apierror.APIError
// @Router /api/seguridad/restaurants [patch]
func (h *RestaurantesHandler) ActualizarCoordenadas(c *gin.Context) {
	var req dto.ActualizarRestauranteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarCoordenadas(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Message: "Coordenadas actualizadas exitosamente"})
}

// Actualizar godoc
// @Summary Actualiza el restaurante por ID
// @Tags restaurants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param body body dto.ActualizarRestauranteRequest true "Coordenadas"
// @Success 200 {object} dto.RestauranteResponse
// @Router /api/seguridad/restaurants/{id} [patch]
func (h *RestaurantesHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarRestauranteRequest
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
// @Summary Elimina el restaurante
// @Tags restaurants
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.MensajeResponse
// @Router /api/seguridad/restaurants/{id} [delete]
func (h *RestaurantesHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Message: "Restaurante eliminado exitosamente"})
}
