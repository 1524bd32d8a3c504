package handler

import (
	"net/http"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"

	"github.com/gin-gonic/gin"
)

// EnumsHandler exposes the closed vocabularies so clients can build forms.
type EnumsHandler struct{}

func NewEnumsHandler() *EnumsHandler { return &EnumsHandler{} }

// DataTypes godoc
// @Summary Tipos de usuario
// @Tags enums
// @Produce json
// @Success 200 {array} string
// @Router /api/seguridad/enums/User/dataType [get]
func (h *EnumsHandler) DataTypes(c *gin.Context) {
	out := make([]string, 0, len(model.DataTypes))
	for _, d := range model.DataTypes {
		out = append(out, string(d))
	}
	c.JSON(http.StatusOK, out)
}

// PermissionTypes godoc
// @Summary Tipos de permiso
// @Tags enums
// @Produce json
// @Success 200 {array} string
// @Router /api/seguridad/enums/Permission/type [get]
func (h *EnumsHandler) PermissionTypes(c *gin.Context) {
	out := make([]string, 0, len(model.PermissionTypes))
	for _, t := range model.PermissionTypes {
		out = append(out, string(t))
	}
	c.JSON(http.StatusOK, out)
}

// Recursos godoc
// @Summary Recursos y vistas
// @Tags enums
// @Produce json
// @Success 200 {object} dto.RecursosEnumResponse
// @Router /api/seguridad/enums/Permission/resource [get]
func (h *EnumsHandler) Recursos(c *gin.Context) {
	resp := dto.RecursosEnumResponse{Resources: []string{}, Views: []string{}}
	for _, r := range model.Resources {
		if r.IsView() {
			resp.Views = append(resp.Views, string(r))
		} else {
			resp.Resources = append(resp.Resources, string(r))
		}
	}
	for _, r := range model.DefinitiveViews {
		resp.DefinitiveViews = append(resp.DefinitiveViews, string(r))
	}
	c.JSON(http.StatusOK, resp)
}

// Metodos godoc
// @Summary Métodos de permiso
// @Tags enums
// @Produce json
// @Success 200 {object} dto.MetodosEnumResponse
// @Router /api/seguridad/enums/Permission/method [get]
func (h *EnumsHandler) Metodos(c *gin.Context) {
	resp := dto.MetodosEnumResponse{Methods: []string{}, View: []string{}}
	for _, m := range model.Methods {
		if m == model.MethodView {
			resp.View = append(resp.View, string(m))
		} else {
			resp.Methods = append(resp.Methods, string(m))
		}
	}
	resp.DefinitiveMethod = []string{string(model.MethodView)}
	c.JSON(http.StatusOK, resp)
}
