package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bindRoute[T any]() *gin.Engine {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req T
		if !bindAndValidate(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestBindAndValidate_PermissionVocabulary(t *testing.T) {
	r := bindRoute[dto.CrearPermisoRequest]()

	w := send(r, http.MethodPost, "/", `{"name":"x","type":"Resource","resource":"User_seguridad","method":"Read","roleId":1}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// legacy spellings pass binding; the service normalizes them
	w = send(r, http.MethodPost, "/", `{"name":"x","type":"RECURSO","resource":"User_seguridad","method":"read","roleId":1}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = send(r, http.MethodPost, "/", `{"name":"x","type":"Otro","resource":"Nada","method":"Patch","roleId":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body apierror.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"type": "permtype", "resource": "resource", "method": "method"}, body.Fields)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	r := bindRoute[dto.LoginRequest]()

	w := send(r, http.MethodPost, "/", `{"email": 3`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "JSON invalido")
}

func TestBindAndValidate_DecimalBounds(t *testing.T) {
	r := bindRoute[dto.CrearRestauranteRequest]()

	assert.Equal(t, http.StatusNoContent, send(r, http.MethodPost, "/", `{"latitude":10.5,"longitud":-66.9,"radius":0.2}`).Code)

	w := send(r, http.MethodPost, "/", `{"latitude":91,"longitud":-66.9,"radius":-1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body apierror.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "max", body.Fields["latitude"])
	assert.Equal(t, "gt", body.Fields["radius"])
}

func TestParamID(t *testing.T) {
	r := gin.New()
	r.GET("/x/:id", func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	assert.JSONEq(t, `{"id":12}`, send(r, http.MethodGet, "/x/12", "").Body.String())
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, "/x/0", "").Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, "/x/-3", "").Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, "/x/abc", "").Code)
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apierror.NotFound("Rol no encontrado"), http.StatusNotFound},
		{apierror.Conflict("ya existe"), http.StatusConflict},
		{apierror.ConfigurationMissing("sin restaurante"), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		r := gin.New()
		var logged int
		r.GET("/", func(c *gin.Context) {
			respondError(c, tc.err)
			logged = len(c.Errors)
		})
		w := send(r, http.MethodGet, "/", "")
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		if tc.status == http.StatusInternalServerError {
			assert.Equal(t, 1, logged)
			assert.Contains(t, w.Body.String(), apierror.MsgInterno)
		} else {
			assert.Zero(t, logged)
		}
	}
}

func TestEnums_DataTypes(t *testing.T) {
	r := gin.New()
	r.GET("/", NewEnumsHandler().DataTypes)

	assert.JSONEq(t, `["Empleado","Cliente"]`, send(r, http.MethodGet, "/", "").Body.String())
}
