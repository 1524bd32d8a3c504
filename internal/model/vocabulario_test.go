package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermissionType_LegacySpellings(t *testing.T) {
	cases := map[string]PermissionType{
		"Resource": PermissionTypeResource,
		"RESOURCE": PermissionTypeResource,
		"recurso":  PermissionTypeResource,
		"RECURSO":  PermissionTypeResource,
		"View":     PermissionTypeView,
		"VISTA":    PermissionTypeView,
	}
	for in, want := range cases {
		got, err := ParsePermissionType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePermissionType("admin")
	assert.Error(t, err)
}

func TestParseMethod_CaseInsensitive(t *testing.T) {
	m, err := ParseMethod("update")
	require.NoError(t, err)
	assert.Equal(t, MethodUpdate, m)

	m, err = ParseMethod("ALL")
	require.NoError(t, err)
	assert.Equal(t, MethodAll, m)

	_, err = ParseMethod("Patch")
	assert.Error(t, err)
}

func TestParseResource_Canonicalizes(t *testing.T) {
	r, err := ParseResource("user_seguridad")
	require.NoError(t, err)
	assert.Equal(t, ResourceUserSeguridad, r)
	assert.True(t, r.Valid())
	assert.False(t, Resource("user_seguridad").Valid())

	_, err = ParseResource("Inventory_view2")
	assert.Error(t, err)
}

func TestResource_IsView(t *testing.T) {
	assert.True(t, ResourceSecurityView.IsView())
	assert.False(t, ResourceRoleSeguridad.IsView())
	for _, v := range DefinitiveViews {
		assert.True(t, v.IsView(), v)
		assert.True(t, v.Valid(), v)
	}
}

func TestCheckPermissionShape(t *testing.T) {
	assert.NoError(t, CheckPermissionShape(PermissionTypeResource, ResourceUserSeguridad, MethodAll))
	assert.NoError(t, CheckPermissionShape(PermissionTypeView, ResourceSecurityView, MethodView))

	assert.Error(t, CheckPermissionShape(PermissionTypeView, ResourceSecurityView, MethodRead))
	assert.Error(t, CheckPermissionShape(PermissionTypeView, ResourceUserSeguridad, MethodView))
	assert.Error(t, CheckPermissionShape(PermissionTypeResource, ResourceUserSeguridad, MethodView))
	assert.Error(t, CheckPermissionShape(PermissionTypeResource, ResourceSecurityView, MethodRead))
}

func TestPermiso_MismaRegla(t *testing.T) {
	a := Permiso{Recurso: "User_seguridad", Metodo: "Read"}
	b := Permiso{Recurso: "user_SEGURIDAD", Metodo: "read"}
	c := Permiso{Recurso: "User_seguridad", Metodo: "Update"}

	assert.True(t, a.MismaRegla(b))
	assert.False(t, a.MismaRegla(c))
}
