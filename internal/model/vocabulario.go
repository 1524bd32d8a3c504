package model

import (
	"fmt"
	"strings"
)

// PermissionType separates backend CRUD rules from UI-gating rules.
type PermissionType string

const (
	PermissionTypeResource PermissionType = "Resource"
	PermissionTypeView     PermissionType = "View"
)

var PermissionTypes = []PermissionType{PermissionTypeResource, PermissionTypeView}

func (t PermissionType) Valid() bool {
	return t == PermissionTypeResource || t == PermissionTypeView
}

// ParsePermissionType accepts the canonical names plus the legacy spellings
// still sent by older clients ("RESOURCE", "RECURSO", "VISTA"...).
func ParsePermissionType(s string) (PermissionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "resource", "recurso":
		return PermissionTypeResource, nil
	case "view", "vista":
		return PermissionTypeView, nil
	}
	return "", fmt.Errorf("tipo de permiso %q no es válido", s)
}

// Method is the action a permission grants. All is a wildcard over resource-level methods.
type Method string

const (
	MethodCreate Method = "Create"
	MethodRead   Method = "Read"
	MethodUpdate Method = "Update"
	MethodDelete Method = "Delete"
	MethodAll    Method = "All"
	MethodView   Method = "View"
)

var Methods = []Method{MethodCreate, MethodRead, MethodUpdate, MethodDelete, MethodAll, MethodView}

func (m Method) Valid() bool {
	for _, v := range Methods {
		if m == v {
			return true
		}
	}
	return false
}

// ParseMethod matches case-insensitively and returns the canonical spelling.
func ParseMethod(s string) (Method, error) {
	s = strings.TrimSpace(s)
	for _, m := range Methods {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("método %q no es válido", s)
}

// Resource is the closed vocabulary of protected backend entities and UI views.
type Resource string

const (
	ResourceAssetLogCocina             Resource = "AssetLog_cocina"
	ResourceAtcJefeSalaView            Resource = "AtcJefeSala_view"
	ResourceAtcMaitreView              Resource = "AtcMaitre_view"
	ResourceAtcSupervisorSalaView      Resource = "AtcSupervisorSala_view"
	ResourceAtcView                    Resource = "Atc_view"
	ResourceClienteTemporalAtc         Resource = "ClienteTemporal_atc"
	ResourceCocinaCamareroView         Resource = "CocinaCamarero_view"
	ResourceCocinaChefView             Resource = "CocinaChef_view"
	ResourceCocinaCocineroView         Resource = "CocinaCocinero_view"
	ResourceCocinaSupervisorView       Resource = "CocinaSupervisor_view"
	ResourceConsumibleInventoryView    Resource = "ConsumibleInventory_view"
	ResourceDeliveryPickupView         Resource = "DeliveryPickup_view"
	ResourceDpDespachadorView          Resource = "DpDespachador_view"
	ResourceDpSupervisorView           Resource = "DpSupervisor_view"
	ResourceFixedAssetManagementView   Resource = "FixedAssetManagement_view"
	ResourceInventoryItemCocina        Resource = "InventoryItem_cocina"
	ResourceInventoryLogCocina         Resource = "InventoryLog_cocina"
	ResourceKdsProductionQueueCocina   Resource = "KdsProductionQueue_cocina"
	ResourceKdsProductionQueueView     Resource = "KdsProductionQueue_view"
	ResourceKitchenAssetCocina         Resource = "KitchenAsset_cocina"
	ResourceKitchenCategoryCocina      Resource = "KitchenCategory_cocina"
	ResourceKitchenProductCocina       Resource = "KitchenProduct_cocina"
	ResourceKitchenStaffManagementView Resource = "KitchenStaffManagement_view"
	ResourceKitchenStaffCocina         Resource = "KitchenStaff_cocina"
	ResourceKitchenView                Resource = "Kitchen_view"
	ResourceKpiDashboardView           Resource = "KpiDashboard_view"
	ResourceKpiGerenteView             Resource = "KpiGerente_view"
	ResourceLogsDp                     Resource = "Logs_dp"
	ResourceManagersDp                 Resource = "Managers_dp"
	ResourceNotesItemsDp               Resource = "NotesItems_dp"
	ResourceNotesDp                    Resource = "Notes_dp"
	ResourcePermissionSeguridad        Resource = "Permission_seguridad"
	ResourceRecipeProductCatalogView   Resource = "RecipeProductCatalog_view"
	ResourceRecipeCocina               Resource = "Recipe_cocina"
	ResourceRestaurantCoordinatesView  Resource = "RestaurantCoordinates_view"
	ResourceRestaurantSeguridad        Resource = "Restaurant_seguridad"
	ResourceRoleSeguridad              Resource = "Role_seguridad"
	ResourceSecurityView               Resource = "Security_view"
	ResourceSeguridadPersonalView      Resource = "SeguridadPersonal_view"
	ResourceStaffShiftShedulerView     Resource = "StaffShiftSheduler_view"
	ResourceStaffShiftCocina           Resource = "StaffShift_cocina"
	ResourceTableManagementView        Resource = "TableManagement_view"
	ResourceTableAtc                   Resource = "Table_atc"
	ResourceThresholdsDp               Resource = "Thresholds_dp"
	ResourceUserManagementView         Resource = "UserManagement_view"
	ResourceUserSeguridad              Resource = "User_seguridad"
	ResourceWaitersOfficeView          Resource = "WaitersOffice_view"
	ResourceZonesDp                    Resource = "Zones_dp"
)

// Resources lists every value in declaration order.
var Resources = []Resource{
	ResourceAssetLogCocina, ResourceAtcJefeSalaView, ResourceAtcMaitreView,
	ResourceAtcSupervisorSalaView, ResourceAtcView, ResourceClienteTemporalAtc,
	ResourceCocinaCamareroView, ResourceCocinaChefView, ResourceCocinaCocineroView,
	ResourceCocinaSupervisorView, ResourceConsumibleInventoryView, ResourceDeliveryPickupView,
	ResourceDpDespachadorView, ResourceDpSupervisorView, ResourceFixedAssetManagementView,
	ResourceInventoryItemCocina, ResourceInventoryLogCocina, ResourceKdsProductionQueueCocina,
	ResourceKdsProductionQueueView, ResourceKitchenAssetCocina, ResourceKitchenCategoryCocina,
	ResourceKitchenProductCocina, ResourceKitchenStaffManagementView, ResourceKitchenStaffCocina,
	ResourceKitchenView, ResourceKpiDashboardView, ResourceKpiGerenteView,
	ResourceLogsDp, ResourceManagersDp, ResourceNotesItemsDp, ResourceNotesDp,
	ResourcePermissionSeguridad, ResourceRecipeProductCatalogView, ResourceRecipeCocina,
	ResourceRestaurantCoordinatesView, ResourceRestaurantSeguridad, ResourceRoleSeguridad,
	ResourceSecurityView, ResourceSeguridadPersonalView, ResourceStaffShiftShedulerView,
	ResourceStaffShiftCocina, ResourceTableManagementView, ResourceTableAtc,
	ResourceThresholdsDp, ResourceUserManagementView, ResourceUserSeguridad,
	ResourceWaitersOfficeView, ResourceZonesDp,
}

// DefinitiveViews are the per-position landing views assignable to staff.
var DefinitiveViews = []Resource{
	ResourceAtcSupervisorSalaView, ResourceAtcMaitreView,
	ResourceDpSupervisorView, ResourceDpDespachadorView,
	ResourceCocinaSupervisorView, ResourceCocinaChefView,
	ResourceCocinaCocineroView, ResourceCocinaCamareroView,
	ResourceSeguridadPersonalView, ResourceKpiGerenteView,
}

var resourceIndex = func() map[string]Resource {
	m := make(map[string]Resource, len(Resources))
	for _, r := range Resources {
		m[strings.ToLower(string(r))] = r
	}
	return m
}()

func (r Resource) Valid() bool {
	c, ok := resourceIndex[strings.ToLower(string(r))]
	return ok && c == r
}

// IsView reports whether the resource names a UI surface rather than a backend entity.
func (r Resource) IsView() bool {
	return strings.HasSuffix(string(r), "_view")
}

// ParseResource matches case-insensitively and returns the canonical spelling.
func ParseResource(s string) (Resource, error) {
	if r, ok := resourceIndex[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return "", fmt.Errorf("recurso %q no es válido", s)
}

// DataType classifies a user account.
type DataType string

const (
	DataTypeEmpleado DataType = "Empleado"
	DataTypeCliente  DataType = "Cliente"
)

var DataTypes = []DataType{DataTypeEmpleado, DataTypeCliente}

func (d DataType) Valid() bool {
	return d == DataTypeEmpleado || d == DataTypeCliente
}

func ParseDataType(s string) (DataType, error) {
	s = strings.TrimSpace(s)
	for _, d := range DataTypes {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("el dataType %q no es válido", s)
}

// CheckPermissionShape enforces that View permissions pair a *_view resource
// with method View, and Resource permissions never do.
func CheckPermissionShape(t PermissionType, r Resource, m Method) error {
	switch t {
	case PermissionTypeView:
		if m != MethodView {
			return fmt.Errorf("un permiso de tipo View debe usar el método View")
		}
		if !r.IsView() {
			return fmt.Errorf("el recurso %s no es una vista", r)
		}
	case PermissionTypeResource:
		if m == MethodView {
			return fmt.Errorf("un permiso de tipo Resource no puede usar el método View")
		}
		if r.IsView() {
			return fmt.Errorf("el recurso %s es una vista y requiere tipo View", r)
		}
	default:
		return fmt.Errorf("tipo de permiso %q no es válido", t)
	}
	return nil
}
