package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPermisoRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Type     string `json:"type"     validate:"required,permtype"`
	Resource string `json:"resource" validate:"required,resource"`
	Method   string `json:"method"   validate:"required,method"`
	RoleID   uint   `json:"roleId"   validate:"required"`
}

type ActualizarPermisoRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1,max=100"`
	Type     *string `json:"type"     validate:"omitempty,permtype"`
	Resource *string `json:"resource" validate:"omitempty,resource"`
	Method   *string `json:"method"   validate:"omitempty,method"`
	RoleID   *uint   `json:"roleId"   validate:"omitempty,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RolResumenResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type PermisoResponse struct {
	ID       uint                `json:"id"`
	Name     string              `json:"name"`
	Type     string              `json:"type"`
	Resource string              `json:"resource"`
	Method   string              `json:"method"`
	RoleID   uint                `json:"roleId"`
	Role     *RolResumenResponse `json:"role,omitempty"`
}
