package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PermisoInput is a permission declared inline on a role.
type PermisoInput struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Type     string `json:"type"     validate:"required,permtype"`
	Resource string `json:"resource" validate:"required,resource"`
	Method   string `json:"method"   validate:"required,method"`
}

// PermisoExistenteInput references a permission the role already owns.
// Omitted fields keep their stored value.
type PermisoExistenteInput struct {
	ID       uint    `json:"id"       validate:"required"`
	Name     *string `json:"name"     validate:"omitempty,min=1,max=100"`
	Type     *string `json:"type"     validate:"omitempty,permtype"`
	Resource *string `json:"resource" validate:"omitempty,resource"`
	Method   *string `json:"method"   validate:"omitempty,method"`
}

type CrearRolRequest struct {
	Name        string         `json:"name"        validate:"required,min=1,max=100"`
	Description *string        `json:"description" validate:"omitempty,max=255"`
	Permissions []PermisoInput `json:"permissions" validate:"omitempty,dive"`
	Users       []uint         `json:"users"`
}

// ActualizarRolRequest supports two permission modes that cannot be mixed:
// Permissions keeps exactly the listed ids, while ExistingPermissions and
// NewPermissions keep/update some rows and append others. A nil
// ExistingPermissions keeps every current row; an empty one drops them all.
type ActualizarRolRequest struct {
	Name                *string                 `json:"name"                 validate:"omitempty,min=1,max=100"`
	Description         *string                 `json:"description"          validate:"omitempty,max=255"`
	Permissions         *[]uint                 `json:"permissions"`
	ExistingPermissions []PermisoExistenteInput `json:"existing_permissions" validate:"omitempty,dive"`
	NewPermissions      []PermisoInput          `json:"new_permissions"      validate:"omitempty,dive"`
	Users               *[]uint                 `json:"users"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResumenResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
}

type RolResponse struct {
	ID          uint                     `json:"id"`
	Name        string                   `json:"name"`
	Description *string                  `json:"description"`
	Permissions []PermisoResponse        `json:"permissions"`
	Users       []UsuarioResumenResponse `json:"users,omitempty"`
}

type RolMutacionResponse struct {
	Message string `json:"message"`
	RoleID  uint   `json:"role_id"`
}
